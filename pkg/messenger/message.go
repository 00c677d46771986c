package messenger

import (
	"errors"

	"github.com/orfon/fbmessenger/pkg/graph"
)

// NotificationType controls the push behaviour of an outgoing message.
type NotificationType string

const (
	NotificationRegular    NotificationType = "REGULAR"
	NotificationSilentPush NotificationType = "SILENT_PUSH"
	NotificationNoPush     NotificationType = "NO_PUSH"
)

// SenderAction sets a typing indicator or read receipt instead of a message.
type SenderAction string

const (
	ActionMarkSeen  SenderAction = "mark_seen"
	ActionTypingOn  SenderAction = "typing_on"
	ActionTypingOff SenderAction = "typing_off"
)

// AttachmentType is the media kind of an attachment message.
type AttachmentType string

const (
	AttachmentImage    AttachmentType = "image"
	AttachmentAudio    AttachmentType = "audio"
	AttachmentVideo    AttachmentType = "video"
	AttachmentFile     AttachmentType = "file"
	AttachmentTemplate AttachmentType = "template"
)

var (
	errMissingRecipient     = errors.New("send request requires a recipient id")
	errMissingMessage       = errors.New("send request requires a message or a sender action")
	errMessageAndAction     = errors.New("send request cannot carry both a message and a sender action")
	errMissingAttachmentSrc = errors.New("attachment requires a url or an upload")
)

// Recipient identifies the receiving user by page-scoped id, phone number or
// checkbox-plugin user ref. Exactly one of the fields should be set.
type Recipient struct {
	ID          string `json:"id,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	UserRef     string `json:"user_ref,omitempty"`
}

// QuickReply is one of the reply chips rendered under a message.
type QuickReply struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title,omitempty"`
	Payload     string `json:"payload,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// TextQuickReply builds the common text quick reply.
func TextQuickReply(title, payload string) QuickReply {
	return QuickReply{ContentType: "text", Title: title, Payload: payload}
}

// Attachment is an asset or structured template riding on a message.
type Attachment struct {
	Type    AttachmentType `json:"type"`
	Payload any            `json:"payload"`
}

// URLPayload is an attachment payload referencing an asset by URL.
type URLPayload struct {
	URL        string `json:"url"`
	IsReusable bool   `json:"is_reusable,omitempty"`
}

// Message is the message part of a send request: plain text or an attachment,
// optionally decorated with quick replies.
type Message struct {
	Text         string       `json:"text,omitempty"`
	Attachment   *Attachment  `json:"attachment,omitempty"`
	QuickReplies []QuickReply `json:"quick_replies,omitempty"`
	Metadata     string       `json:"metadata,omitempty"`
}

// SendRequest is one fully formed Send API payload. Build it through
// NewSendRequest or the Client operation helpers so validation runs before
// any network call.
type SendRequest struct {
	Recipient        Recipient        `json:"recipient"`
	Message          *Message         `json:"message,omitempty"`
	SenderAction     SenderAction     `json:"sender_action,omitempty"`
	NotificationType NotificationType `json:"notification_type,omitempty"`
	MessagingType    string           `json:"messaging_type,omitempty"`
	Tag              string           `json:"tag,omitempty"`
}

// SendOption mutates a send request before validation.
type SendOption func(*SendRequest)

// WithNotificationType overrides the default REGULAR push behaviour.
func WithNotificationType(nt NotificationType) SendOption {
	return func(r *SendRequest) { r.NotificationType = nt }
}

// WithTag marks the message with a message tag, e.g. "HUMAN_AGENT". Setting a
// tag also sets the messaging type to MESSAGE_TAG as the Send API requires.
func WithTag(tag string) SendOption {
	return func(r *SendRequest) {
		r.Tag = tag
		r.MessagingType = "MESSAGE_TAG"
	}
}

// WithMessagingType sets the messaging type, e.g. "RESPONSE" or "UPDATE".
func WithMessagingType(mt string) SendOption {
	return func(r *SendRequest) { r.MessagingType = mt }
}

// WithQuickReplies attaches quick replies to the message part of the request.
func WithQuickReplies(replies ...QuickReply) SendOption {
	return func(r *SendRequest) {
		if r.Message != nil {
			r.Message.QuickReplies = append(r.Message.QuickReplies, replies...)
		}
	}
}

// NewSendRequest builds a validated send request for the given recipient id.
func NewSendRequest(recipientID string, message *Message, opts ...SendOption) (*SendRequest, error) {
	req := &SendRequest{
		Recipient: Recipient{ID: recipientID},
		Message:   message,
	}
	for _, opt := range opts {
		opt(req)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate enforces the Send API invariants: a recipient is present and the
// request carries exactly one of message body or sender action. A missing
// notification type defaults to REGULAR.
func (r *SendRequest) Validate() error {
	if r.Recipient.ID == "" && r.Recipient.PhoneNumber == "" && r.Recipient.UserRef == "" {
		return graph.WrapConfig(errMissingRecipient)
	}
	if r.Message == nil && r.SenderAction == "" {
		return graph.WrapConfig(errMissingMessage)
	}
	if r.Message != nil && r.SenderAction != "" {
		return graph.WrapConfig(errMessageAndAction)
	}
	if r.NotificationType == "" {
		r.NotificationType = NotificationRegular
	}
	return nil
}
