package messenger

import (
	"strings"

	"github.com/orfon/fbmessenger/pkg/graph"
)

// SendResponse is the typed success body of a Send API call.
type SendResponse struct {
	RecipientID string `json:"recipient_id"`
	MessageID   string `json:"message_id"`
}

// SendMessage submits an arbitrary validated message for the recipient. Most
// callers want one of the typed helpers below instead.
func (c *Client) SendMessage(recipientID string, message *Message, opts ...SendOption) (graph.Response, error) {
	req, err := NewSendRequest(recipientID, message, opts...)
	if err != nil {
		return nil, err
	}
	return c.submit(graph.POST, messagesEndpoint, req)
}

// SendTextMessage sends a plain text message.
func (c *Client) SendTextMessage(recipientID, text string, opts ...SendOption) (graph.Response, error) {
	return c.SendMessage(recipientID, &Message{Text: text}, opts...)
}

// SendQuickReplies sends a text message with reply chips underneath.
func (c *Client) SendQuickReplies(recipientID, text string, replies []QuickReply, opts ...SendOption) (graph.Response, error) {
	return c.SendMessage(recipientID, &Message{Text: text, QuickReplies: replies}, opts...)
}

// SendAttachment sends a media attachment referenced by URL.
func (c *Client) SendAttachment(recipientID string, attachmentType AttachmentType, assetURL string, opts ...SendOption) (graph.Response, error) {
	if !strings.HasPrefix(assetURL, "http") {
		return nil, graph.WrapConfig(errMissingAttachmentSrc)
	}
	message := &Message{Attachment: &Attachment{
		Type:    attachmentType,
		Payload: &URLPayload{URL: assetURL},
	}}
	return c.SendMessage(recipientID, message, opts...)
}

// SendFileAttachment uploads a local byte source as a media attachment. The
// upload stream is consumed and closed exactly once, whether the exchange
// succeeds or fails. Uploads are always sent immediately, even in batch mode.
func (c *Client) SendFileAttachment(recipientID string, attachmentType AttachmentType, upload *graph.FileUpload, opts ...SendOption) (graph.Response, error) {
	if upload == nil || (upload.Reader == nil && upload.Path == "") {
		return nil, graph.WrapConfig(errMissingAttachmentSrc)
	}
	message := &Message{Attachment: &Attachment{
		Type:    attachmentType,
		Payload: struct{}{},
	}}
	req, err := NewSendRequest(recipientID, message, opts...)
	if err != nil {
		return nil, err
	}
	return c.sendMultipart(req, upload)
}

// SendSenderAction sets a typing indicator or marks the thread as seen.
func (c *Client) SendSenderAction(recipientID string, action SenderAction) (graph.Response, error) {
	req := &SendRequest{
		Recipient:    Recipient{ID: recipientID},
		SenderAction: action,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.submit(graph.POST, messagesEndpoint, req)
}
