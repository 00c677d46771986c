// Package webhook models the callback payloads the Messenger Platform
// delivers to a page's webhook and provides pure classification predicates
// over them. Nothing here performs I/O; decoding the HTTP body and replying
// to Facebook is the consumer's job.
package webhook

// Event is the decoded top-level callback envelope.
type Event struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry groups the messaging events of one page.
type Entry struct {
	ID        string      `json:"id"`
	Time      int64       `json:"time"`
	Messaging []Messaging `json:"messaging"`
}

// Messaging is one callback event. Exactly one of the pointer fields is set,
// identifying the event kind.
type Messaging struct {
	Sender         Principal       `json:"sender"`
	Recipient      Principal       `json:"recipient"`
	Timestamp      int64           `json:"timestamp"`
	Message        *Message        `json:"message,omitempty"`
	Postback       *Postback       `json:"postback,omitempty"`
	OptIn          *OptIn          `json:"optin,omitempty"`
	AccountLinking *AccountLinking `json:"account_linking,omitempty"`
	Delivery       *Delivery       `json:"delivery,omitempty"`
	Read           *Read           `json:"read,omitempty"`
	Referral       *Referral       `json:"referral,omitempty"`
}

// Principal identifies the sender or recipient of an event. UserRef is set
// instead of ID for checkbox-plugin opt-ins.
type Principal struct {
	ID      string `json:"id,omitempty"`
	UserRef string `json:"user_ref,omitempty"`
}

// Message is a received message, or an echo of one the page sent.
type Message struct {
	MID         string       `json:"mid"`
	Seq         int64        `json:"seq,omitempty"`
	Text        string       `json:"text,omitempty"`
	IsEcho      bool         `json:"is_echo,omitempty"`
	AppID       int64        `json:"app_id,omitempty"`
	Metadata    string       `json:"metadata,omitempty"`
	QuickReply  *QuickReply  `json:"quick_reply,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// QuickReply carries the payload of a tapped quick reply chip.
type QuickReply struct {
	Payload string `json:"payload"`
}

// Attachment is a media or location asset on a received message.
type Attachment struct {
	Type    string            `json:"type"`
	Payload AttachmentPayload `json:"payload"`
}

// AttachmentPayload carries the asset URL or, for locations, coordinates.
type AttachmentPayload struct {
	URL         string       `json:"url,omitempty"`
	StickerID   int64        `json:"sticker_id,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Coordinates is a shared location.
type Coordinates struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Postback is a tapped postback button, menu item or Get Started button.
type Postback struct {
	Title    string    `json:"title,omitempty"`
	Payload  string    `json:"payload"`
	Referral *Referral `json:"referral,omitempty"`
}

// OptIn is a Send-to-Messenger plugin or checkbox plugin authentication.
type OptIn struct {
	Ref     string `json:"ref"`
	UserRef string `json:"user_ref,omitempty"`
}

// AccountLinking reports a linking flow outcome. Status is "linked" or
// "unlinked"; the authorization code is only present when linked.
type AccountLinking struct {
	Status            string `json:"status"`
	AuthorizationCode string `json:"authorization_code,omitempty"`
}

// Delivery confirms messages up to the watermark were delivered.
type Delivery struct {
	MIDs      []string `json:"mids,omitempty"`
	Watermark int64    `json:"watermark"`
	Seq       int64    `json:"seq,omitempty"`
}

// Read confirms messages up to the watermark were read.
type Read struct {
	Watermark int64 `json:"watermark"`
	Seq       int64 `json:"seq,omitempty"`
}

// Referral reports how the user reached the thread, e.g. an m.me link or ad.
type Referral struct {
	Ref    string `json:"ref,omitempty"`
	Source string `json:"source,omitempty"`
	Type   string `json:"type,omitempty"`
	AdID   string `json:"ad_id,omitempty"`
}
