package processor

import (
	"strings"

	"github.com/orfon/fbmessenger/pkg/log"
	"github.com/orfon/fbmessenger/pkg/messenger"
	"github.com/orfon/fbmessenger/pkg/msg"
	"github.com/orfon/fbmessenger/pkg/webhook"
)

// Payloads of the demo bot's postback buttons and quick replies.
const (
	PayloadGetStarted = "GET_STARTED"
	PayloadShowMenu   = "SHOW_MENU"
	PayloadPicture    = "SEND_PICTURE"
	PayloadReceipt    = "SEND_RECEIPT"
)

const demoImageURL = "https://picsum.photos/600/400"

// Handler processes one classified messaging event.
type Handler interface {
	HandleMessaging(m webhook.Messaging) error
}

// ReplyProcessor drives the demo bot's hard-coded reply script. Every branch
// exercises a different client operation so the script doubles as a live
// smoke test of the Send API surface.
type ReplyProcessor struct {
	client *messenger.Client
}

func NewReplyProcessor(client *messenger.Client) *ReplyProcessor {
	return &ReplyProcessor{client: client}
}

// HandleMessaging dispatches one messaging event to the matching reply. Event
// kinds the script has no reply for are logged and dropped.
func (p *ReplyProcessor) HandleMessaging(m webhook.Messaging) error {
	switch {
	case webhook.IsEcho(&m):
		log.Debug(msg.GetMessage("bot.echo-seen", m.Message.MID))
		return nil
	case webhook.IsQuickReply(&m):
		return p.replyToPayload(m.Sender.ID, m.Message.QuickReply.Payload)
	case webhook.IsMessage(&m, false):
		return p.replyToText(m.Sender.ID, m.Message.Text)
	case webhook.IsPostback(&m):
		return p.replyToPayload(m.Sender.ID, m.Postback.Payload)
	case webhook.IsAuthentication(&m):
		log.Infow("optin received", "ref", m.OptIn.Ref)
		return nil
	case webhook.IsAccountLinking(&m):
		log.Infow("account linking", "status", m.AccountLinking.Status)
		return nil
	case webhook.IsDelivery(&m), webhook.IsRead(&m):
		return nil
	case webhook.IsReferral(&m):
		log.Infow("referral received", "ref", m.Referral.Ref, "source", m.Referral.Source)
		return nil
	default:
		log.Debugw("unhandled messaging event", "sender", m.Sender.ID)
		return nil
	}
}

// replyToText answers a free-form text message.
func (p *ReplyProcessor) replyToText(senderID, text string) error {
	if _, err := p.client.SendSenderAction(senderID, messenger.ActionMarkSeen); err != nil {
		return err
	}
	if _, err := p.client.SendSenderAction(senderID, messenger.ActionTypingOn); err != nil {
		return err
	}

	var err error
	switch {
	case strings.Contains(strings.ToLower(text), "menu"):
		err = p.sendMenu(senderID)
	case strings.Contains(strings.ToLower(text), "picture"):
		err = p.sendPicture(senderID)
	case strings.Contains(strings.ToLower(text), "receipt"):
		err = p.sendReceipt(senderID)
	default:
		err = p.sendGreeting(senderID)
	}
	if err != nil {
		return err
	}

	_, err = p.client.SendSenderAction(senderID, messenger.ActionTypingOff)
	return err
}

// replyToPayload answers a tapped postback button or quick reply chip.
func (p *ReplyProcessor) replyToPayload(senderID, payload string) error {
	switch payload {
	case PayloadGetStarted:
		return p.sendGreeting(senderID)
	case PayloadShowMenu:
		return p.sendMenu(senderID)
	case PayloadPicture:
		return p.sendPicture(senderID)
	case PayloadReceipt:
		return p.sendReceipt(senderID)
	default:
		_, err := p.client.SendTextMessage(senderID, msg.GetMessage("bot.postback-ack", payload))
		return err
	}
}

// sendGreeting greets the user by first name, falling back to a generic
// greeting when the profile lookup fails.
func (p *ReplyProcessor) sendGreeting(senderID string) error {
	name := "there"
	if profile, err := p.client.GetUserProfile(senderID); err == nil && profile.FirstName != "" {
		name = profile.FirstName
	}
	_, err := p.client.SendQuickReplies(senderID, msg.GetMessage("bot.greeting", name), []messenger.QuickReply{
		messenger.TextQuickReply("Menu", PayloadShowMenu),
		messenger.TextQuickReply("Picture", PayloadPicture),
	})
	return err
}

func (p *ReplyProcessor) sendMenu(senderID string) error {
	_, err := p.client.SendButtonTemplate(senderID, msg.GetMessage("bot.menu-text"), []messenger.Button{
		messenger.PostbackButton("Show a picture", PayloadPicture),
		messenger.PostbackButton("Show a receipt", PayloadReceipt),
		messenger.URLButton("Messenger docs", "https://developers.facebook.com/docs/messenger-platform"),
	})
	return err
}

func (p *ReplyProcessor) sendPicture(senderID string) error {
	if _, err := p.client.SendAttachment(senderID, messenger.AttachmentImage, demoImageURL); err != nil {
		return err
	}
	_, err := p.client.SendTextMessage(senderID, msg.GetMessage("bot.picture-caption"))
	return err
}

func (p *ReplyProcessor) sendReceipt(senderID string) error {
	_, err := p.client.SendReceiptTemplate(senderID, &messenger.ReceiptTemplate{
		RecipientName: "Demo User",
		OrderNumber:   "0001",
		Currency:      "USD",
		PaymentMethod: "None, it is a demo",
		Elements: []messenger.ReceiptElement{
			{Title: "Sample item", Quantity: 1, Price: 9.99, Currency: "USD"},
		},
		Summary: messenger.ReceiptSummary{TotalCost: 9.99},
	})
	return err
}
