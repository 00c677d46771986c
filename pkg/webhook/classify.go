package webhook

import (
	"github.com/orfon/fbmessenger/pkg/util/numberutils"
)

// IsMessagingEvent reports whether the envelope is a Messenger Platform
// callback: an object field plus an entry array.
func IsMessagingEvent(event *Event) bool {
	return event != nil && event.Object != "" && event.Entry != nil
}

// EntriesForPage returns the entries addressed to the given page id. For
// envelopes that are not page-object callbacks the result is empty.
func EntriesForPage(event *Event, pageID string) []Entry {
	if event == nil || event.Object != "page" {
		return nil
	}
	var entries []Entry
	for _, entry := range event.Entry {
		if entry.ID == pageID {
			entries = append(entries, entry)
		}
	}
	return entries
}

// MessagingForPage flattens the messaging arrays of the page's entries,
// preserving entry order.
func MessagingForPage(event *Event, pageID string) []Messaging {
	var messaging []Messaging
	for _, entry := range EntriesForPage(event, pageID) {
		messaging = append(messaging, entry.Messaging...)
	}
	return messaging
}

// IsMessage reports whether the event is a received message. Echoes of
// messages the page itself sent are excluded unless allowEcho is set.
func IsMessage(m *Messaging, allowEcho bool) bool {
	if m == nil || m.Message == nil || m.Message.MID == "" {
		return false
	}
	if m.Message.IsEcho && !allowEcho {
		return false
	}
	return true
}

// IsEcho reports whether the event echoes a message sent by the page.
func IsEcho(m *Messaging) bool {
	return m != nil && m.Message != nil && m.Message.IsEcho
}

// IsQuickReply reports whether the event is a tapped quick reply chip.
func IsQuickReply(m *Messaging) bool {
	return m != nil && m.Message != nil && m.Message.QuickReply != nil
}

// IsPostback reports whether the event is a tapped postback button.
func IsPostback(m *Messaging) bool {
	return m != nil && m.Postback != nil
}

// IsAuthentication reports whether the event is a plugin opt-in.
func IsAuthentication(m *Messaging) bool {
	return m != nil && m.OptIn != nil
}

// IsAccountLinking reports whether the event is an account linking outcome.
func IsAccountLinking(m *Messaging) bool {
	return m != nil && m.AccountLinking != nil
}

// IsDelivery reports whether the event is a delivery receipt.
func IsDelivery(m *Messaging) bool {
	return m != nil && m.Delivery != nil
}

// IsRead reports whether the event is a read receipt.
func IsRead(m *Messaging) bool {
	return m != nil && m.Read != nil
}

// IsReferral reports whether the event is a standalone referral.
func IsReferral(m *Messaging) bool {
	return m != nil && m.Referral != nil
}

// IsValidFacebookID reports whether the value is a numeric-string identifier
// as used for page and page-scoped user ids.
func IsValidFacebookID(id string) bool {
	return id != "" && numberutils.IsDigits(id)
}
