package processor

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/orfon/fbmessenger/pkg/messenger"
	"github.com/orfon/fbmessenger/pkg/msg"
	"github.com/orfon/fbmessenger/pkg/webhook"
)

func TestMain(m *testing.M) {
	msg.Init("../../../configs/messages.yml")
	os.Exit(m.Run())
}

type graphCall struct {
	path string
	body map[string]any
}

// newGraphStub answers every Graph API call with a canned success and records
// the JSON bodies in order.
func newGraphStub(t *testing.T) (*httptest.Server, *[]graphCall) {
	t.Helper()
	var calls []graphCall
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
		calls = append(calls, graphCall{path: r.URL.Path, body: body})

		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"first_name":"Ada","last_name":"Lovelace"}`))
			return
		}
		_, _ = w.Write([]byte(`{"recipient_id":"111","message_id":"mid.reply"}`))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newTestProcessor(t *testing.T) (*ReplyProcessor, *[]graphCall) {
	t.Helper()
	server, calls := newGraphStub(t)
	client := messenger.New("token", messenger.Options{BaseURL: server.URL})
	return NewReplyProcessor(client), calls
}

func textEvent(senderID, text string) webhook.Messaging {
	return webhook.Messaging{
		Sender:  webhook.Principal{ID: senderID},
		Message: &webhook.Message{MID: "mid.in", Text: text},
	}
}

func TestMenuKeywordRepliesWithButtonTemplate(t *testing.T) {
	p, calls := newTestProcessor(t)

	if err := p.HandleMessaging(textEvent("111", "show me the MENU please")); err != nil {
		t.Fatalf("HandleMessaging: %v", err)
	}

	// mark_seen, typing_on, the template, typing_off
	if len(*calls) != 4 {
		t.Fatalf("got %d calls, want 4", len(*calls))
	}
	if got := (*calls)[0].body["sender_action"]; got != "mark_seen" {
		t.Errorf("first call sender_action = %v, want mark_seen", got)
	}
	if got := (*calls)[1].body["sender_action"]; got != "typing_on" {
		t.Errorf("second call sender_action = %v, want typing_on", got)
	}
	raw, _ := json.Marshal((*calls)[2].body)
	if !strings.Contains(string(raw), `"template_type":"button"`) {
		t.Errorf("third call is not a button template: %s", raw)
	}
	if !strings.Contains(string(raw), PayloadPicture) {
		t.Errorf("menu is missing the picture postback: %s", raw)
	}
	if got := (*calls)[3].body["sender_action"]; got != "typing_off" {
		t.Errorf("last call sender_action = %v, want typing_off", got)
	}
}

func TestPictureKeywordSendsAttachmentAndCaption(t *testing.T) {
	p, calls := newTestProcessor(t)

	if err := p.HandleMessaging(textEvent("111", "picture")); err != nil {
		t.Fatalf("HandleMessaging: %v", err)
	}

	// mark_seen, typing_on, attachment, caption, typing_off
	if len(*calls) != 5 {
		t.Fatalf("got %d calls, want 5", len(*calls))
	}
	raw, _ := json.Marshal((*calls)[2].body)
	if !strings.Contains(string(raw), `"type":"image"`) || !strings.Contains(string(raw), demoImageURL) {
		t.Errorf("third call is not the image attachment: %s", raw)
	}
	if (*calls)[3].body["message"] == nil {
		t.Errorf("fourth call has no message: %+v", (*calls)[3].body)
	}
}

func TestFreeTextGreetsByProfileName(t *testing.T) {
	p, calls := newTestProcessor(t)

	if err := p.HandleMessaging(textEvent("111", "hi there")); err != nil {
		t.Fatalf("HandleMessaging: %v", err)
	}

	// mark_seen, typing_on, profile GET, quick replies, typing_off
	if len(*calls) != 5 {
		t.Fatalf("got %d calls, want 5", len(*calls))
	}
	if !strings.Contains((*calls)[2].path, "/111") {
		t.Errorf("third call path = %q, want the profile lookup", (*calls)[2].path)
	}
	raw, _ := json.Marshal((*calls)[3].body)
	if !strings.Contains(string(raw), "Ada") {
		t.Errorf("greeting does not use the profile name: %s", raw)
	}
	if !strings.Contains(string(raw), `"quick_replies"`) {
		t.Errorf("greeting has no quick replies: %s", raw)
	}
}

func TestPostbackDispatch(t *testing.T) {
	p, calls := newTestProcessor(t)

	event := webhook.Messaging{
		Sender:   webhook.Principal{ID: "111"},
		Postback: &webhook.Postback{Payload: PayloadReceipt},
	}
	if err := p.HandleMessaging(event); err != nil {
		t.Fatalf("HandleMessaging: %v", err)
	}

	if len(*calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(*calls))
	}
	raw, _ := json.Marshal((*calls)[0].body)
	if !strings.Contains(string(raw), `"template_type":"receipt"`) {
		t.Errorf("call is not a receipt template: %s", raw)
	}
}

func TestQuickReplyDispatch(t *testing.T) {
	p, calls := newTestProcessor(t)

	event := webhook.Messaging{
		Sender: webhook.Principal{ID: "111"},
		Message: &webhook.Message{
			MID:        "mid.in",
			Text:       "Menu",
			QuickReply: &webhook.QuickReply{Payload: PayloadShowMenu},
		},
	}
	if err := p.HandleMessaging(event); err != nil {
		t.Fatalf("HandleMessaging: %v", err)
	}

	if len(*calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(*calls))
	}
	raw, _ := json.Marshal((*calls)[0].body)
	if !strings.Contains(string(raw), `"template_type":"button"`) {
		t.Errorf("call is not the menu template: %s", raw)
	}
}

func TestUnknownPostbackIsAcknowledged(t *testing.T) {
	p, calls := newTestProcessor(t)

	event := webhook.Messaging{
		Sender:   webhook.Principal{ID: "111"},
		Postback: &webhook.Postback{Payload: "SOMETHING_ELSE"},
	}
	if err := p.HandleMessaging(event); err != nil {
		t.Fatalf("HandleMessaging: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(*calls))
	}
}

func TestSilentEvents(t *testing.T) {
	p, calls := newTestProcessor(t)

	events := []webhook.Messaging{
		{Sender: webhook.Principal{ID: "111"}, Message: &webhook.Message{MID: "mid.e", IsEcho: true}},
		{Sender: webhook.Principal{ID: "111"}, Message: &webhook.Message{MID: "mid.100%s", IsEcho: true}},
		{Sender: webhook.Principal{ID: "111"}, Delivery: &webhook.Delivery{Watermark: 1}},
		{Sender: webhook.Principal{ID: "111"}, Read: &webhook.Read{Watermark: 1}},
		{Sender: webhook.Principal{ID: "111"}, Referral: &webhook.Referral{Ref: "ad"}},
		{Sender: webhook.Principal{ID: "111"}},
	}
	for _, event := range events {
		if err := p.HandleMessaging(event); err != nil {
			t.Fatalf("HandleMessaging(%+v): %v", event, err)
		}
	}
	if len(*calls) != 0 {
		t.Errorf("silent events issued %d calls, want 0", len(*calls))
	}
}
