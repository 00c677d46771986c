package messenger

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orfon/fbmessenger/pkg/graph"
)

// newCapturingServer records the JSON bodies of profile calls.
func newCapturingServer(t *testing.T) (*httptest.Server, *[]map[string]any) {
	t.Helper()
	bodies := &[]map[string]any{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		*bodies = append(*bodies, body)
		_, _ = w.Write([]byte(`{"result":"success"}`))
	}))
	t.Cleanup(server.Close)
	return server, bodies
}

func TestProfilePayloadFieldNames(t *testing.T) {
	server, bodies := newCapturingServer(t)
	client := New("test-token", Options{BaseURL: server.URL})

	tests := []struct {
		name string
		call func() (graph.Response, error)
		key  string
	}{
		{"greeting", func() (graph.Response, error) {
			return client.SetGreeting([]Greeting{{Locale: "default", Text: "Hello!"}})
		}, "greeting"},
		{"get started", func() (graph.Response, error) {
			return client.SetGetStarted("GET_STARTED")
		}, "get_started"},
		{"persistent menu", func() (graph.Response, error) {
			return client.SetPersistentMenu([]PersistentMenu{{
				Locale:        "default",
				CallToActions: []MenuItem{{Type: "postback", Title: "Menu", Payload: "SHOW_MENU"}},
			}})
		}, "persistent_menu"},
		{"whitelisted domains", func() (graph.Response, error) {
			return client.SetWhitelistedDomains([]string{"https://example.com"})
		}, "whitelisted_domains"},
		{"account linking url", func() (graph.Response, error) {
			return client.SetAccountLinkingURL("https://example.com/link")
		}, "account_linking_url"},
		{"target audience", func() (graph.Response, error) {
			return client.SetTargetAudience(TargetAudience{
				AudienceType: "custom",
				Countries:    &CountryLists{Whitelist: []string{"US", "BR"}},
			})
		}, "target_audience"},
		{"home url", func() (graph.Response, error) {
			return client.SetHomeURL(HomeURL{URL: "https://example.com/ext"})
		}, "home_url"},
		{"delete fields", func() (graph.Response, error) {
			return client.DeleteProfileFields([]string{"greeting"})
		}, "fields"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.call(); err != nil {
				t.Fatalf("call failed: %v", err)
			}
			if len(*bodies) != i+1 {
				t.Fatalf("got %d calls, want %d", len(*bodies), i+1)
			}
			body := (*bodies)[i]
			if _, ok := body[tt.key]; !ok {
				t.Errorf("payload %v is missing field %q", body, tt.key)
			}
			if len(body) != 1 {
				t.Errorf("payload %v carries extra fields besides %q", body, tt.key)
			}
		})
	}
}

func TestGetStartedPayloadShape(t *testing.T) {
	server, bodies := newCapturingServer(t)
	client := New("test-token", Options{BaseURL: server.URL})

	if _, err := client.SetGetStarted("GET_STARTED"); err != nil {
		t.Fatalf("SetGetStarted: %v", err)
	}
	nested, ok := (*bodies)[0]["get_started"].(map[string]any)
	if !ok || nested["payload"] != "GET_STARTED" {
		t.Errorf("payload = %v, want get_started.payload", (*bodies)[0])
	}
}

func TestProfileValidation(t *testing.T) {
	server, bodies := newCapturingServer(t)
	client := New("test-token", Options{BaseURL: server.URL})

	tests := []struct {
		name string
		call func() (graph.Response, error)
	}{
		{"empty greeting", func() (graph.Response, error) { return client.SetGreeting(nil) }},
		{"empty get started", func() (graph.Response, error) { return client.SetGetStarted("") }},
		{"empty menu", func() (graph.Response, error) { return client.SetPersistentMenu(nil) }},
		{"menu without items", func() (graph.Response, error) {
			return client.SetPersistentMenu([]PersistentMenu{{Locale: "default"}})
		}},
		{"empty domains", func() (graph.Response, error) { return client.SetWhitelistedDomains(nil) }},
		{"empty linking url", func() (graph.Response, error) { return client.SetAccountLinkingURL("") }},
		{"bad audience type", func() (graph.Response, error) {
			return client.SetTargetAudience(TargetAudience{AudienceType: "some"})
		}},
		{"missing home url", func() (graph.Response, error) { return client.SetHomeURL(HomeURL{}) }},
		{"bad share button", func() (graph.Response, error) {
			return client.SetHomeURL(HomeURL{URL: "https://example.com", WebviewShareButton: "maybe"})
		}},
		{"empty delete", func() (graph.Response, error) { return client.DeleteProfileFields(nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.call(); !errors.Is(err, graph.ErrConfig) {
				t.Errorf("expected ErrConfig, got %v", err)
			}
		})
	}
	if len(*bodies) != 0 {
		t.Errorf("validation failures reached the network: %d calls", len(*bodies))
	}
}

func TestNonCustomAudienceDropsCountries(t *testing.T) {
	server, bodies := newCapturingServer(t)
	client := New("test-token", Options{BaseURL: server.URL})

	_, err := client.SetTargetAudience(TargetAudience{
		AudienceType: "all",
		Countries:    &CountryLists{Whitelist: []string{"US"}},
	})
	if err != nil {
		t.Fatalf("SetTargetAudience: %v", err)
	}
	audience, ok := (*bodies)[0]["target_audience"].(map[string]any)
	if !ok {
		t.Fatalf("payload = %v, want target_audience object", (*bodies)[0])
	}
	if _, present := audience["countries"]; present {
		t.Errorf("audience %v carries countries for a non-custom type", audience)
	}
}
