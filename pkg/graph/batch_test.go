package graph

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
)

func TestNewBatchEntryEncodesBodyAsForm(t *testing.T) {
	client := NewClient("test-token", ClientOptions{Version: "v22.0"})

	entry, err := client.NewBatchEntry(POST, "me/messages", map[string]any{
		"recipient": map[string]string{"id": "123"},
		"message":   map[string]string{"text": "hi"},
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if entry.Method != "POST" {
		t.Fatalf("unexpected method: %s", entry.Method)
	}
	if entry.RelativeURL != "v22.0/me/messages" {
		t.Fatalf("unexpected relative url: %s", entry.RelativeURL)
	}
	if entry.Name == "" {
		t.Fatalf("entry name should be assigned")
	}

	form, err := url.ParseQuery(entry.Body)
	if err != nil {
		t.Fatalf("body is not url-encoded: %v", err)
	}
	var recipient map[string]string
	if err := json.Unmarshal([]byte(form.Get("recipient")), &recipient); err != nil || recipient["id"] != "123" {
		t.Fatalf("nested object not stringified as JSON: %q", form.Get("recipient"))
	}
}

func TestNewBatchEntryRejectsNonObjectBody(t *testing.T) {
	client := NewClient("test-token", ClientOptions{})
	if _, err := client.NewBatchEntry(POST, "me/messages", "just a string"); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestDoBatchIssuesOneCall(t *testing.T) {
	var calls int
	var gotBatch []BatchEntry
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if err := r.ParseForm(); err != nil {
			t.Errorf("batch request is not form-encoded: %v", err)
		}
		if r.PostFormValue("access_token") != "test-token" {
			t.Errorf("access token missing from form")
		}
		if err := json.Unmarshal([]byte(r.PostFormValue("batch")), &gotBatch); err != nil {
			t.Errorf("batch field is not a JSON array: %v", err)
		}
		_, _ = w.Write([]byte(`[
			{"code":200,"body":"{\"message_id\":\"mid.1\"}"},
			{"code":200,"body":"{\"message_id\":\"mid.2\"}"},
			{"code":400,"body":"{\"error\":{\"code\":190,\"type\":\"OAuthException\",\"message\":\"bad token\"}}"}
		]`))
	})

	entries := make([]BatchEntry, 0, 3)
	for _, text := range []string{"one", "two", "three"} {
		entry, err := client.NewBatchEntry(POST, "me/messages", map[string]string{"text": text})
		if err != nil {
			t.Fatalf("entry build failed: %v", err)
		}
		entries = append(entries, entry)
	}

	responses, err := client.DoBatch(entries)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one HTTP call, got %d", calls)
	}
	if len(gotBatch) != 3 {
		t.Fatalf("expected 3 batch entries on the wire, got %d", len(gotBatch))
	}
	if len(responses) != 3 {
		t.Fatalf("expected 3 sub-responses, got %d", len(responses))
	}

	decoded, err := responses[0].Decoded()
	if err != nil {
		t.Fatalf("first sub-response should decode: %v", err)
	}
	if decoded["message_id"] != "mid.1" {
		t.Fatalf("unexpected sub-response body: %v", decoded)
	}

	if _, err := responses[2].Decoded(); !errors.Is(err, ErrRemote) {
		t.Fatalf("failing sub-response should surface ErrRemote, got %v", err)
	}
}

func TestDoBatchSurfacesTopLevelError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":190,"type":"OAuthException","message":"bad token"}}`))
	})

	entry, err := client.NewBatchEntry(POST, "me/messages", map[string]string{"text": "hi"})
	if err != nil {
		t.Fatalf("entry build failed: %v", err)
	}
	if _, err := client.DoBatch([]BatchEntry{entry}); !errors.Is(err, ErrRemote) {
		t.Fatalf("expected ErrRemote, got %v", err)
	}
}

func TestDoBatchSurfacesNon200WithoutErrorObject(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`[]`))
	})

	entry, err := client.NewBatchEntry(POST, "me/messages", map[string]string{"text": "hi"})
	if err != nil {
		t.Fatalf("entry build failed: %v", err)
	}
	_, err = client.DoBatch([]BatchEntry{entry})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.HTTPStatus != http.StatusBadGateway {
		t.Fatalf("http status = %d, want 502", apiErr.HTTPStatus)
	}
	if apiErr.Code != 0 {
		t.Fatalf("Code = %d, want 0 when the body had no error object", apiErr.Code)
	}
}

func TestDoBatchRejectsEmptyBatch(t *testing.T) {
	client := NewClient("test-token", ClientOptions{})
	if _, err := client.DoBatch(nil); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for empty batch, got %v", err)
	}
}
