package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

var errEmptyBatch = errors.New("batch is empty")

// BatchEntry is one deferred sub-request inside a batch call. The body is the
// url-encoded form Facebook expects for batched POSTs.
type BatchEntry struct {
	Method      string `json:"method"`
	RelativeURL string `json:"relative_url"`
	Body        string `json:"body,omitempty"`
	Name        string `json:"name,omitempty"`
}

// BatchResponse is one sub-response inside a combined batch result. The body
// is the sub-request's JSON response serialized as a string.
type BatchResponse struct {
	Code int    `json:"code"`
	Body string `json:"body"`
}

// Decoded parses the sub-response body with the same error envelope rules as
// a standalone request.
func (br *BatchResponse) Decoded() (Response, error) {
	return decodeResponse(br.Code, []byte(br.Body))
}

// NewBatchEntry builds a sub-request for the given versioned endpoint and
// JSON-marshalable body. Each entry gets a unique name so callers can match
// sub-responses back to the operations that produced them.
func (gc *Client) NewBatchEntry(method RequestMethod, endpoint string, body any) (BatchEntry, error) {
	entry := BatchEntry{
		Method:      string(method),
		RelativeURL: fmt.Sprintf("%s/%s", gc.version, strings.TrimLeft(endpoint, "/")),
		Name:        uuid.NewString(),
	}
	if body != nil {
		form, err := encodeBatchBody(body)
		if err != nil {
			return BatchEntry{}, err
		}
		entry.Body = form
	}
	return entry, nil
}

// encodeBatchBody url-encodes a JSON-marshalable body the way batched Graph
// requests require: top-level strings as plain values, nested structures
// stringified as JSON.
func encodeBatchBody(body any) (string, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", WrapConfig(fmt.Errorf("failed to marshal batch body: %v", err))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return "", WrapConfig(fmt.Errorf("batch body must be a JSON object: %v", err))
	}

	form := url.Values{}
	for key, raw := range fields {
		var asString string
		if err := json.Unmarshal(raw, &asString); err == nil {
			form.Set(key, asString)
			continue
		}
		form.Set(key, string(raw))
	}
	return form.Encode(), nil
}

// DoBatch issues the given sub-requests as one HTTP call against the bare
// Graph host, with form fields "access_token" and "batch". The combined
// result is a JSON array of per-entry responses; a top-level error object
// (bad token, malformed batch) is surfaced as a remote API error.
func (gc *Client) DoBatch(entries []BatchEntry) ([]BatchResponse, error) {
	if gc.accessToken == "" {
		return nil, WrapConfig(errMissingToken)
	}
	if len(entries) == 0 {
		return nil, WrapConfig(errEmptyBatch)
	}

	batch, err := json.Marshal(entries)
	if err != nil {
		return nil, WrapConfig(fmt.Errorf("failed to marshal batch: %v", err))
	}

	form := url.Values{}
	form.Set("access_token", gc.accessToken)
	form.Set("batch", string(batch))

	status, respBody, err := gc.exchange(http.MethodPost, gc.baseURL+"/", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return nil, err
	}
	return decodeBatchResponse(status, respBody)
}

func decodeBatchResponse(status int, body []byte) ([]BatchResponse, error) {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "[") {
		// Not an array, so either an error envelope or garbage.
		if _, err := decodeResponse(status, body); err != nil {
			return nil, err
		}
		return nil, WrapTransport(errors.New("batch response is not a JSON array"))
	}

	var responses []BatchResponse
	if err := json.Unmarshal(body, &responses); err != nil {
		return nil, WrapTransport(fmt.Errorf("batch response is not valid JSON: %v", err))
	}
	if status != http.StatusOK {
		return nil, &APIError{
			Message:    fmt.Sprintf("unexpected http status %d", status),
			HTTPStatus: status,
		}
	}
	return responses, nil
}
