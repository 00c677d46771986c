package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Graph API host every request is issued against.
const DefaultBaseURL = "https://graph.facebook.com"

// DefaultVersion is the Graph API version used when none is configured.
const DefaultVersion = "v22.0"

var (
	errMissingClient   = errors.New("client is required")
	errMissingEndpoint = errors.New("endpoint is required")
	errMissingToken    = errors.New("access token is required")
)

// Response is the decoded JSON success body of a Graph API call.
type Response map[string]any

// Decode re-marshals the response into a typed value.
func (r Response) Decode(target any) error {
	encoded, err := json.Marshal(r)
	if err != nil {
		return WrapTransport(err)
	}
	if err := json.Unmarshal(encoded, target); err != nil {
		return WrapTransport(err)
	}
	return nil
}

// Client issues HTTPS requests against the Graph API. Each call is a single
// synchronous request/response exchange; the client holds no mutable state.
type Client struct {
	baseURL     string
	version     string
	accessToken string
	client      *http.Client
}

// ClientOptions represents the configuration options for the Graph client.
type ClientOptions struct {
	BaseURL             string
	Version             string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ConnectionTimeout   time.Duration
	ReadTimeout         time.Duration
}

// NewClient creates a Graph API client for the given page access token.
func NewClient(accessToken string, opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 200
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 20
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 60 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 60 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     opts.IdleConnTimeout,
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectionTimeout,
		}).DialContext,
	}

	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		version:     opts.Version,
		accessToken: accessToken,
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.ReadTimeout,
		},
	}
}

// Version returns the configured Graph API version.
func (gc *Client) Version() string {
	return gc.version
}

// Request creates a new Request object bound to the client.
func (gc *Client) Request() *Request {
	return NewGraphRequest(gc)
}

// do executes a prepared request: builds the URL, encodes the body as JSON
// or multipart form data, issues the HTTP call and decodes the result.
func (gc *Client) do(r *Request) (Response, error) {
	if gc.accessToken == "" {
		return nil, WrapConfig(errMissingToken)
	}

	endpointURL := fmt.Sprintf("%s/%s/%s", gc.baseURL, gc.version, strings.TrimLeft(r.requestEndpoint, "/"))

	query := url.Values{}
	for key, values := range r.requestQuery {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	query.Set("access_token", gc.accessToken)
	endpointURL += "?" + query.Encode()

	var bodyReader io.Reader
	var contentType string
	var err error

	if r.IsMultipart() {
		bodyReader, contentType, err = encodeMultipart(r.requestFields, r.requestFiles)
	} else {
		bodyReader, contentType, err = encodeJSON(r.requestBody)
	}
	if err != nil {
		return nil, err
	}

	status, respBody, err := gc.exchange(string(r.requestMethod), endpointURL, bodyReader, contentType)
	if err != nil {
		return nil, err
	}
	return decodeResponse(status, respBody)
}

// exchange performs one HTTP round trip and returns the raw response body.
func (gc *Client) exchange(method, requestURL string, body io.Reader, contentType string) (int, []byte, error) {
	req, err := http.NewRequest(method, requestURL, body)
	if err != nil {
		return 0, nil, WrapTransport(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := gc.client.Do(req)
	if err != nil {
		return 0, nil, WrapTransport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, WrapTransport(err)
	}
	return resp.StatusCode, respBody, nil
}

// decodeResponse parses the response body and applies the error envelope
// rules: a non-200 status or a decoded "error" object is a remote API error,
// a body that is not JSON is a transport error.
func decodeResponse(status int, body []byte) (Response, error) {
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, WrapTransport(fmt.Errorf("response is not valid JSON: %v", err))
	}
	if envelope.Error != nil {
		envelope.Error.HTTPStatus = status
		return nil, envelope.Error
	}
	if status != http.StatusOK {
		return nil, &APIError{
			Message:    fmt.Sprintf("unexpected http status %d", status),
			HTTPStatus: status,
		}
	}

	var decoded Response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, WrapTransport(fmt.Errorf("response is not a JSON object: %v", err))
	}
	return decoded, nil
}

func encodeJSON(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, "", WrapConfig(fmt.Errorf("failed to marshal request body: %v", err))
	}
	return bytes.NewReader(encoded), "application/json", nil
}

// encodeMultipart builds a multipart form body. Plain string fields are
// written as is, structured fields are stringified as JSON and uploads become
// file parts. Every upload stream is closed here, exactly once, even when
// encoding fails partway through.
func encodeMultipart(fields map[string]any, files map[string]*FileUpload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, value := range fields {
		var encoded string
		switch v := value.(type) {
		case string:
			encoded = v
		default:
			jsonValue, err := json.Marshal(v)
			if err != nil {
				_ = writer.Close()
				return nil, "", WrapConfig(fmt.Errorf("failed to marshal form field %q: %v", key, err))
			}
			encoded = string(jsonValue)
		}
		if err := writer.WriteField(key, encoded); err != nil {
			_ = writer.Close()
			return nil, "", WrapTransport(err)
		}
	}

	if err := writeFileParts(writer, files); err != nil {
		_ = writer.Close()
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", WrapTransport(err)
	}
	return buf, writer.FormDataContentType(), nil
}

func writeFileParts(writer *multipart.Writer, files map[string]*FileUpload) error {
	for key, file := range files {
		stream, err := file.open()
		if err != nil {
			return WrapConfig(fmt.Errorf("failed to open upload %q: %v", key, err))
		}
		part, err := writer.CreateFormFile(key, file.Name)
		if err != nil {
			_ = stream.Close()
			return WrapTransport(err)
		}
		_, err = io.Copy(part, stream)
		closeErr := stream.Close()
		if err != nil {
			return WrapTransport(err)
		}
		if closeErr != nil {
			return WrapTransport(closeErr)
		}
	}
	return nil
}
