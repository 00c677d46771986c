package graph

import "net/url"

// RequestMethod represents the HTTP method for the request.
type RequestMethod string

const (
	GET    RequestMethod = "GET"
	POST   RequestMethod = "POST"
	DELETE RequestMethod = "DELETE"
)

// Request represents one Graph API call under construction. The zero value
// is not usable; obtain one through Client.Request.
type Request struct {
	requestClient   *Client
	requestMethod   RequestMethod
	requestEndpoint string
	requestQuery    url.Values
	requestBody     any
	requestFields   map[string]any
	requestFiles    map[string]*FileUpload
}

// NewGraphRequest creates a new Request object bound to the given client.
func NewGraphRequest(client *Client) *Request {
	return &Request{
		requestClient: client,
		requestMethod: POST,
	}
}

// WithMethod sets the HTTP method for the request.
func (r *Request) WithMethod(method RequestMethod) *Request {
	r.requestMethod = method
	return r
}

// WithEndpoint sets the versioned endpoint for the request, e.g. "me/messages".
func (r *Request) WithEndpoint(endpoint string) *Request {
	r.requestEndpoint = endpoint
	return r
}

// WithQuery adds a query parameter to the request URL.
func (r *Request) WithQuery(key, value string) *Request {
	if r.requestQuery == nil {
		r.requestQuery = url.Values{}
	}
	r.requestQuery.Set(key, value)
	return r
}

// WithBody sets the JSON body for the request. Ignored when file parts are
// attached; multipart requests carry their payload in form fields instead.
func (r *Request) WithBody(body any) *Request {
	r.requestBody = body
	return r
}

// WithFormField adds a multipart form field. String values are written as is,
// anything else is stringified as JSON the way the Graph API expects.
func (r *Request) WithFormField(key string, value any) *Request {
	if r.requestFields == nil {
		r.requestFields = make(map[string]any)
	}
	r.requestFields[key] = value
	return r
}

// WithFile attaches an upload as a multipart file part. Attaching at least
// one file switches the request to multipart encoding.
func (r *Request) WithFile(key string, file *FileUpload) *Request {
	if r.requestFiles == nil {
		r.requestFiles = make(map[string]*FileUpload)
	}
	r.requestFiles[key] = file
	return r
}

// IsMultipart reports whether the request will be sent as multipart form data.
func (r *Request) IsMultipart() bool {
	return len(r.requestFiles) > 0
}

// Execute sends the request and returns the decoded response.
func (r *Request) Execute() (Response, error) {
	if r.requestClient == nil {
		return nil, WrapConfig(errMissingClient)
	}
	if r.requestEndpoint == "" {
		return nil, WrapConfig(errMissingEndpoint)
	}
	return r.requestClient.do(r)
}
