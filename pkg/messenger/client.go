// Package messenger is a client for the Facebook Messenger Platform Send API,
// Messenger Profile API and related page-level endpoints. All operations are
// single synchronous request/response exchanges; a client constructed in
// batch mode instead accumulates operations and ships them in one HTTP call
// on Flush.
package messenger

import (
	"errors"

	"github.com/orfon/fbmessenger/pkg/graph"
	"github.com/orfon/fbmessenger/pkg/log"
)

const (
	messagesEndpoint = "me/messages"
	profileEndpoint  = "me/messenger_profile"
)

var errNotBatchClient = errors.New("flush requires a client in batch mode")

// Client is a handle on one page's Messenger API access. It is not safe for
// concurrent use in batch mode; callers sharing a handle must serialize.
type Client struct {
	graph     *graph.Client
	batchMode bool
	queue     []graph.BatchEntry
}

// Options configures the underlying Graph transport.
type Options = graph.ClientOptions

// New creates a client that issues one HTTP call per operation.
func New(accessToken string, opts Options) *Client {
	return &Client{graph: graph.NewClient(accessToken, opts)}
}

// NewBatch creates a client that queues operations until Flush.
func NewBatch(accessToken string, opts Options) *Client {
	return &Client{graph: graph.NewClient(accessToken, opts), batchMode: true}
}

// Graph exposes the underlying transport for endpoints the typed surface
// does not cover.
func (c *Client) Graph() *graph.Client {
	return c.graph
}

// BatchMode reports whether operations are being queued.
func (c *Client) BatchMode() bool {
	return c.batchMode
}

// Pending returns the number of queued sub-requests.
func (c *Client) Pending() int {
	return len(c.queue)
}

// submit routes an operation to the wire or, in batch mode, onto the queue.
// Queued operations return a nil response; the result arrives via Flush.
func (c *Client) submit(method graph.RequestMethod, endpoint string, body any) (graph.Response, error) {
	if c.batchMode {
		entry, err := c.graph.NewBatchEntry(method, endpoint, body)
		if err != nil {
			return nil, err
		}
		c.queue = append(c.queue, entry)
		return nil, nil
	}
	return c.graph.Request().
		WithMethod(method).
		WithEndpoint(endpoint).
		WithBody(body).
		Execute()
}

// Flush drains the queue and issues the accumulated sub-requests as a single
// batch call. The queue is cleared before the call goes out, so it is empty
// afterwards even when the HTTP exchange fails. Flushing a non-batch client
// is a configuration error; flushing an empty queue is a no-op.
func (c *Client) Flush() ([]graph.BatchResponse, error) {
	if !c.batchMode {
		return nil, graph.WrapConfig(errNotBatchClient)
	}
	if len(c.queue) == 0 {
		return nil, nil
	}
	entries := c.queue
	c.queue = nil
	return c.graph.DoBatch(entries)
}

// sendMultipart issues an upload request immediately. Multipart payloads
// cannot ride in a batch envelope, so in batch mode they bypass the queue.
// Every field of the validated request rides along as a form field, the same
// payload the JSON path would have carried.
func (c *Client) sendMultipart(req *SendRequest, upload *graph.FileUpload) (graph.Response, error) {
	if c.batchMode {
		log.Debug("multipart upload bypasses the batch queue, sending immediately")
	}
	request := c.graph.Request().
		WithEndpoint(messagesEndpoint).
		WithFormField("recipient", req.Recipient).
		WithFormField("message", req.Message).
		WithFormField("notification_type", string(req.NotificationType)).
		WithFile("filedata", upload)
	if req.MessagingType != "" {
		request.WithFormField("messaging_type", req.MessagingType)
	}
	if req.Tag != "" {
		request.WithFormField("tag", req.Tag)
	}
	return request.Execute()
}
