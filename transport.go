package aegis

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"
)

// Request is the normalized form of one outgoing call handed to the
// Transport. The executor builds one Request per call and reuses it across
// retry attempts, so implementations must not mutate it.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is the normalized form of what the Transport got back. Header
// lookups go through http.Header so they are case-insensitive.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs a single network round trip. The SDK ships with a
// net/http-backed implementation, but hosts that route traffic through their
// own stack (a game engine's request pool, a proxy, a test harness) can
// supply their own via WithTransport. Implementations must honor ctx
// cancellation and return an error for connection-level failures only; any
// received HTTP response, whatever its status, is returned as a Response.
type Transport interface {
	RoundTrip(ctx context.Context, req *Request) (*Response, error)
}

// httpTransport is the default Transport, backed by net/http.
type httpTransport struct {
	client *http.Client
}

func newHTTPTransport(timeout time.Duration) *httpTransport {
	return &httpTransport{
		client: &http.Client{Timeout: timeout},
	}
}

func (t *httpTransport) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, err
	}
	for key, values := range req.Header {
		for _, value := range values {
			hreq.Header.Add(key, value)
		}
	}

	resp, err := t.client.Do(hreq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// classifyTransportError turns a connection-level failure into an APIError.
// Deadline-style failures become Timeout, everything else Network; both are
// retryable.
func classifyTransportError(err error) *APIError {
	kind := ErrorKindNetwork
	message := "connection failed"

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = ErrorKindTimeout
		message = "request timed out"
	}

	return &APIError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}
