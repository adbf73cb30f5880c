package ppcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/adobaai/ppcp"

// Client performs authenticated calls against the PayPal REST API.
// It does not interpret the responses, that is left to the endpoints.
type Client struct {
	host string
	b    Bearer

	hc       *http.Client
	requests metric.Int64Counter
}

type Option func(c *Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

func NewClient(host string, b Bearer, opts ...Option) *Client {
	c := &Client{
		host: host,
		b:    b,
		hc:   NewHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	// The global meter provider is a no-op unless the application installs one,
	// an error here only means the counter is not recorded.
	c.requests, _ = otel.Meter(instrumentationName).Int64Counter("ppcp.client.requests",
		metric.WithDescription("Number of requests sent to PayPal"))
	return c
}

// NewHTTPClient returns an [http.Client] whose spans are named after the PayPal operation.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(
			http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(formatSpanName),
			otelhttp.WithSpanOptions(
				trace.WithAttributes(semconv.PeerServiceKey.String("paypal")),
			),
		),
	}
}

func (c *Client) Host() string {
	return c.host
}

func formatSpanName(_ string, r *http.Request) string {
	op := GetOperation(r.Context())
	if op == "" {
		// Fallback to the default name
		op = r.Method
	}
	return "PayPal " + op
}

type operationKey struct{}

func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

func GetOperation(ctx context.Context) string {
	op, _ := ctx.Value(operationKey{}).(string)
	return op
}

// Response is a PayPal response with the body already read and closed.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type RequestOption func(r *http.Request)

// WithHeader sets an additional header on the request, e.g. PayPal-Request-Id.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// Do sends the data marshaled to JSON to host/path with the bearer token
// and the headers every PayPal call carries.
//
// The returned error is only about the transport (token, request, connection),
// the status code of the response is for the caller to check.
func (c *Client) Do(ctx context.Context, method, path string, data any, opts ...RequestOption,
) (res *Response, err error) {
	token, err := c.b.Bearer(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "bearer")
	}
	req, err := NewJSONRequest(ctx, method, JoinURL(c.host, path), data)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Prefer", "return=representation")
	for _, opt := range opts {
		opt(req)
	}

	hres, err := c.hc.Do(req)
	if err != nil {
		c.count(ctx, 0)
		return nil, errors.Wrap(err, "do")
	}
	defer hres.Body.Close()
	c.count(ctx, hres.StatusCode)

	bs, err := io.ReadAll(hres.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	return &Response{
		StatusCode: hres.StatusCode,
		Header:     hres.Header,
		Body:       bs,
	}, nil
}

func (c *Client) count(ctx context.Context, status int) {
	if c.requests == nil {
		return
	}
	c.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", GetOperation(ctx)),
		attribute.Int("status", status),
	))
}

// JoinURL joins the host and the path with exactly one slash.
func JoinURL(host, path string) string {
	return strings.TrimRight(host, "/") + "/" + strings.TrimLeft(path, "/")
}

// Link is a HATEOAS link.
// See https://developer.paypal.com/api/rest/responses/#link-hateoaslinks.
type Link struct {
	HRef   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

// NewJSONRequest returns a new [http.Request] with the given data marshaled to JSON format.
func NewJSONRequest(ctx context.Context, method, url string, data any,
) (res *http.Request, err error) {
	var r io.Reader
	if data != nil {
		bs, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(bs)
	}
	res, err = http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return
	}
	res.Header.Set("Content-Type", "application/json")
	return
}

// RespJSON unmarshals the response body into a new R and closes the body afterward.
func RespJSON[R any](r *http.Response) (res *R, err error) {
	defer r.Body.Close()
	bs, err := io.ReadAll(r.Body)
	if err != nil {
		return
	}
	res = new(R)
	err = json.Unmarshal(bs, res)
	return
}
