// Package endpoint calls the PayPal REST resources and maps the responses with the factories.
//
// Every failure is a [*ppcp.RuntimeError] with a fixed message per operation,
// the transport error or the [*ppcp.Error] of the response is its cause.
// Nothing is retried.
package endpoint

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/factory"
)

type Option func(b *base)

// WithLogger sets the logger failed calls are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(b *base) {
		b.log = l
	}
}

type base struct {
	c      *ppcp.Client
	errors *factory.ErrorResponseFactory
	log    *zap.Logger
}

func newBase(c *ppcp.Client, opts []Option) base {
	b := base{
		c:      c,
		errors: factory.NewErrorResponseFactory(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type request struct {
	op     string // Operation for spans, metrics and logs
	msg    string // Message of the returned error
	method string
	path   string
	data   any
	expect []int
	opts   []ppcp.RequestOption
}

// call sends the request and returns the response if its status is one of the expected.
func (b *base) call(ctx context.Context, r request) (*ppcp.Response, error) {
	ctx = ppcp.WithOperation(ctx, r.op)
	res, err := b.c.Do(ctx, r.method, r.path, r.data, r.opts...)
	if err != nil {
		b.log.Warn("PayPal request failed",
			zap.String("operation", r.op),
			zap.Error(err),
		)
		return nil, ppcp.NewRuntimeError(r.msg, err)
	}
	if !slices.Contains(r.expect, res.StatusCode) {
		e := b.errors.FromResponse(res)
		b.log.Warn("Unexpected PayPal response",
			zap.String("operation", r.op),
			zap.Int("status", res.StatusCode),
			zap.String("name", e.Name),
			zap.String("debug_id", e.DebugID),
		)
		return nil, ppcp.NewRuntimeError(r.msg, e)
	}
	return res, nil
}

// requestID makes a POST idempotent for PayPal.
func requestID() ppcp.RequestOption {
	return ppcp.WithHeader("PayPal-Request-Id", uuid.NewString())
}
