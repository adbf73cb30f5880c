package factory

import (
	"encoding/json"

	"github.com/adobaai/ppcp"
)

type ErrorResponseFactory struct{}

func NewErrorResponseFactory() *ErrorResponseFactory {
	return &ErrorResponseFactory{}
}

// FromResponse parses the PayPal error in the body.
// A body that is not a PayPal error still gives an error with the status code.
func (f *ErrorResponseFactory) FromResponse(res *ppcp.Response) *ppcp.Error {
	e := new(ppcp.Error)
	_ = json.Unmarshal(res.Body, e) // Best effort
	e.StatusCode = res.StatusCode
	if e.DebugID == "" {
		e.DebugID = res.Header.Get("Paypal-Debug-Id")
	}
	return e
}
