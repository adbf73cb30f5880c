// Package factory maps WooCommerce data to PayPal entities and PayPal
// responses back to entities.
//
// Factories hold no state but the factories they delegate to,
// the same input always gives the same entity.
package factory

import (
	"bytes"
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/adobaai/ppcp"
)

// present reports whether the raw field was sent and is not null.
func present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// decode unmarshals raw into a new T, the error is a [*ppcp.RuntimeError] with msg.
func decode[T any](raw json.RawMessage, resource, msg string) (*T, error) {
	if !present(raw) {
		return nil, ppcp.NewRuntimeError(msg, errors.Errorf("%s: empty response", resource))
	}
	res := new(T)
	if err := json.Unmarshal(raw, res); err != nil {
		return nil, ppcp.NewRuntimeError(msg, errors.Wrapf(err, "unmarshal %s", resource))
	}
	return res, nil
}

// truncate cuts s to n runes, PayPal rejects longer names and descriptions.
func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}

func ptr[T any](v T) *T {
	return &v
}
