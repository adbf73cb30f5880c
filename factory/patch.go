package factory

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/adobaai/ppcp/entity"
)

// PatchCollectionFactory diffs orders for PATCH /v2/checkout/orders/{id}.
type PatchCollectionFactory struct{}

func NewPatchCollectionFactory() *PatchCollectionFactory {
	return &PatchCollectionFactory{}
}

// FromOrders returns a replace patch for every purchase unit of to
// that no purchase unit of from equals.
func (f *PatchCollectionFactory) FromOrders(from, to *entity.Order) ([]*entity.Patch, error) {
	existing := make([][]byte, 0, len(from.PurchaseUnits))
	for _, u := range from.PurchaseUnits {
		bs, err := json.Marshal(u)
		if err != nil {
			return nil, err
		}
		existing = append(existing, bs)
	}

	var res []*entity.Patch
	for _, u := range to.PurchaseUnits {
		bs, err := json.Marshal(u)
		if err != nil {
			return nil, err
		}
		if slices.ContainsFunc(existing, func(e []byte) bool { return bytes.Equal(e, bs) }) {
			continue
		}
		res = append(res, &entity.Patch{
			Op:    "replace",
			Path:  fmt.Sprintf("/purchase_units/@reference_id=='%s'", u.ReferenceID()),
			Value: u,
		})
	}
	return res, nil
}
