// Package checkout drives the createOrder step of the PayPal button on the
// checkout and pay-for-order pages: it posts the page state to the backend
// and renders what the backend answered.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/adobaai/ppcp/backend"
	"github.com/adobaai/ppcp/entity"
)

const (
	checkoutForm    = "form.checkout"
	orderReviewForm = "form#order_review"

	// ResumeOrderField carries the WooCommerce order of the PayPal order to the checkout submit.
	ResumeOrderField = "ppcp-resume-order"
)

type Config struct {
	Context string
	// BNCodes by context, a context without one sends "".
	BNCodes        map[string]string
	CreateOrderURL string
	Nonce          string
	OrderID        string
	// CartToken identifies the Store API session whose cart the order is created for.
	CartToken string
}

// Page is the page the button is rendered on.
type Page interface {
	Payer() *entity.Payer
	// FormValues returns the fields of the form matching the selector, the last value wins.
	FormValues(selector string) map[string]string
	PaymentMethod() string
	FundingSource() string
	CreateAccount() bool
	AppendHiddenInput(selector, name, value string)
}

// ErrorHandler shows the notices above the form.
type ErrorHandler interface {
	AppendPreparedErrorMessageElement(n *html.Node)
	Clear()
	Message(text string, persist bool)
	GenericError()
}

type Spinner interface {
	Unblock()
}

type ActionHandler struct {
	cfg     Config
	page    Page
	errs    ErrorHandler
	spinner Spinner
	hc      *http.Client
}

// NewActionHandler returns a handler, a nil hc means a traced default client.
func NewActionHandler(cfg Config, page Page, errs ErrorHandler, spinner Spinner, hc *http.Client) *ActionHandler {
	if hc == nil {
		hc = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &ActionHandler{cfg: cfg, page: page, errs: errs, spinner: spinner, hc: hc}
}

func (a *ActionHandler) formSelector() string {
	if a.cfg.Context == backend.ContextCheckout {
		return checkoutForm
	}
	return orderReviewForm
}

type createdOrder struct {
	ID            string `json:"id"`
	PurchaseUnits []struct {
		CustomID string `json:"custom_id"`
	} `json:"purchase_units"`
}

// CreateOrder returns the ID of the PayPal order the backend created.
//
// A failure the backend reports is shown to the customer and gives "" without an error,
// the error is only set when the backend could not be reached or answered garbage.
func (a *ActionHandler) CreateOrder(ctx context.Context) (string, error) {
	selector := a.formSelector()
	req := backend.CreateOrderRequest{
		Nonce:         a.cfg.Nonce,
		Payer:         a.page.Payer(),
		BNCode:        a.cfg.BNCodes[a.cfg.Context],
		Context:       a.cfg.Context,
		OrderID:       a.cfg.OrderID,
		PaymentMethod: a.page.PaymentMethod(),
		FundingSource: a.page.FundingSource(),
		Form:          a.page.FormValues(selector),
		CreateAccount: a.page.CreateAccount(),
	}
	res, err := a.post(ctx, req)
	if err != nil {
		a.spinner.Unblock()
		return "", err
	}

	if !res.Success {
		a.spinner.Unblock()
		var d backend.ErrorData
		if len(res.Data) > 0 {
			if err := json.Unmarshal(res.Data, &d); err != nil {
				return "", errors.Wrap(err, "decode error data")
			}
		}
		a.showError(&d, res.Messages)
		return "", nil
	}

	var o createdOrder
	if err := json.Unmarshal(res.Data, &o); err != nil {
		a.spinner.Unblock()
		return "", errors.Wrap(err, "decode order")
	}
	if len(o.PurchaseUnits) == 0 {
		a.spinner.Unblock()
		return "", errors.Errorf("order %s has no purchase units", o.ID)
	}
	a.page.AppendHiddenInput(selector, ResumeOrderField, o.PurchaseUnits[0].CustomID)
	return o.ID, nil
}

func (a *ActionHandler) post(ctx context.Context, body backend.CreateOrderRequest) (*backend.Response, error) {
	bs, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "marshal")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.CreateOrderURL, bytes.NewReader(bs))
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	req.Header.Set("Content-Type", "application/json")
	if a.cfg.CartToken != "" {
		req.Header.Set("Cart-Token", a.cfg.CartToken)
	}
	hres, err := a.hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do")
	}
	defer hres.Body.Close()

	var res backend.Response
	if err := json.NewDecoder(hres.Body).Decode(&res); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}
	return &res, nil
}

// showError shows the details of a failure, its message when there are none,
// and the notices WooCommerce rendered only when neither is given.
func (a *ActionHandler) showError(d *backend.ErrorData, messages *string) {
	switch {
	case len(d.Details) > 0:
		lines := make([]string, 0, len(d.Details))
		for _, detail := range d.Details {
			lines = append(lines, detail.Issue+" "+detail.Description)
		}
		a.errs.Clear()
		a.errs.Message(strings.Join(lines, "<br/>"), true)
	case d.Message != "":
		a.errs.Clear()
		a.errs.Message(d.Message, true)
	case messages != nil:
		a.showMessages(*messages)
	default:
		a.errs.GenericError()
	}
}

// showMessages shows the first list of the notices WooCommerce rendered.
func (a *ActionHandler) showMessages(messages string) {
	doc, err := html.Parse(strings.NewReader(messages))
	if err != nil {
		a.errs.GenericError()
		return
	}
	ul := find(doc, atom.Ul)
	if ul == nil {
		a.errs.GenericError()
		return
	}
	ul.Parent.RemoveChild(ul)
	a.errs.AppendPreparedErrorMessageElement(ul)
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

// OnCancel runs when the customer closes the PayPal popup.
func (a *ActionHandler) OnCancel() {
	a.spinner.Unblock()
}

// OnError runs when the PayPal SDK fails.
func (a *ActionHandler) OnError() {
	a.errs.GenericError()
	a.spinner.Unblock()
}
