package wc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

const (
	storeAPIPath = "/wp-json/wc/store/v1"
	restAPIPath  = "/wp-json/wc/v3"
)

// Error is a WooCommerce API error response.
type Error struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("woocommerce: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("woocommerce: %s: %s", e.Code, e.Message)
}

// StoreClient reads carts through the Store API and orders through the REST API v3.
//
// The Store API is keyed by the Cart-Token of the shopper session,
// the REST API uses the consumer key and secret with basic auth.
type StoreClient struct {
	url    string
	key    string
	secret string
	hc     *http.Client
}

// NewStoreClient returns a client for the store at url, a nil hc means a traced default client.
func NewStoreClient(url, key, secret string, hc *http.Client) *StoreClient {
	if hc == nil {
		hc = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &StoreClient{
		url:    strings.TrimSuffix(url, "/"),
		key:    key,
		secret: secret,
		hc:     hc,
	}
}

// Cart returns the cart of the session the token belongs to.
func (c *StoreClient) Cart(ctx context.Context, cartToken string) (*StoreCart, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+storeAPIPath+"/cart", nil)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	req.Header.Set("Accept", "application/json")
	if cartToken != "" {
		req.Header.Set("Cart-Token", cartToken)
	}
	bs, err := c.do(req)
	if err != nil {
		return nil, errors.Wrap(err, "get cart")
	}
	return ParseStoreCart(bs)
}

// Order returns the order with its digital products marked.
func (c *StoreClient) Order(ctx context.Context, id int) (*RESTOrder, error) {
	bs, err := c.rest(ctx, "/orders/"+strconv.Itoa(id))
	if err != nil {
		return nil, errors.Wrap(err, "get order")
	}
	o, err := ParseRESTOrder(bs)
	if err != nil {
		return nil, err
	}

	ids := make(map[int]struct{}, len(o.o.LineItems))
	for _, it := range o.o.LineItems {
		if it.ProductID != 0 {
			ids[it.ProductID] = struct{}{}
		}
	}
	var (
		mu      sync.Mutex
		digital []int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, pid := range maps.Keys(ids) {
		pid := pid
		g.Go(func() error {
			p, err := c.product(gctx, pid)
			if err != nil {
				return errors.Wrapf(err, "get product %d", pid)
			}
			if p.Virtual || p.Downloadable {
				mu.Lock()
				digital = append(digital, pid)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	o.MarkDigital(digital...)
	return o, nil
}

type product struct {
	ID           int  `json:"id"`
	Virtual      bool `json:"virtual"`
	Downloadable bool `json:"downloadable"`
}

func (c *StoreClient) product(ctx context.Context, id int) (*product, error) {
	bs, err := c.rest(ctx, "/products/"+strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	var p product
	if err := json.Unmarshal(bs, &p); err != nil {
		return nil, errors.Wrap(err, "unmarshal product")
	}
	return &p, nil
}

func (c *StoreClient) rest(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+restAPIPath+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.key, c.secret)
	return c.do(req)
}

func (c *StoreClient) do(req *http.Request) ([]byte, error) {
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do")
	}
	defer res.Body.Close()
	bs, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	if res.StatusCode >= 400 {
		e := &Error{StatusCode: res.StatusCode}
		_ = json.Unmarshal(bs, e) // Best effort
		return nil, e
	}
	return bs, nil
}
