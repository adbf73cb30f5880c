package ppcp

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/sync/singleflight"
)

// Bearer supplies the OAuth2 access token for PayPal calls.
type Bearer interface {
	Bearer(ctx context.Context) (string, error)
}

// BearerFunc adapts a function to [Bearer].
type BearerFunc func(ctx context.Context) (string, error)

func (f BearerFunc) Bearer(ctx context.Context) (string, error) {
	return f(ctx)
}

type Token struct {
	Scope       string `json:"scope"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	AppID       string `json:"app_id"`
	Nonce       string `json:"nonce"`
	ExpiresIn   int    `json:"expires_in"`
	expiresAt   time.Time
}

func (t *Token) Valid() bool {
	if t == nil {
		return false
	}
	return t.expiresAt.After(time.Now())
}

// TokenBearer requests client credential tokens and caches them until they expire.
// It is safe for concurrent use, concurrent refreshes share a single request.
type TokenBearer struct {
	host, id, secret string

	hc *http.Client
	g  singleflight.Group

	mu sync.Mutex
	t  *Token
}

// NewTokenBearer returns a [TokenBearer], a nil hc means [NewHTTPClient].
func NewTokenBearer(host, id, secret string, hc *http.Client) *TokenBearer {
	if hc == nil {
		hc = NewHTTPClient()
	}
	return &TokenBearer{
		host:   host,
		id:     id,
		secret: secret,
		hc:     hc,
	}
}

func (b *TokenBearer) Bearer(ctx context.Context) (string, error) {
	if t := b.cached(); t.Valid() {
		return t.AccessToken, nil
	}
	// The refresh outlives the caller that started it, each caller waits on its own context.
	authCtx := context.WithoutCancel(ctx)
	ch := b.g.DoChan("token", func() (any, error) {
		if t := b.cached(); t.Valid() {
			return t, nil
		}
		t, err := b.Auth(authCtx)
		if err != nil {
			return nil, err
		}
		b.mu.Lock()
		b.t = t
		b.mu.Unlock()
		return t, nil
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return "", r.Err
		}
		return r.Val.(*Token).AccessToken, nil
	}
}

func (b *TokenBearer) cached() *Token {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.t
}

// Auth requests a new token from PayPal server.
// See https://developer.paypal.com/api/rest/authentication/.
func (b *TokenBearer) Auth(ctx context.Context) (res *Token, err error) {
	ctx = WithOperation(ctx, "Auth")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		JoinURL(b.host, "/v1/oauth2/token"), strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(b.id, b.secret)

	start := time.Now()
	if res, err = doJSON[Token](b.hc, req); err != nil {
		return
	}

	// Minus 2 seconds is to prevent expiration due to network latency.
	res.expiresAt = start.Add(time.Duration(res.ExpiresIn-2) * time.Second)
	return
}

func doJSON[R any](hc *http.Client, req *http.Request) (res *R, err error) {
	hres, err := hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do")
	}

	if hres.StatusCode < 400 {
		return RespJSON[R](hres)
	}
	e, err := RespJSON[Error](hres)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal error")
	}
	e.StatusCode = hres.StatusCode
	return nil, e
}
