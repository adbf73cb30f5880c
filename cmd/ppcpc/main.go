package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/adobaai/ppcp"
	"github.com/adobaai/ppcp/backend"
	"github.com/adobaai/ppcp/config"
	"github.com/adobaai/ppcp/endpoint"
	"github.com/adobaai/ppcp/factory"
	"github.com/adobaai/ppcp/vault"
	"github.com/adobaai/ppcp/wc"
)

var configFile = flag.String("config", "", "Path of the YAML config, ppcp.yaml or /etc/ppcp/config.yaml if empty")
var authorization = flag.String("authorization", "", "Show the authorized payment with the ID")
var capture = flag.String("capture", "", "Capture the authorized payment with the ID")
var void = flag.String("void", "", "Void the authorized payment with the ID")
var refund = flag.String("refund", "", "Refund the captured payment with the ID in full")
var order = flag.String("order", "", "Show the PayPal order with the ID")
var tokens = flag.Int("tokens", 0, "List the vaulted payment tokens of the WooCommerce user with the ID")
var serve = flag.Bool("serve", false, "Serve the create-order endpoint for the checkout button")
var nonce = flag.String("nonce", "", "Nonce the served endpoint accepts")

func main() {
	flag.Parse()
	if err := do(context.Background()); err != nil {
		fmt.Println("ERR:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg      *config.Config
	log      *zap.Logger
	factory  *factory.Set
	payments *endpoint.PaymentsEndpoint
	orders   *endpoint.OrderEndpoint
	tokens   *vault.PaymentTokenRepository
}

func newApp() (*app, error) {
	var files []string
	if *configFile != "" {
		files = []string{*configFile}
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	host := cfg.PayPal.APIBase()
	c := ppcp.NewClient(host, ppcp.NewTokenBearer(host, cfg.PayPal.ClientID, cfg.PayPal.Secret, nil))
	f := factory.NewSet()
	opt := endpoint.WithLogger(log)
	return &app{
		cfg:      cfg,
		log:      log,
		factory:  f,
		payments: endpoint.NewPaymentsEndpoint(c, f.Authorizations, f.Captures, f.Refunds, opt),
		orders:   endpoint.NewOrderEndpoint(c, f.Orders, f.Patches, opt),
		tokens: vault.NewPaymentTokenRepository(
			endpoint.NewPaymentTokenEndpoint(c, f.PaymentTokens, cfg.PayPal.CustomerPrefix, opt)),
	}, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "parse log level")
	}
	zc := zap.NewProductionConfig()
	if lvl.Level() == zap.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = lvl
	return zc.Build()
}

func do(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync() //nolint:errcheck

	switch {
	case *authorization != "":
		return show(a.payments.Authorization(ctx, *authorization))
	case *capture != "":
		return show(a.payments.CaptureAuthorization(ctx, *capture))
	case *void != "":
		return a.payments.VoidAuthorization(ctx, *void)
	case *refund != "":
		return show(a.payments.RefundCapture(ctx, *refund, endpoint.RefundParams{}))
	case *order != "":
		return show(a.orders.Order(ctx, *order))
	case *tokens != 0:
		return show(a.tokens.AllForUserID(ctx, *tokens))
	case *serve:
		return a.serve(ctx)
	}

	return fmt.Errorf("nothing to do")
}

func show[T any](v T, err error) error {
	if err != nil {
		return err
	}
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	fmt.Println(string(bs))
	return nil
}

func (a *app) serve(ctx context.Context) error {
	if *nonce == "" {
		return fmt.Errorf("serve needs a nonce")
	}
	store := wc.NewStoreClient(a.cfg.Store.URL, a.cfg.Store.ConsumerKey, a.cfg.Store.ConsumerSecret, nil)
	verify := backend.NonceFunc(func(ctx context.Context, n string) bool {
		return subtle.ConstantTimeCompare([]byte(n), []byte(*nonce)) == 1
	})
	h := backend.NewHandler(verify, store, store, a.orders, a.factory,
		backend.WithBNCode(a.cfg.PayPal.BNCode),
		backend.WithLogger(a.log),
	)
	r := mux.NewRouter()
	h.Register(r)

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("Shutdown", zap.Error(err))
		}
	}()

	a.log.Info("Serving", zap.String("addr", a.cfg.Addr))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "listen")
	}
	return nil
}
