// Package config loads the settings of the ppcpc tool and its backend
// from PPCP_ prefixed environment variables and YAML files.
package config

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/plutov/paypal/v4"
)

// DefaultFiles are read in order, missing files are skipped.
var DefaultFiles = []string{"ppcp.yaml", "/etc/ppcp/config.yaml"}

type Config struct {
	Addr     string   `default:":8080" env:"ADDR" yaml:"addr" usage:"Backend listen address" validate:"required"`
	LogLevel string   `default:"info" env:"LOG_LEVEL" yaml:"log_level" validate:"oneof=debug info warn error"`
	PayPal   PayPal   `env:"PAYPAL" yaml:"paypal"`
	Store    Store    `env:"STORE" yaml:"store"`
	Settings Settings `env:"SETTINGS" yaml:"settings"`
}

type PayPal struct {
	Environment string `default:"sandbox" env:"ENVIRONMENT" yaml:"environment" validate:"oneof=sandbox live"`
	// Host overrides the API base of the environment, e.g. for a mock server.
	Host     string `env:"HOST" yaml:"host" validate:"omitempty,url"`
	ClientID string `env:"CLIENT_ID" yaml:"client_id" validate:"required"`
	Secret   string `env:"SECRET" yaml:"secret" validate:"required"`
	// BNCode is sent as PayPal-Partner-Attribution-Id.
	BNCode string `default:"Woo_PPCP" env:"BN_CODE" yaml:"bn_code"`
	// CustomerPrefix keeps vault customer IDs of several shops apart.
	CustomerPrefix string `default:"wc_" env:"CUSTOMER_PREFIX" yaml:"customer_prefix"`
}

// APIBase returns the REST host to call.
func (p PayPal) APIBase() string {
	if p.Host != "" {
		return p.Host
	}
	if p.Environment == "live" {
		return paypal.APIBaseLive
	}
	return paypal.APIBaseSandBox
}

// Store is the WooCommerce shop, the REST API keys are only needed to read orders.
type Store struct {
	URL            string `env:"URL" yaml:"url" validate:"omitempty,url"`
	ConsumerKey    string `env:"CONSUMER_KEY" yaml:"consumer_key" validate:"required_with=ConsumerSecret"`
	ConsumerSecret string `env:"CONSUMER_SECRET" yaml:"consumer_secret" validate:"required_with=ConsumerKey"`
}

// Settings are the gateway settings of the plugin.
type Settings struct {
	VaultEnabled    bool `env:"VAULT_ENABLED" yaml:"vault_enabled"`
	VaultEnabledDCC bool `env:"VAULT_ENABLED_DCC" yaml:"vault_enabled_dcc"`
}

// Load loads the config from the environment and the files, DefaultFiles when none are given.
// Environment variables take precedence.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = DefaultFiles
	}
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "PPCP",
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return &cfg, nil
}
