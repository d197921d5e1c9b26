package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
	masked            = "******"
)

const (
	BackendNone = ""
	BackendREST = "rest"
	BackendSQL  = "sql"
)

type store struct {
	Backend        string        `mapstructure:"backend"`
	RestURL        string        `mapstructure:"rest_url"`
	RestAPIKey     string        `mapstructure:"rest_api_key"`
	SQLDB          string        `mapstructure:"sql_db"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type admin struct {
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	SessionSecret string `mapstructure:"session_secret"`
}

type topics struct {
	CatalogEvents string `mapstructure:"catalog_events"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

func (t tlsFiles) Enabled() bool {
	return t.CA != "" || t.Cert != "" || t.Key != ""
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
	TLS                tlsFiles `mapstructure:"tls"`
}

// Enabled reports whether catalog events should be published.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	LogFile        string     `mapstructure:"log_file"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	IDNode         int64      `mapstructure:"id_node"`
	Store          store      `mapstructure:"store"`
	Admin          admin      `mapstructure:"admin"`
	Broker         broker     `mapstructure:"broker"`
}

var defaults = map[string]any{
	"log_level":                    "info",
	"log_file":                     "",
	"http_server_addr":             ":8080",
	"id_node":                      1,
	"store.backend":                BackendNone,
	"store.rest_url":               "",
	"store.rest_api_key":           "",
	"store.sql_db":                 "",
	"store.request_timeout":        "10s",
	"admin.username":               "",
	"admin.password":               "",
	"admin.session_secret":         "",
	"broker.seed_brokers":          []string{},
	"broker.schema_registry_urls":  []string{},
	"broker.topics.catalog_events": "catalog-events",
	"broker.tls.ca":                "",
	"broker.tls.cert":              "",
	"broker.tls.key":               "",
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads the YAML file at path and applies STOREFRONT_* environment
// overrides, e.g. STOREFRONT_ADMIN_PASSWORD for admin.password.
func LoadFile(path string) (Config, error) {
	const op = "config.LoadFile"

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Store.Backend {
	case BackendNone:
	case BackendREST:
		if c.Store.RestURL == "" {
			errs = append(errs, errors.New("store.rest_url: required for rest backend"))
		}
		if c.Store.RestAPIKey == "" {
			errs = append(errs, errors.New("store.rest_api_key: required for rest backend"))
		}
	case BackendSQL:
		if c.Store.SQLDB == "" {
			errs = append(errs, errors.New("store.sql_db: required for sql backend"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"store.backend: unknown %q, want one of %q",
			c.Store.Backend, []string{BackendREST, BackendSQL},
		))
	}

	if c.Store.RequestTimeout <= 0 {
		errs = append(errs, errors.New("store.request_timeout: must be positive"))
	}

	if c.IDNode < 0 || c.IDNode > 1023 {
		errs = append(errs, fmt.Errorf("id_node: %d out of range [0, 1023]", c.IDNode))
	}

	if c.Broker.Enabled() {
		if len(c.Broker.SchemaRegistryURLs) == 0 {
			errs = append(errs, errors.New(
				"broker.schema_registry_urls: required with seed brokers",
			))
		}
		if c.Broker.Topics.CatalogEvents == "" {
			errs = append(errs, errors.New("broker.topics.catalog_events: required"))
		}
		tls := []string{c.Broker.TLS.CA, c.Broker.TLS.Cert, c.Broker.TLS.Key}
		if c.Broker.TLS.Enabled() && slices.Contains(tls, "") {
			errs = append(errs, errors.New("broker.tls: ca, cert and key go together"))
		}
	}

	return errors.Join(errs...)
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return masked
}

func (c Config) Print() {
	fmt.Print(c.String())
}

// String renders the config with secrets masked.
func (c Config) String() string {
	tamplate := `
Loaded config:
	General:
	LogLevel=%q
	LogFile=%q
	HTTPServerAddr=%q
	IDNode=%d

	Store:
	Backend=%q
	RestURL=%q
	RestAPIKey=%q
	SQLDB=%q
	RequestTimeout=%q

	Admin:
	Username=%q
	Password=%q
	SessionSecret=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CatalogEvents=%q
	TLS:
		CA=%q
		Cert=%q
		Key=%q

`
	return fmt.Sprintf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.LogFile,
		c.HTTPServerAddr,
		c.IDNode,
		c.Store.Backend,
		c.Store.RestURL,
		mask(c.Store.RestAPIKey),
		mask(c.Store.SQLDB),
		c.Store.RequestTimeout,
		c.Admin.Username,
		mask(c.Admin.Password),
		mask(c.Admin.SessionSecret),
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CatalogEvents,
		c.Broker.TLS.CA,
		c.Broker.TLS.Cert,
		c.Broker.TLS.Key,
	)
}
