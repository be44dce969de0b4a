// Package config loads operator tool configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/spf13/viper"
)

// EnvPrefix is a prefix of environment variables overriding config values,
// e.g. BINDINGS_RPC_ENDPOINT overrides rpc.endpoint.
const EnvPrefix = "BINDINGS"

// EnvConfigPath is an environment variable with a path to the config file.
const EnvConfigPath = EnvPrefix + "_CONFIG"

// Config holds operator tool configuration.
type Config struct {
	RPC      RPC      `mapstructure:"rpc"`
	Wallet   Wallet   `mapstructure:"wallet"`
	Contract Contract `mapstructure:"contract"`
	Logger   Logger   `mapstructure:"logger"`
}

// RPC holds Neo RPC node settings.
type RPC struct {
	Endpoint       string        `mapstructure:"endpoint"`
	DialTimeout    time.Duration `mapstructure:"dial_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Wallet holds NEP-6 wallet settings. Empty address selects the default
// wallet account.
type Wallet struct {
	Path     string `mapstructure:"path"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
}

// Contract holds the Account Bindings contract address, either as LE hex
// string or as Neo address.
type Contract struct {
	Hash string `mapstructure:"hash"`
}

// Logger holds logging settings.
type Logger struct {
	Level string `mapstructure:"level"`
}

// ErrMissingKey is returned by Validate for unset mandatory values.
var ErrMissingKey = errors.New("missing mandatory config value")

// Load reads configuration from the YAML file and environment. Explicit path
// takes precedence over EnvConfigPath, missing both means environment and
// defaults only.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("rpc.endpoint", "")
	v.SetDefault("rpc.dial_timeout", 5*time.Second)
	v.SetDefault("rpc.request_timeout", 15*time.Second)
	v.SetDefault("wallet.path", "")
	v.SetDefault("wallet.address", "")
	v.SetDefault("wallet.password", "")
	v.SetDefault("contract.hash", "")
	v.SetDefault("logger.level", "info")

	v.SetConfigType("yaml")

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Validate checks that values required to talk to the contract are set.
// The wallet is not required for read-only commands.
func (c Config) Validate(needWallet bool) error {
	if c.RPC.Endpoint == "" {
		return fmt.Errorf("%w: rpc.endpoint", ErrMissingKey)
	}
	if needWallet && c.Wallet.Path == "" {
		return fmt.Errorf("%w: wallet.path", ErrMissingKey)
	}
	return nil
}

// ContractHash parses configured contract address.
func (c Config) ContractHash() (util.Uint160, error) {
	if c.Contract.Hash == "" {
		return util.Uint160{}, fmt.Errorf("%w: contract.hash", ErrMissingKey)
	}

	return ParseAccount(c.Contract.Hash)
}

// ParseAccount parses account or contract script hash given either as Neo
// address or as LE hex string (with optional 0x prefix).
func ParseAccount(s string) (util.Uint160, error) {
	if u, err := address.StringToUint160(s); err == nil {
		return u, nil
	}

	u, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid account %q: neither address nor LE hash", s)
	}
	return u, nil
}
