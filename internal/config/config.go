// Package config loads the tldclaim daemon configuration.
//
// Settings come from an optional YAML file, then environment overrides,
// then Validate, which fills defaults and parses the hex addresses into
// their typed fields. Components read only the typed fields.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultAPIHost     = "127.0.0.1"
	DefaultAPIPort     = 8080
	DefaultDBPath      = "tldclaim.db"
	DefaultClaimMarker = "_ens.nic"

	// Identities the authority and registrar act as when none is configured.
	DefaultAuthorityIdentity = "0x0000000000000000000000000000000000000100"
	DefaultRegistrarIdentity = "0x0000000000000000000000000000000000000200"
)

// DefaultReservedNames may never be claimed through DNS evidence.
var DefaultReservedNames = []string{"eth"}

// ResolveConfigPath returns the flag value, or TLDCLAIM_CONFIG when the
// flag is blank.
func ResolveConfigPath(flagPath string) string {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv("TLDCLAIM_CONFIG"))
}

// Default returns the configuration used when no file is given. It does not
// validate: registrar.default_registrar has no default and must be supplied.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Enabled: true,
			Host:    DefaultAPIHost,
			Port:    DefaultAPIPort,
		},
		Database: DatabaseConfig{Path: DefaultDBPath},
		Authority: AuthorityConfig{
			IdentityRaw:   DefaultAuthorityIdentity,
			ReservedNames: append([]string(nil), DefaultReservedNames...),
		},
		Registrar: RegistrarConfig{
			IdentityRaw: DefaultRegistrarIdentity,
			ClaimMarker: DefaultClaimMarker,
		},
		Logging: LoggingConfig{Level: "INFO", StructuredFormat: "json"},
	}
}

// Load reads path (if non-empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	if v := os.Getenv("TLDCLAIM_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("TLDCLAIM_API_PORT"); v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: TLDCLAIM_API_PORT %q", ErrInvalidConfig, v)
		}
		cfg.API.Port = port
	}
	if v, ok := os.LookupEnv("TLDCLAIM_API_ENABLED"); ok {
		cfg.API.Enabled = envBool(v, cfg.API.Enabled)
	}
	if v := os.Getenv("TLDCLAIM_API_KEY"); v != "" {
		cfg.API.APIKey = v
	}
	if v, ok := os.LookupEnv("TLDCLAIM_DB_PATH"); ok {
		cfg.Database.Path = strings.TrimSpace(v)
	}
	if v := os.Getenv("TLDCLAIM_DEFAULT_REGISTRAR"); v != "" {
		cfg.Registrar.DefaultRegistrarRaw = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	if cfg.API.Host == "" {
		cfg.API.Host = DefaultAPIHost
	}
	if cfg.API.Enabled && (cfg.API.Port <= 0 || cfg.API.Port > 65535) {
		return fmt.Errorf("%w: api.port must be 1..65535", ErrInvalidConfig)
	}
	// X-Caller-Address is an unauthenticated assertion, so only a loopback
	// listener may run without an API key in front of it.
	if cfg.API.Enabled && cfg.API.APIKey == "" && !isLoopbackHost(cfg.API.Host) {
		return fmt.Errorf("%w: api.api_key is required when api.host %q is not loopback", ErrInvalidConfig, cfg.API.Host)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	var err error
	a := &cfg.Authority
	if a.IdentityRaw == "" {
		a.IdentityRaw = DefaultAuthorityIdentity
	}
	if a.Identity, err = parseAddress("authority.identity", a.IdentityRaw, false); err != nil {
		return err
	}
	if a.Owner, err = parseAddress("authority.owner", a.OwnerRaw, true); err != nil {
		return err
	}
	a.Controllers = a.Controllers[:0]
	for i, raw := range a.ControllersRaw {
		c, err := parseAddress(fmt.Sprintf("authority.controllers[%d]", i), raw, false)
		if err != nil {
			return err
		}
		a.Controllers = append(a.Controllers, c)
	}
	for i, name := range a.ReservedNames {
		name = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
		if name == "" || strings.Contains(name, ".") {
			return fmt.Errorf("%w: authority.reserved_names[%d] %q is not a single label", ErrInvalidConfig, i, a.ReservedNames[i])
		}
		a.ReservedNames[i] = name
	}

	r := &cfg.Registrar
	if r.IdentityRaw == "" {
		r.IdentityRaw = DefaultRegistrarIdentity
	}
	if r.Identity, err = parseAddress("registrar.identity", r.IdentityRaw, false); err != nil {
		return err
	}
	if r.DefaultRegistrar, err = parseAddress("registrar.default_registrar", r.DefaultRegistrarRaw, false); err != nil {
		return err
	}
	r.ClaimMarker = strings.Trim(strings.TrimSpace(r.ClaimMarker), ".")
	if r.ClaimMarker == "" {
		r.ClaimMarker = DefaultClaimMarker
	}
	return nil
}

func isLoopbackHost(host string) bool {
	host = strings.Trim(strings.TrimSpace(host), "[]")
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// parseAddress accepts 0x-prefixed 20-byte hex. Blank values are allowed
// only when optional is set and then yield the zero address.
func parseAddress(field, raw string, optional bool) (common.Address, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if optional {
			return common.Address{}, nil
		}
		return common.Address{}, fmt.Errorf("%w: %s is required", ErrInvalidConfig, field)
	}
	if (!strings.HasPrefix(raw, "0x") && !strings.HasPrefix(raw, "0X")) || !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("%w: %s %q is not a 0x-prefixed address", ErrInvalidConfig, field, raw)
	}
	addr := common.HexToAddress(raw)
	if !optional && addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: %s must not be the zero address", ErrInvalidConfig, field)
	}
	return addr, nil
}

func envBool(raw string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
