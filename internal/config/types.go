package config

import "github.com/ethereum/go-ethereum/common"

// APIConfig contains management API settings.
//
// Note: APIKey is treated as a secret and is never returned by API endpoints.
type APIConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	APIKey  string `yaml:"api_key" json:"-"`
}

// DatabaseConfig locates the SQLite store. An empty Path keeps all state in
// memory for the lifetime of the process.
type DatabaseConfig struct {
	Path string `yaml:"path" json:"path"`
}

// AuthorityConfig is the initial state of the root authority.
type AuthorityConfig struct {
	IdentityRaw    string   `yaml:"identity" json:"identity"`
	OwnerRaw       string   `yaml:"owner" json:"owner"`
	ControllersRaw []string `yaml:"controllers" json:"controllers"`
	ReservedNames  []string `yaml:"reserved_names" json:"reserved_names"`

	Identity    common.Address   `yaml:"-" json:"-"`
	Owner       common.Address   `yaml:"-" json:"-"`
	Controllers []common.Address `yaml:"-" json:"-"`
}

// RegistrarConfig configures the evidence-driven TLD registrar.
type RegistrarConfig struct {
	IdentityRaw string `yaml:"identity" json:"identity"`
	// DefaultRegistrarRaw receives unclaimed TLDs. It is required and may not
	// be the zero address, which only an explicit "a=0x0…0" claim can set.
	DefaultRegistrarRaw string `yaml:"default_registrar" json:"default_registrar"`
	// ClaimMarker is the dotted prefix of the TXT name, e.g. "_ens.nic".
	ClaimMarker string `yaml:"claim_marker" json:"claim_marker"`

	Identity         common.Address `yaml:"-" json:"-"`
	DefaultRegistrar common.Address `yaml:"-" json:"-"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `yaml:"level" json:"level"`
	Structured       bool              `yaml:"structured" json:"structured"`
	StructuredFormat string            `yaml:"structured_format" json:"structured_format"`
	IncludePID       bool              `yaml:"include_pid" json:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields" json:"extra_fields,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	API       APIConfig       `yaml:"api" json:"api"`
	Database  DatabaseConfig  `yaml:"database" json:"database"`
	Authority AuthorityConfig `yaml:"authority" json:"authority"`
	Registrar RegistrarConfig `yaml:"registrar" json:"registrar"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
}
