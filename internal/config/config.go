// Package config loads and validates the daemon configuration: defaults,
// then an optional YAML file, then NFTSWAPD_ environment overrides.
package config

import (
	"path/filepath"
)

// Config is the complete nftswapd configuration.
type Config struct {
	// DataDir is the root for all on-disk state.
	DataDir string `mapstructure:"data_dir"`

	Storage   StorageConfig   `mapstructure:"storage"`
	RPC       RPCConfig       `mapstructure:"rpc"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Pricefeed PricefeedConfig `mapstructure:"pricefeed"`

	// GenesisFile points to a JSON genesis description. Empty means an
	// empty ledger with no funded accounts.
	GenesisFile string `mapstructure:"genesis_file"`

	// SnapshotEvery closes and persists the ledger after this many applied
	// transactions. Zero disables snapshotting.
	SnapshotEvery uint32 `mapstructure:"snapshot_every"`

	configPath string `mapstructure:"-"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	// Backend is "pebble", "leveldb" or "memory".
	Backend string `mapstructure:"backend"`

	// Compression is "lz4" or "none".
	Compression string `mapstructure:"compression"`
}

// RPCConfig configures the HTTP JSON-RPC server.
type RPCConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`

	// CacheEntries sizes the decoded-entry cache backing the query methods.
	// Zero disables it.
	CacheEntries int `mapstructure:"cache_entries"`
}

// EngineConfig carries the transaction engine parameters.
type EngineConfig struct {
	// AdminAccount may mint items, change pool fees and bind royalty
	// tables. Empty disables the privileged surface.
	AdminAccount string `mapstructure:"admin_account"`

	// MaxBatchSize bounds the item set of a batch sell.
	MaxBatchSize int `mapstructure:"max_batch_size"`

	// MinFeeBps and MaxFeeBps bound pool swap fees in basis points.
	MinFeeBps uint16 `mapstructure:"min_fee_bps"`
	MaxFeeBps uint16 `mapstructure:"max_fee_bps"`

	// RoyaltySingleRecipient truncates royalty tables to one recipient.
	RoyaltySingleRecipient bool `mapstructure:"royalty_single_recipient"`
}

// PricefeedConfig configures trade recording for the price oracle.
type PricefeedConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Path of the sqlite trade database. Empty derives it from DataDir.
	Path string `mapstructure:"path"`
}

// StoragePath returns the directory for the key-value backend.
func (c *Config) StoragePath() string {
	return filepath.Join(c.DataDir, "state")
}

// PricefeedPath returns the trade database path.
func (c *Config) PricefeedPath() string {
	if c.Pricefeed.Path != "" {
		return c.Pricefeed.Path
	}
	return filepath.Join(c.DataDir, "trades.db")
}

// ConfigPath returns the file this config was loaded from, if any.
func (c *Config) ConfigPath() string {
	return c.configPath
}
