package config

import (
	"fmt"

	"nftswapd/internal/storage"
)

// Validate checks the configuration for internally consistent values.
func Validate(cfg *Config) error {
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}

	backendKnown := false
	for _, name := range storage.AvailableBackends() {
		if name == cfg.Storage.Backend {
			backendKnown = true
			break
		}
	}
	if !backendKnown {
		return fmt.Errorf("unknown storage backend %q (available: %v)",
			cfg.Storage.Backend, storage.AvailableBackends())
	}

	switch cfg.Storage.Compression {
	case "", "none", "lz4":
	default:
		return fmt.Errorf("unknown compression %q", cfg.Storage.Compression)
	}

	if cfg.RPC.Enabled && cfg.RPC.Listen == "" {
		return fmt.Errorf("rpc.listen must be set when rpc is enabled")
	}
	if cfg.RPC.CacheEntries < 0 {
		return fmt.Errorf("rpc.cache_entries must not be negative")
	}

	if cfg.Engine.MaxBatchSize < 0 {
		return fmt.Errorf("engine.max_batch_size must not be negative")
	}
	if cfg.Engine.MaxFeeBps > 10000 {
		return fmt.Errorf("engine.max_fee_bps must not exceed 10000")
	}
	if cfg.Engine.MinFeeBps > cfg.Engine.MaxFeeBps {
		return fmt.Errorf("engine.min_fee_bps %d exceeds engine.max_fee_bps %d",
			cfg.Engine.MinFeeBps, cfg.Engine.MaxFeeBps)
	}
	return nil
}
