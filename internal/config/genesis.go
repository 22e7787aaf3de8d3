package config

import (
	"encoding/json"
	"fmt"
	"os"

	"nftswapd/internal/core/ledger/genesis"
)

// LoadGenesis reads the genesis description named by the config. An empty
// genesis_file yields an empty genesis whose admin comes from the engine
// section.
func LoadGenesis(cfg *Config) (genesis.Config, error) {
	gen := genesis.Config{Admin: cfg.Engine.AdminAccount}
	if cfg.GenesisFile == "" {
		return gen, nil
	}

	data, err := os.ReadFile(cfg.GenesisFile)
	if err != nil {
		return genesis.Config{}, fmt.Errorf("read genesis file: %w", err)
	}
	if err := json.Unmarshal(data, &gen); err != nil {
		return genesis.Config{}, fmt.Errorf("parse genesis file %s: %w", cfg.GenesisFile, err)
	}

	// The engine's admin account wins over the genesis file when both set.
	if cfg.Engine.AdminAccount != "" {
		gen.Admin = cfg.Engine.AdminAccount
	}
	return gen, nil
}
