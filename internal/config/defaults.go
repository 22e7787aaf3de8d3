package config

import (
	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("snapshot_every", 64)
	v.SetDefault("genesis_file", "")

	v.SetDefault("storage.backend", "pebble")
	v.SetDefault("storage.compression", "lz4")

	v.SetDefault("rpc.enabled", true)
	v.SetDefault("rpc.listen", "127.0.0.1:5005")
	v.SetDefault("rpc.cache_entries", 4096)

	v.SetDefault("engine.admin_account", "")
	v.SetDefault("engine.max_batch_size", 32)
	v.SetDefault("engine.min_fee_bps", 0)
	v.SetDefault("engine.max_fee_bps", 10000)
	v.SetDefault("engine.royalty_single_recipient", false)

	v.SetDefault("pricefeed.enabled", true)
	v.SetDefault("pricefeed.path", "")
}
