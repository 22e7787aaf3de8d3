// Package all imports all transaction sub-packages to trigger their init() registrations.
// Import this package in the main application to ensure all transaction types are registered.
package all

import (
	_ "nftswapd/internal/core/tx/item"
	_ "nftswapd/internal/core/tx/payment"
	_ "nftswapd/internal/core/tx/pool"
	_ "nftswapd/internal/core/tx/royalty"
)
