package main

import (
	"nftswapd/internal/cli"
	_ "nftswapd/internal/core/tx/all"
)

func main() {
	cli.Execute()
}
