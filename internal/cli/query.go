package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <method> [params-json]",
	Short: "Query a running daemon",
	Long: `Call a read-only JSON-RPC method with an optional params object.

Examples:
  nftswapd query server_info
  nftswapd query pool_info '{"collection": "punks", "currency": "USD"}'
  nftswapd query price_quote '{"collection": "punks", "currency": "USD", "side": "buy"}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	var params interface{}
	if len(args) == 2 {
		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(args[1]), &decoded); err != nil {
			return fmt.Errorf("params are not a JSON object: %w", err)
		}
		params = decoded
	}

	result, err := callRPC(args[0], params)
	if err != nil {
		return err
	}
	return printResult(result)
}
