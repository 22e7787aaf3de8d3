package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit [tx.json]",
	Short: "Submit a transaction to a running daemon",
	Long: `Submit a transaction read from the given file, or from stdin when no
file is named. The input is the tx_json object, for example:

  {"TransactionType": "ItemSell", "Account": "alice",
   "Collection": "punks", "Currency": "USD", "Item": "punk-7"}`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read transaction: %w", err)
	}

	var txJSON json.RawMessage
	if err := json.Unmarshal(data, &txJSON); err != nil {
		return fmt.Errorf("transaction is not valid JSON: %w", err)
	}

	result, err := callRPC("submit", map[string]interface{}{"tx_json": txJSON})
	if err != nil {
		return err
	}
	return printResult(result)
}
