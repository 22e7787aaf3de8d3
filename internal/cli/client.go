package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// rpcAddr is the daemon endpoint the client commands talk to.
var rpcAddr string

func init() {
	rootCmd.PersistentFlags().StringVar(&rpcAddr, "rpc", "http://127.0.0.1:5005", "daemon JSON-RPC endpoint")
}

// callRPC posts one method call and returns the result object.
func callRPC(method string, params interface{}) (map[string]interface{}, error) {
	request := map[string]interface{}{"method": method}
	if params != nil {
		request["params"] = []interface{}{params}
	}
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(rpcAddr, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Result map[string]interface{} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("call %s: decode response: %w", method, err)
	}
	if decoded.Result == nil {
		return nil, fmt.Errorf("call %s: empty response", method)
	}
	return decoded.Result, nil
}

// printResult renders a result object as indented JSON.
func printResult(result map[string]interface{}) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
