package tx

import (
	"encoding/json"
	"errors"
	"sort"
)

// ErrUnknownTransactionType is returned when a transaction type is unknown.
var ErrUnknownTransactionType = errors.New("unknown transaction type")

var txFactories = make(map[Type]func() Transaction)

// Register registers a factory for a transaction type. Called from init()
// in the transactor packages.
func Register(txType Type, factory func() Transaction) {
	txFactories[txType] = factory
}

// FromJSON creates a Transaction from a JSON object.
func FromJSON(data []byte) (Transaction, error) {
	var raw struct {
		TransactionType string `json:"TransactionType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	txType, ok := TypeFromName(raw.TransactionType)
	if !ok {
		return nil, ErrUnknownTransactionType
	}

	tx, err := NewFromType(txType)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// NewFromType creates a new transaction of the given type.
func NewFromType(txType Type) (Transaction, error) {
	factory, ok := txFactories[txType]
	if !ok {
		return nil, ErrUnknownTransactionType
	}
	return factory(), nil
}

// ToJSON converts a Transaction to JSON.
func ToJSON(tx Transaction) ([]byte, error) {
	return json.Marshal(tx)
}

// SupportedTypes returns all registered transaction types, sorted by code.
func SupportedTypes() []Type {
	types := make([]Type, 0, len(txFactories))
	for t := range txFactories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
