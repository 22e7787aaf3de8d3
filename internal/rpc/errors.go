package rpc

import "fmt"

// Error is a JSON-RPC error carried inside the result object.
type Error struct {
	Code        int    `json:"error_code"`
	ErrorString string `json:"error"`
	Message     string `json:"error_message"`
}

// Error codes.
const (
	codeUnknownMethod = 27
	codeInvalidParams = 31
	codeNotFound      = 19
	codeInternal      = 73
)

func ErrMethodNotFound(method string) *Error {
	return &Error{
		Code:        codeUnknownMethod,
		ErrorString: "unknownCmd",
		Message:     fmt.Sprintf("Unknown method: %s", method),
	}
}

func ErrInvalidParams(msg string) *Error {
	return &Error{
		Code:        codeInvalidParams,
		ErrorString: "invalidParams",
		Message:     msg,
	}
}

func ErrNotFound(msg string) *Error {
	return &Error{
		Code:        codeNotFound,
		ErrorString: "entryNotFound",
		Message:     msg,
	}
}

func ErrInternal(msg string) *Error {
	return &Error{
		Code:        codeInternal,
		ErrorString: "internal",
		Message:     msg,
	}
}
