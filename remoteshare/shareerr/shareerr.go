// Package shareerr holds the error taxonomy of the remote sharing backend.
// Remote failures carry a numeric code so they survive transport boundaries.
package shareerr

import (
	"errors"
	"fmt"

	"storj.io/drpc/drpcerr"
)

type Code uint64

const (
	CodeUnexpected Code = iota + 1
	CodeNotFound
	CodeServerRecordChanged
	CodeQuotaExceeded
	CodePermissionFailure
	CodeNetworkFailure
)

var errsMap = make(map[Code]error)

var (
	ErrUnexpected          = register(errors.New("unexpected"), CodeUnexpected)
	ErrNotFound            = register(errors.New("record not found"), CodeNotFound)
	ErrServerRecordChanged = register(errors.New("server record changed"), CodeServerRecordChanged)
	ErrQuotaExceeded       = register(errors.New("quota exceeded"), CodeQuotaExceeded)
	ErrPermissionFailure   = register(errors.New("permission failure"), CodePermissionFailure)
	ErrNetworkFailure      = register(errors.New("network failure"), CodeNetworkFailure)
)

// ErrUnknownResult is produced locally when the backend answers with a result of an unrecognised kind
var ErrUnknownResult = errors.New("unknown result")

func register(err error, code Code) error {
	if e, ok := errsMap[code]; ok {
		panic(fmt.Errorf("attempt to register error with existing code: %d; registered error: %v", code, e))
	}
	errWithCode := drpcerr.WithCode(err, uint64(code))
	errsMap[code] = errWithCode
	return errWithCode
}

// Err returns the registered error for code
func Err(code Code) error {
	if err, ok := errsMap[code]; ok {
		return err
	}
	return errsMap[CodeUnexpected]
}

// RemoteServiceError is a transport or validation failure reported by the backend.
// Error returns the backend message as is.
type RemoteServiceError struct {
	ErrCode Code
	Message string
}

func (e *RemoteServiceError) Error() string {
	return e.Message
}

// Code makes the error readable by drpcerr.Code
func (e *RemoteServiceError) Code() uint64 {
	return uint64(e.ErrCode)
}

func (e *RemoteServiceError) Unwrap() error {
	return Err(e.ErrCode)
}

// New creates a remote error with the given code and message
func New(code Code, msg string) error {
	return &RemoteServiceError{ErrCode: code, Message: msg}
}

// Wrap converts any backend failure into a RemoteServiceError keeping its message and code.
// ErrUnknownResult and nil pass through unchanged.
func Wrap(err error) error {
	if err == nil || errors.Is(err, ErrUnknownResult) {
		return err
	}
	var remoteErr *RemoteServiceError
	if errors.As(err, &remoteErr) {
		return err
	}
	code := Code(drpcerr.Code(err))
	if _, ok := errsMap[code]; !ok {
		code = CodeUnexpected
	}
	return &RemoteServiceError{ErrCode: code, Message: err.Error()}
}

// IsNotFound reports a not found failure, including a bare drpcerr code received from a transport
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || (err != nil && Code(drpcerr.Code(err)) == CodeNotFound)
}

// Message returns the human readable text shown for err
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
