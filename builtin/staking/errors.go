// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code classifies a staking program failure.
type Code string

const (
	CodeUnauthorized        Code = "Unauthorized"
	CodeIncorrectCollection Code = "IncorrectCollection"
	CodeIncorrectSize       Code = "IncorrectSize"
	CodeNotFound            Code = "NotFound"
	CodeMintNotFound        Code = "MintNotFound"
)

var messages = map[Code]string{
	CodeUnauthorized:        "unauthorized",
	CodeIncorrectCollection: "incorrect collection address",
	CodeIncorrectSize:       "incorrect size",
	CodeNotFound:            "stake entry not found",
	CodeMintNotFound:        "mint not found",
}

// Error is a failure raised by the staking program itself.
type Error struct {
	Code   Code
	detail string
}

func (e *Error) Error() string {
	if e.detail == "" {
		return messages[e.Code]
	}
	return messages[e.Code] + ": " + e.detail
}

// Is reports code equality, so errors.Is matches the sentinels regardless of detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrUnauthorized        = &Error{Code: CodeUnauthorized}
	ErrIncorrectCollection = &Error{Code: CodeIncorrectCollection}
	ErrIncorrectSize       = &Error{Code: CodeIncorrectSize}
	ErrNotFound            = &Error{Code: CodeNotFound}
	ErrMintNotFound        = &Error{Code: CodeMintNotFound}
)

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, detail: fmt.Sprintf(format, args...)}
}

// IsStakingErr reports whether err carries a staking program Error.
func IsStakingErr(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// ErrorCode returns the code of a staking program error, or "" for other errors.
func ErrorCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
