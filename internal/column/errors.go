package column

// # Error Codes Reference
//
// Conversion failures map to user messages with codes for support
// reference:
//
//	COL001 - Invalid value: The field text is not valid for the column type
//	         Action: Check the value against the column's culture and format
//	         Matches: ErrFormat
//
//	COL002 - Wrong value type: The value does not match the column type
//	         Action: Supply a value of the column's declared type
//	         Matches: ErrTypeMismatch
//
//	COL003 - Missing value: A required field is null
//	         Action: Provide a value for this field
//	         Matches: ErrNullUnexpected
//
//	COL004 - Bad column configuration: A column option is invalid
//	         Action: Fix the column definition and reload
//	         Matches: ErrEmptyName, ErrInvalidOption, ErrUnknownType
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// The first matching entry wins. Matching uses errors.Is, so wrapped errors
// resolve to the code of the innermost sentinel they carry.

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New("invalid field value")
	// ErrTypeMismatch is matched by every *TypeMismatchError.
	ErrTypeMismatch = errors.New("value type mismatch")
	// ErrNullUnexpected is for record engines that reject nulls in
	// non-nullable columns. Columns never return it.
	ErrNullUnexpected = errors.New("unexpected null value")
	// ErrEmptyName is returned by constructors given an empty column name.
	ErrEmptyName = errors.New("column name is empty")
	// ErrInvalidOption is returned by constructors given an unusable option.
	ErrInvalidOption = errors.New("invalid column option")
)

// FormatError reports field text that could not be converted to the
// column's value type.
type FormatError struct {
	Column   string       // column name
	Value    string       // text handed to the type-specific parser
	Type     reflect.Type // the column's value type
	Position *Position    // nil when the context carried none
	Err      error        // underlying cause, may be nil
}

func (e *FormatError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "column %q: cannot parse %q as %s", e.Column, e.Value, typeLabel(e.Type))
	if e.Position != nil {
		fmt.Fprintf(&b, " at %s", e.Position)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}
	return []error{ErrFormat, e.Err}
}

// TypeMismatchError reports a value handed to Format whose type is not the
// column's value type.
type TypeMismatchError struct {
	Column   string
	Want     reflect.Type
	Got      reflect.Type
	Position *Position
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("column %q: cannot format %s, want %s", e.Column, typeLabel(e.Got), typeLabel(e.Want))
	if e.Position != nil {
		msg += " at " + e.Position.String()
	}
	return msg
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

func typeLabel(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorKind struct {
	target error
	msg    UserMessage
}

var configMessage = UserMessage{
	Message: "The column configuration is invalid",
	Action:  "Fix the column definition and reload",
	Code:    "COL004",
}

var errorKinds = []errorKind{
	{ErrFormat, UserMessage{
		Message: "The value is not valid for this column",
		Action:  "Check the value against the column's culture and format",
		Code:    "COL001",
	}},
	{ErrTypeMismatch, UserMessage{
		Message: "The value has the wrong type for this column",
		Action:  "Supply a value of the column's declared type",
		Code:    "COL002",
	}},
	{ErrNullUnexpected, UserMessage{
		Message: "A required value is missing",
		Action:  "Provide a value for this field",
		Code:    "COL003",
	}},
	{ErrEmptyName, configMessage},
	{ErrInvalidOption, configMessage},
	{ErrUnknownType, configMessage},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a conversion error to a user-friendly message.
// Returns an empty UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
