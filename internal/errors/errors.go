package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe data to stdin")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrUnknownFormat   = errors.New("unable to detect input format")
)

// ParseKind categorizes parse failures. The same taxonomy is shared by
// the JSON and XML parsers.
type ParseKind string

const (
	KindUnexpectedCharacter  ParseKind = "unexpected character"
	KindUnterminatedString   ParseKind = "unterminated string"
	KindInvalidNumber        ParseKind = "invalid number"
	KindInvalidLiteral       ParseKind = "invalid literal"
	KindUnbalancedTags       ParseKind = "unbalanced tags"
	KindUnexpectedEndOfInput ParseKind = "unexpected end of input"
	KindTrailingContent      ParseKind = "trailing content"
)

// ParseError reports where and why a parser stopped. Offset is the rune
// offset into the input at which the problem was detected. Expected and
// Found carry token-level detail where it exists (for example the open
// and close tag names of an unbalanced pair).
type ParseError struct {
	Kind     ParseKind
	Offset   int
	Expected string
	Found    string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch {
	case e.Expected != "" && e.Found != "":
		return fmt.Sprintf("%s at offset %d: expected %s, found %s", e.Kind, e.Offset, e.Expected, e.Found)
	case e.Expected != "":
		return fmt.Sprintf("%s at offset %d: expected %s", e.Kind, e.Offset, e.Expected)
	case e.Found != "":
		return fmt.Sprintf("%s at offset %d: found %s", e.Kind, e.Offset, e.Found)
	default:
		return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
	}
}

// Is matches parse errors by kind so callers can test for a category
// with errors.Is.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewParseError creates a ParseError without token detail.
func NewParseError(kind ParseKind, offset int) *ParseError {
	return &ParseError{Kind: kind, Offset: offset}
}

// ErrorType categorizes application-level errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParse   ErrorType = "parse"
	ErrorTypeConvert ErrorType = "convert"
	ErrorTypeEncode  ErrorType = "encode"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error wrapping a parse failure
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewConvertError creates a new error related to tree conversion
func NewConvertError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConvert,
		Message: message,
		Err:     err,
	}
}

// NewEncodeError creates a new error related to serialization
func NewEncodeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeEncode,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return fmt.Sprintf("Parse error: %s", parseErr.Error())
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParse:
			return fmt.Sprintf("Parse error: %s", appErr.Message)
		case ErrorTypeConvert:
			return fmt.Sprintf("Conversion error: %s", appErr.Message)
		case ErrorTypeEncode:
			return fmt.Sprintf("Encoding error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Config error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a JSON or XML document."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe data to stdin."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with a JSON or XML document."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrUnknownFormat) {
		return "Error: Could not detect the input format. Use --from to set it explicitly."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
