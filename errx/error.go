package errx

import (
	"errors"
	"fmt"

	"github.com/arklib/serde/debug"
)

const defaultStackSkip = 3

// Error kinds. Every *AppError matches exactly one of these via errors.Is.
var (
	// ErrNilArgument marks a required parameter that was passed as nil.
	ErrNilArgument = errors.New("nil argument")

	// ErrUnsupportedConfig marks a configuration value that cannot be
	// mapped to a serializer strategy.
	ErrUnsupportedConfig = errors.New("unsupported configuration")

	// ErrBuild marks a builder failure for a concrete type. Build errors
	// pass through the provisioning layer unchanged.
	ErrBuild = errors.New("serializer build failed")
)

type AppError struct {
	kind    error
	message string
	stack   string
	basic   error
}

// New vals: string | error
func New(kind error, vals ...any) *AppError {
	err := &AppError{kind: kind, message: kind.Error()}

	for _, val := range vals {
		switch v := val.(type) {
		case string:
			err.message = v
		case error:
			if len(vals) == 1 {
				err.message = v.Error()
			}
			err.basic = v
		}
	}
	return err
}

// NilArgument reports that the named parameter was nil.
func NilArgument(name string) *AppError {
	err := New(ErrNilArgument)
	err.message = fmt.Sprintf("nil argument: %s", name)
	return err
}

// UnsupportedConfig reports a configuration value outside the supported set.
func UnsupportedConfig(format string, v ...any) *AppError {
	err := New(ErrUnsupportedConfig)
	err.message = fmt.Sprintf("unsupported configuration: %s", fmt.Sprintf(format, v...))
	return err
}

// BuildFailed reports that no serializer could be built for the named type.
func BuildFailed(typeName string, vals ...any) *AppError {
	err := New(ErrBuild, vals...)
	err.message = fmt.Sprintf("build serializer for %s: %s", typeName, err.message)
	return err
}

func (e *AppError) Fatal() *AppError {
	e.stack = string(debug.Stack(defaultStackSkip))
	return e
}

func (e *AppError) Kind() error {
	return e.kind
}

func (e *AppError) Error() string {
	return e.message
}

func (e *AppError) FullError() string {
	message := e.message
	if e.basic != nil {
		message = fmt.Sprintf("%s (%s)", message, e.basic.Error())
	}
	if e.stack != "" {
		message = fmt.Sprintf("%s\n%s", message, e.stack)
	}
	return message
}

func (e *AppError) Stack() string {
	return e.stack
}

func (e *AppError) Is(target error) bool {
	return target == e.kind
}

func (e *AppError) Unwrap() error {
	return e.basic
}

func Wrap(kind error, err any) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return New(kind, err)
}

func Sprintf(kind error, format string, v ...any) *AppError {
	return New(kind, fmt.Sprintf(format, v...))
}
