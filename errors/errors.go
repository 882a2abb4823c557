package errors

import (
	"fmt"
	"time"
)

type Error interface {
	error

	Code() int
	Kind() Kind
	Message() string
	Cause() error
}

// Default code defines the code that will be used by default when
// none is given. It is set to 500, Internal Server Error
var DefaultCode = 500

type myError struct {
	code  int
	kind  Kind
	msg   string
	cause *myError

	path       string
	retryAfter time.Duration
}

func (err *myError) Error() string {
	if err.cause == nil {
		return err.msg
	}

	return fmt.Sprintf("%s: %v", err.msg, err.cause)
}

func (err *myError) Code() int {
	return err.code
}

// Kind returns the kind of the error. When the error itself has none,
// the kind of the cause is used.
func (err *myError) Kind() Kind {
	if err.kind == "" && err.cause != nil {
		return err.cause.Kind()
	}
	return err.kind
}

func (err *myError) Message() string {
	return err.msg
}

func (err *myError) Cause() error {
	if err.cause == nil {
		return nil
	}
	return err.cause
}

// Unwrap allows errors.Is and errors.As from the standard library to walk
// the cause chain.
func (err *myError) Unwrap() error {
	return err.Cause()
}

type ErrorEnricher func(error) error

func WithCode(code int) func(error) error {
	return func(err error) error {
		if err == nil {
			return nil
		}

		switch err := err.(type) {
		case *myError:
			err.code = code
			return err
		}

		// default
		return &myError{
			msg:   err.Error(),
			code:  code,
			cause: nil,
		}
	}
}

// WithKind sets the kind of the error, along with the code matching that kind.
func WithKind(kind Kind) func(error) error {
	return func(err error) error {
		if err == nil {
			return nil
		}

		myErr := asMyError(err)
		myErr.kind = kind
		myErr.code = kind.Code()
		return myErr
	}
}

// WithPath attaches the vault path the error is about.
func WithPath(path string) func(error) error {
	return func(err error) error {
		if err == nil {
			return nil
		}

		myErr := asMyError(err)
		myErr.path = path
		return myErr
	}
}

// WithRetryAfter attaches the delay a rate limited caller should wait.
func WithRetryAfter(d time.Duration) func(error) error {
	return func(err error) error {
		if err == nil {
			return nil
		}

		myErr := asMyError(err)
		myErr.retryAfter = d
		return myErr
	}
}

func WithCause(cause error) func(error) error {
	var myCause *myError
	switch cause := cause.(type) {
	case *myError:
		myCause = cause
	default:
		myCause = &myError{msg: cause.Error(), code: DefaultCode, cause: nil}
	}

	return func(err error) error {
		if err == nil {
			return nil
		}

		if myErr, ok := err.(*myError); ok {
			myErr.cause = myCause
			return myErr
		}

		return &myError{
			msg:   err.Error(),
			code:  myCause.code,
			cause: myCause,
		}
	}
}

func New(msg string, fs ...ErrorEnricher) error {
	var err error
	err = &myError{
		msg:   msg,
		code:  DefaultCode,
		cause: nil,
	}

	for _, f := range fs {
		err = f(err)
	}

	return err
}

func asMyError(err error) *myError {
	if myErr, ok := err.(*myError); ok {
		return myErr
	}
	return &myError{msg: err.Error(), code: DefaultCode}
}
