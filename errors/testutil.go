package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertCode(t *testing.T, err error, code int) {
	switch err := err.(type) {
	case Error:
		assert.Equal(t, code, err.Code(), "code should be equal")
	default:
		if code != DefaultCode {
			assert.Fail(t, fmt.Sprintf("error is not Error and expected code != %d (default)", DefaultCode))
		}
	}
}

// AssertKind fails the test if err is nil or not of the given kind.
func AssertKind(t *testing.T, err error, kind Kind, msgAndArgs ...interface{}) {
	t.Helper()
	if assert.Error(t, err, msgAndArgs...) {
		assert.Equal(t, kind, KindOf(err), msgAndArgs...)
	}
}
