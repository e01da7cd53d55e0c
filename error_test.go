package spancheck_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/spancheck"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := spancheck.Errorf(spancheck.ENOTFOUND, "page %d not found", 12)

	assert.Equal(t, spancheck.ENOTFOUND, spancheck.ErrorCode(err))
	assert.Equal(t, "page 12 not found", spancheck.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("read page: %w", spancheck.Errorf(spancheck.EINVALID, "empty"))

	assert.Equal(t, spancheck.EINVALID, spancheck.ErrorCode(err))
	assert.Equal(t, "empty", spancheck.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, spancheck.EINTERNAL, spancheck.ErrorCode(err))
	assert.Equal(t, "Internal error.", spancheck.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, spancheck.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, spancheck.ErrorMessage(nil))
}
