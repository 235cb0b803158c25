package shareerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storj.io/drpc/drpcerr"
)

func TestWrap(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		err := Wrap(errors.New("quota exceeded"))
		var remoteErr *RemoteServiceError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, "quota exceeded", err.Error())
		assert.Equal(t, CodeUnexpected, remoteErr.ErrCode)
		assert.ErrorIs(t, err, ErrUnexpected)
	})
	t.Run("coded error", func(t *testing.T) {
		err := Wrap(fmt.Errorf("fetch: %w", ErrNotFound))
		assert.True(t, IsNotFound(err))
		assert.Equal(t, uint64(CodeNotFound), drpcerr.Code(err))
		assert.Equal(t, "fetch: record not found", err.Error())
	})
	t.Run("unknown code", func(t *testing.T) {
		err := Wrap(drpcerr.WithCode(errors.New("boom"), 999))
		assert.ErrorIs(t, err, ErrUnexpected)
	})
	t.Run("already wrapped", func(t *testing.T) {
		orig := New(CodeQuotaExceeded, "quota exceeded")
		assert.Same(t, orig, Wrap(orig))
		assert.ErrorIs(t, orig, ErrQuotaExceeded)
	})
	t.Run("passthrough", func(t *testing.T) {
		assert.NoError(t, Wrap(nil))
		assert.Equal(t, ErrUnknownResult, Wrap(ErrUnknownResult))
	})
}

func TestRegister(t *testing.T) {
	assert.Panics(t, func() {
		register(errors.New("dup"), CodeNotFound)
	})
	assert.Equal(t, ErrServerRecordChanged, Err(CodeServerRecordChanged))
	assert.Equal(t, ErrUnexpected, Err(Code(12345)))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "server record changed", Message(New(CodeServerRecordChanged, "server record changed")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(New(CodeNotFound, "gone")))
	assert.True(t, IsNotFound(drpcerr.WithCode(errors.New("gone"), uint64(CodeNotFound))))
	assert.True(t, IsNotFound(Wrap(drpcerr.WithCode(errors.New("gone"), uint64(CodeNotFound)))))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(errors.New("gone")))
	assert.False(t, IsNotFound(New(CodeQuotaExceeded, "quota exceeded")))
}
