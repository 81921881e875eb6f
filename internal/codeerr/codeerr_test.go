package codeerr

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCauseChain(t *testing.T) {
	root := errors.New("disk full")
	wrapped := Wrap(KindStoreWriteFailed, root, "writing monster")
	require.Error(t, wrapped)

	assert.Equal(t, root, pkgerrors.Cause(wrapped))
	assert.True(t, errors.Is(wrapped, root))
}

func TestWrap_NilErrorReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(KindStoreWriteFailed, nil, "noop"))
}

func TestNew_HasNoCause(t *testing.T) {
	err := New(KindSourceEmpty, "source slot is empty")
	e, ok := err.(*Error)
	require.True(t, ok)
	assert.Nil(t, e.Cause())
	assert.Equal(t, "SourceEmpty: source slot is empty", err.Error())
}

func TestIs_MatchesKind(t *testing.T) {
	err := New(KindDestinationOccupied, "occupied")
	assert.True(t, Is(err, KindDestinationOccupied))
	assert.False(t, Is(err, KindSourceEmpty))
	assert.False(t, Is(errors.New("plain"), KindSourceEmpty))
}
