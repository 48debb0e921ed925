package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestAsType(t *testing.T) {
	wrapped := Wrap(&codedError{code: "E1"}, "outer")

	got, ok := AsType[*codedError](wrapped)
	assert.True(t, ok)
	assert.Equal(t, "E1", got.code)

	_, ok = AsType[*codedError](New("plain"))
	assert.False(t, ok)
}

func TestWrapKeepsTheChain(t *testing.T) {
	root := New("root")
	assert.True(t, Is(Wrapf(root, "ctx %d", 1), root))
	assert.Equal(t, "ctx 1: root", Wrapf(root, "ctx %d", 1).Error())
}

func raiseInStorage() error {
	return WithStack(New("disk full"))
}

func TestStackTrace(t *testing.T) {
	err := Wrap(raiseInStorage(), "failed to save order")

	trace := StackTrace(err)
	assert.Contains(t, trace, "raiseInStorage")
	assert.Contains(t, trace, "errors_test.go")

	assert.Empty(t, StackTrace(New("plain")))
	assert.Empty(t, StackTrace(nil))
}
