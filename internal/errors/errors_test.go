package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("habit", "h-1")
	assert.True(t, IsNotFound(err))
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.Equal(t, `habit "h-1" not found`, err.Error())
}

func TestValidation(t *testing.T) {
	err := Validation("title", "must not be empty")
	assert.True(t, stderrors.Is(err, ErrValidation))
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "title must not be empty")
}

func TestStoreKeepsCause(t *testing.T) {
	cause := fs.ErrPermission
	err := Store("create task", cause)

	assert.True(t, stderrors.Is(err, ErrStore))
	assert.True(t, stderrors.Is(err, fs.ErrPermission))
	assert.Contains(t, err.Error(), "failed to create task")
	assert.Nil(t, Store("noop", nil))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "Error: boom", Format(stderrors.New("boom")))
	assert.Equal(t, "Error: task 3 missing", Formatf("task %d missing", 3))
}
