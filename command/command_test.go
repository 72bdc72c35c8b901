package command

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandGetString(t *testing.T) {
	c := &Command{
		Path: "/bin/echo",
		Args: []string{"ami-0123"},
	}

	s, err := c.GetString(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, "ami-0123", s)
}

func TestCommandGetStringError(t *testing.T) {
	c := &Command{
		Path: "/bin/bash",
		Args: []string{"-c", "echo ERROR >&2; exit 1"},
	}

	_, err := c.GetString(context.Background())
	var e *ExitError
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 1, e.Status)
	assert.Equal(t, "ERROR\n", e.Stderr)
}

func TestExecutorApply(t *testing.T) {
	out := &bytes.Buffer{}
	e := &Executor{
		ApplyCommand: &Command{
			Path: "/bin/bash",
			Args: []string{"-c", `echo "$SEPCONFIG_ACTION $SEPCONFIG_TARGET"; cat`},
		},
		Output: out,
	}

	err := e.Apply(context.Background(), "rq", []byte(`{"connection":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "apply rq\n{\"connection\":{}}", out.String())
}

func TestExecutorRemoveFailure(t *testing.T) {
	e := &Executor{
		RemoveCommand: &Command{
			Path: "/bin/bash",
			Args: []string{"-c", "echo denied >&2; exit 3"},
		},
		Output: &bytes.Buffer{},
	}

	err := e.Remove(context.Background(), "rq", []byte(`{}`))
	var ee *ExitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 3, ee.Status)
	assert.Contains(t, err.Error(), "denied")
}

func TestExecutorMissingCommand(t *testing.T) {
	e := &Executor{}
	err := e.Remove(context.Background(), "rq", nil)
	assert.EqualError(t, err, "no remove command configured")
}
