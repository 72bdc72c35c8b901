package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

type Command struct {
	Path string   `yaml:"Path" validate:"required"`
	Args []string `yaml:"Args"`
}

// GetString runs the command and returns its stdout without the trailing
// newline.
func (c *Command) GetString(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)

	b, err := cmd.Output()
	if err != nil {
		return "", wrapError(err)
	}

	return strings.TrimRight(string(b), "\n"), nil
}

// RunWithStdin feeds input to the command. Its stdout goes to out and its
// stderr is kept for the error.
func (c *Command) RunWithStdin(ctx context.Context, input []byte, env []string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = out

	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if e, ok := err.(*exec.ExitError); ok {
			e.Stderr = stderr.Bytes()
		}
		return wrapError(err)
	}
	return nil
}

func (c *Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// ExitError is a command that ran and exited non-zero.
type ExitError struct {
	Status int
	Stderr string
	err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%v: %s", e.err, strings.TrimRight(e.Stderr, "\n"))
}

func (e *ExitError) Unwrap() error {
	return e.err
}

func wrapError(err error) error {
	e, ok := err.(*exec.ExitError)
	if !ok {
		return err
	}

	status := -1
	if s, ok := e.Sys().(syscall.WaitStatus); ok {
		status = s.ExitStatus()
	}
	return &ExitError{Status: status, Stderr: string(e.Stderr), err: err}
}
