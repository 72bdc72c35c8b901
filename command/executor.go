package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	EnvTarget = "SEPCONFIG_TARGET"
	EnvAction = "SEPCONFIG_ACTION"
)

// Executor hands the configuration payload to external commands on stdin.
// The commands talk to the scheduler's plugin configuration API.
type Executor struct {
	ApplyCommand  *Command
	RemoveCommand *Command
	Logger        *logrus.Logger
	Output        io.Writer
}

func (e *Executor) run(ctx context.Context, c *Command, action, targetID string, payload []byte) error {
	if c == nil {
		return fmt.Errorf("no %s command configured", action)
	}

	out := e.Output
	if out == nil {
		out = os.Stdout
	}
	if e.Logger != nil {
		e.Logger.Debugf("executing %s for %s: %s", action, targetID, c)
	}

	env := []string{
		fmt.Sprintf("%s=%s", EnvTarget, targetID),
		fmt.Sprintf("%s=%s", EnvAction, action),
	}
	return c.RunWithStdin(ctx, payload, env, out)
}

func (e *Executor) Apply(ctx context.Context, targetID string, payload []byte) error {
	return e.run(ctx, e.ApplyCommand, "apply", targetID, payload)
}

func (e *Executor) Remove(ctx context.Context, targetID string, payload []byte) error {
	return e.run(ctx, e.RemoveCommand, "remove", targetID, payload)
}
