package cli

import (
	"context"
	"fmt"
	"strings"
)

type ApplyCommand struct {
	meta
}

func (c *ApplyCommand) Help() string {
	return strings.TrimSpace(`
Usage: sepconfig apply -config <path>

  Sends the compiled configuration to the scheduler through the executor's
  ApplyCommand. Nothing is sent when the stored digest already matches.
`)
}

func (c *ApplyCommand) Synopsis() string {
	return "Apply the plugin configuration"
}

func (c *ApplyCommand) Run(args []string) int {
	if err := c.flagSet("apply").Parse(args); err != nil {
		return c.fail(err)
	}
	if err := c.load(); err != nil {
		return c.fail(err)
	}

	ctx := context.Background()
	e, err := c.engine(ctx)
	if err != nil {
		return c.fail(err)
	}

	s, err := c.openStorage()
	if err != nil {
		return c.fail(err)
	}
	defer c.closeStorage(s)

	id := e.Endpoint().TargetID()
	result, err := c.orchestrator(s).Apply(ctx, id, e.Configuration())
	if err != nil {
		return c.fail(err)
	}

	c.ui.Info(fmt.Sprintf("%s: %s", id, result))
	return 0
}
