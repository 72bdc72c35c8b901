package cli

import (
	"context"
	"fmt"
	"strings"
)

type ValidateCommand struct {
	meta
}

func (c *ValidateCommand) Help() string {
	return strings.TrimSpace(`
Usage: sepconfig validate -config <path>

  Loads the deployment file, resolves every fleet and checks it against the
  endpoint without calling the scheduler.
`)
}

func (c *ValidateCommand) Synopsis() string {
	return "Check a deployment file"
}

func (c *ValidateCommand) Run(args []string) int {
	if err := c.flagSet("validate").Parse(args); err != nil {
		return c.fail(err)
	}
	if err := c.load(); err != nil {
		return c.fail(err)
	}

	e, err := c.engine(context.Background())
	if err != nil {
		return c.fail(err)
	}

	c.ui.Info(fmt.Sprintf("%s is valid: %d fleet(s)", e.Endpoint().TargetID(), len(e.Configuration().FleetRequests)))
	return 0
}
