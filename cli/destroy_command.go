package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ryotarai/sepconfig/endpoint"
)

type DestroyCommand struct {
	meta
}

func (c *DestroyCommand) Help() string {
	return strings.TrimSpace(`
Usage: sepconfig destroy -config <path>

  Removes the plugin configuration from the scheduler through the
  executor's RemoveCommand. Running spot fleet requests are not cancelled.
`)
}

func (c *DestroyCommand) Synopsis() string {
	return "Remove the plugin configuration"
}

type connectionInfoer interface {
	ConnectionInfo() endpoint.ConnectionDescriptor
}

func (c *DestroyCommand) Run(args []string) int {
	if err := c.flagSet("destroy").Parse(args); err != nil {
		return c.fail(err)
	}
	if err := c.load(); err != nil {
		return c.fail(err)
	}

	target, err := c.config.Target()
	if err != nil {
		return c.fail(err)
	}
	conn, ok := target.(connectionInfoer)
	if !ok {
		return c.fail(fmt.Errorf("%s has no connection info", target.TargetID()))
	}

	s, err := c.openStorage()
	if err != nil {
		return c.fail(err)
	}
	defer c.closeStorage(s)

	result, err := c.orchestrator(s).TearDown(context.Background(), target.TargetID(), conn.ConnectionInfo())
	if err != nil {
		return c.fail(err)
	}

	c.ui.Info(fmt.Sprintf("%s: %s", target.TargetID(), result))
	return 0
}
