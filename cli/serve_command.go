package cli

import (
	"strings"

	"github.com/ryotarai/sepconfig/httpapi"
)

type ServeCommand struct {
	meta
}

func (c *ServeCommand) Help() string {
	return strings.TrimSpace(`
Usage: sepconfig serve -config <path>

  Serves the stored apply records over HTTP on APIAddr.
`)
}

func (c *ServeCommand) Synopsis() string {
	return "Serve the status API"
}

func (c *ServeCommand) Run(args []string) int {
	if err := c.flagSet("serve").Parse(args); err != nil {
		return c.fail(err)
	}
	if err := c.load(); err != nil {
		return c.fail(err)
	}

	addr := c.config.APIAddr
	if addr == "" {
		addr = ":8080"
	}

	s, err := c.openStorage()
	if err != nil {
		return c.fail(err)
	}
	defer c.closeStorage(s)

	if err := httpapi.NewHandler(s, c.logger).Run(addr); err != nil {
		return c.fail(err)
	}
	return 0
}
