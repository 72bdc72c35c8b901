package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ryotarai/sepconfig/storage"
)

type PlanCommand struct {
	meta
}

func (c *PlanCommand) Help() string {
	return strings.TrimSpace(`
Usage: sepconfig plan -config <path>

  Prints the compiled plugin configuration and whether apply would change
  the stored state of the target.
`)
}

func (c *PlanCommand) Synopsis() string {
	return "Show the configuration apply would send"
}

func (c *PlanCommand) Run(args []string) int {
	if err := c.flagSet("plan").Parse(args); err != nil {
		return c.fail(err)
	}
	if err := c.load(); err != nil {
		return c.fail(err)
	}

	e, err := c.engine(context.Background())
	if err != nil {
		return c.fail(err)
	}

	payload, err := e.Configuration().Payload()
	if err != nil {
		return c.fail(err)
	}
	digest, err := e.Configuration().Digest()
	if err != nil {
		return c.fail(err)
	}
	c.ui.Output(string(payload))

	s, err := c.openStorage()
	if err != nil {
		return c.fail(err)
	}
	defer c.closeStorage(s)
	id := e.Endpoint().TargetID()
	r, err := s.GetRecord(id)
	if err != nil {
		return c.fail(err)
	}

	if r != nil && r.State == storage.StateConfigured && r.Digest == digest {
		c.ui.Info(fmt.Sprintf("%s is up to date (digest %s)", id, digest))
	} else {
		c.ui.Info(fmt.Sprintf("%s would be configured (digest %s)", id, digest))
	}
	return 0
}
