package cli

import (
	"context"
	"strings"
)

type GrantsCommand struct {
	meta
}

func (c *GrantsCommand) Help() string {
	return strings.TrimSpace(`
Usage: sepconfig grants -config <path>

  Prints the IAM policy document and managed policies the endpoint's role
  needs for the configured fleets.
`)
}

func (c *GrantsCommand) Synopsis() string {
	return "Show the access grants for the endpoint"
}

func (c *GrantsCommand) Run(args []string) int {
	if err := c.flagSet("grants").Parse(args); err != nil {
		return c.fail(err)
	}
	if err := c.load(); err != nil {
		return c.fail(err)
	}

	e, err := c.engine(context.Background())
	if err != nil {
		return c.fail(err)
	}

	set := e.Grants()
	doc, err := set.PolicyDocument()
	if err != nil {
		return c.fail(err)
	}
	c.ui.Output(string(doc))
	for _, p := range set.ManagedPolicies {
		c.ui.Output(p)
	}
	return 0
}
