package cli

import (
	"fmt"

	"github.com/mitchellh/cli"
	"github.com/ryotarai/sepconfig/version"
)

type versionCommand struct {
	ui cli.Ui
}

func (c *versionCommand) Help() string {
	return "Show version"
}

func (c *versionCommand) Synopsis() string {
	return "Show version"
}

func (c *versionCommand) Run(args []string) int {
	v := fmt.Sprintf("sepconfig %s", version.Version)
	if version.GitCommit != "" {
		v += fmt.Sprintf(" (%s)", version.GitCommit)
	}
	c.ui.Output(v)
	return 0
}
