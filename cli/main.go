package cli

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"
	"github.com/ryotarai/sepconfig/version"
)

// Run starts CLI
func Run(args []string) int {
	ui := &cli.PrefixedUi{
		Ui: &cli.BasicUi{
			Writer:      os.Stdout,
			ErrorWriter: os.Stderr,
		},
		InfoPrefix:  "INFO:  ",
		ErrorPrefix: "ERROR: ",
		WarnPrefix:  "WARN:  ",
	}

	c := &cli.CLI{
		Name:     "sepconfig",
		Version:  version.Version,
		Args:     args,
		Commands: Commands(ui),
	}

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %s\n", err.Error())
		return 1
	}

	return exitCode
}
