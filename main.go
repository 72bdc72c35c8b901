package main

import (
	"os"

	"github.com/ryotarai/sepconfig/cli"
)

func main() {
	exitCode := cli.Run(os.Args[1:])
	os.Exit(exitCode)
}
