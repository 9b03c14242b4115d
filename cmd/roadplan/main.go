package main

import (
	"fmt"
	"os"

	"github.com/danieljhkim/roadplan/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", cli.FormatError(err))
		os.Exit(1)
	}
}
