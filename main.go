package main

import (
	"os"

	"github.com/awidegreen/pack/pkg/cli"
)

var version = "0.3.0"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
