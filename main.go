package main

import (
	"os"

	"github.com/lyubolp/py2uml/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
