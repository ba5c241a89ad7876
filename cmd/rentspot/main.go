package main

import (
	"os"

	"github.com/memodb-io/rentspot/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
