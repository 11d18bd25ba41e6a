// Command gee extracts GitHub users and their emails from repositories.
package main

import (
	"os"

	"github.com/custodia-labs/gee/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
