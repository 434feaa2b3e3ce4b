// CloudVault CLI - command-line client for the CloudVault storage service.
package main

import (
	"fmt"
	"os"

	"github.com/cloudvault/cloudvault-cli/internal/cli"
)

// Version information, injected via LDFLAGS for release builds.
var (
	version   = "v1.0.0-dev"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.BuildTime = buildTime

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
