// projtree prints the structure of a directory tree.
//
// Build with: go build -ldflags "-X github.com/rescale/projtree/internal/version.Version=vX.Y.Z" ./cmd/projtree
package main

import (
	"os"

	"github.com/rescale/projtree/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
