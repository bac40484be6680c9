// Package main is the tempo command: headless animation traces, strand
// benchmarks, and terminal or window previews of easing curves.
package main

import "github.com/phanxgames/tempo/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
