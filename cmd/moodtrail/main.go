// Package main is the single-binary entrypoint for moodtrail.
package main

import "github.com/moodtrail/moodtrail/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
