// Package main is the entry point for the linksctl CLI
package main

import "os"

// version is set at build time via ldflags
var version = "dev"

func main() {
	setVersion(version)
	if err := execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
