// Package main is the entry point for the swingmetrics CLI tool, which scores
// biomechanical motion-capture CSV exports into 4B swing grades.
package main

import "github.com/hitworks/swingmetrics/cmd"

func main() {
	cmd.Execute()
}
