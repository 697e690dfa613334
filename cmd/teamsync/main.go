// Package main provides the entry point for the teamsync CLI tool.
package main

import "github.com/agentstation/teamsync/cmd/teamsync/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
