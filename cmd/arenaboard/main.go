// cmd/arenaboard/main.go
package main

import (
	arenaboard "github.com/mwiater/arenaboard/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = arenaboard.SetVersionInfo
	executeCmd     = arenaboard.Execute
)

// main starts the arenaboard CLI by delegating to the cobra root command.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
