package main

import "github.com/AtoraSuunva/httpc/apps/cli/cmd"

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, buildTime)
}
