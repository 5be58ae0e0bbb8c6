package main

import (
	"dakfaq/internal/cli"
	_ "dakfaq/internal/questions/asset"
	_ "dakfaq/internal/questions/component"
	_ "dakfaq/internal/questions/dak"
)

// These variables are populated by the build via -ldflags (see Taskfile.yml).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	cli.Execute()
}
