package main

import (
	// item dates are anchored in the location's zone
	_ "time/tzdata"

	"github.com/teemow/hebcal/cmd"
)

// version will be set by goreleaser during build
var version = "dev"

func main() {
	// Set the version from build-time variable
	cmd.SetVersion(version)

	// Execute the root command
	cmd.Execute()
}
