package main

import (
	"os"

	"github.com/agent-ops/sandboxctl/cmd"
	"github.com/agent-ops/sandboxctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
