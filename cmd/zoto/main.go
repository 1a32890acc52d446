package main

import (
	"os"

	"github.com/kailas-cloud/zoto/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
