package main

import (
	"os"

	"github.com/rlreplays/ballchasing-client/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
