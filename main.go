package main

import (
	"os"

	"github.com/kuberdock/kcli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
