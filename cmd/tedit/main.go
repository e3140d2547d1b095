package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	cmd := newRootCmd()
	cmd.Version = version
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tedit:", err)
		os.Exit(1)
	}
}
