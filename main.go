package main

import (
	"os"

	"github.com/kurso-app/kurso/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
