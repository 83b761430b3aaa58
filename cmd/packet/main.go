// Package main is the entry point for the Packet application.
package main

import (
	"fmt"
	"os"

	"packet/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(application.Run(os.Args[1:]))
}
