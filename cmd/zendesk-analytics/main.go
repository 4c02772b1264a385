package main

import (
	"fmt"
	"os"

	"zendesk-analytics/cmd/zendesk-analytics/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
