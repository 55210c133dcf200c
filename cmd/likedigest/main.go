package main

import (
	"likedigest/cmd/likedigest/commands"
	"likedigest/lib/serviceutil"
	"os"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	err := commands.ExecuteContext(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}
