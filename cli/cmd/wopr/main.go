// wopr CLI - command-line client for the WOPR inference gateway.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/wopr-network/wopr-go/cli/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := commands.NewApp().ExecuteContext(ctx)
	if err == nil {
		return
	}
	if !commands.Reported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(commands.ExitCode(err))
}
