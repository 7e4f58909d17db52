package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/templui/focusflow/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.Run(ctx, os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.ErrorText(err))
		stop()
		os.Exit(1)
	}
}
