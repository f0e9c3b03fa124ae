package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lovelab-app/lovelab/internal/client/cli"
)

func main() {
	app := cli.NewApp(os.Stdin, os.Stdout)
	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
