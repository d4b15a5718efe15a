package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gabapcia/transferwatch/internal/handlers/cli"
)

func main() {
	if err := cli.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
