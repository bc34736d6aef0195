package main

import (
	"context"
	"os"

	"bennypowers.dev/stylevars/internal/log"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}
