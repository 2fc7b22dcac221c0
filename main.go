/*
This is an example of application that will use the
engine package to render things out
*/
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/prisma/engine"
	"github.com/spaghettifunk/prisma/testbed"
)

func main() {
	tb := testbed.NewTestGame()
	if len(os.Args) > 1 {
		config, err := engine.LoadApplicationConfig(os.Args[1])
		if err != nil {
			panic(err)
		}
		tb.ApplicationConfig = config
	}

	eng, err := engine.New(tb)
	if err != nil {
		panic(err)
	}

	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// stop rendering on the first signal
	go func() {
		<-sigCh
		cancel()
	}()

	if err := eng.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			_ = eng.Shutdown()
			return
		}
		panic(err)
	}
}
