package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-cinema-client/app"
	"github.com/jrsteele09/go-cinema-client/internal/config"
)

var errPanic = errors.New("panic recovered")

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errPanic
		}
	}()

	if len(args) == 0 {
		displayAppname("cinemactl")
		usage(os.Stdout)
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usage(os.Stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}

	c, err := config.New()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, c, app.WithLogger(app.NewLogger(c, os.Stderr)))
	if err != nil {
		return err
	}
	defer a.Close()

	// Guards see the session only once bootstrap has settled.
	a.Start(ctx)
	return cmd.run(ctx, a, os.Stdout, args[1:])
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
