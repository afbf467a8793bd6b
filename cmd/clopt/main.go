// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shayne/yargs"
	"github.com/yeetrun/clopt/pkg/cli"
	"github.com/yeetrun/clopt/pkg/tui"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

var (
	// passthroughArgs holds everything after the first "--" on the command
	// line. It is kept away from yargs so tokens like -h reach the spec
	// parser untouched.
	passthroughArgs []string
	hasPassthrough  bool

	verbose bool
	colors  tui.Colorizer

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

type globalFlagsParsed struct {
	Verbose bool `flag:"verbose" short:"v" help:"Log what clopt is doing to stderr"`
	NoColor bool `flag:"no-color" help:"Disable colored output (NO_COLOR)"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// exitError carries a process exit status through a handler's error
// return. Its message has already been shown.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	head, tail := cli.SplitArgsAtDoubleDash(args)
	passthroughArgs = tail
	hasPassthrough = len(head) < len(args)

	globalFlags, remaining, err := parseGlobalFlags(head)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	verbose = globalFlags.Verbose
	colors = tui.NewColorizer(!globalFlags.NoColor, os.Stderr.Fd())

	handlers := map[string]yargs.SubcommandHandler{
		"parse":   handleParse,
		"summary": handleSummary,
		"check":   handleCheck,
		"version": handleVersion,
	}
	err = yargs.RunSubcommands(ctx, remaining, cli.HelpConfig(), globalFlagsParsed{}, handlers)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	printCLIError(stderr, err)
	return 1
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, colors.Error("error:"), err)
}

func logf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

// trimCommand drops the leading command name that yargs passes through to
// handlers.
func trimCommand(args []string, name string) []string {
	if len(args) > 0 && args[0] == name {
		return args[1:]
	}
	return args
}

// withPassthrough reattaches the "--" tail for commands that treat it as
// ordinary positional input.
func withPassthrough(args []string) []string {
	if !hasPassthrough {
		return args
	}
	out := make([]string, 0, len(args)+1+len(passthroughArgs))
	out = append(out, args...)
	out = append(out, "--")
	return append(out, passthroughArgs...)
}
