// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/yeetrun/clopt/pkg/cli"
	"github.com/yeetrun/clopt/pkg/specfile"
	"golang.org/x/sync/errgroup"
)

func handleParse(_ context.Context, args []string) error {
	flags, extra, err := cli.ParseParse(trimCommand(args, "parse"))
	if err != nil {
		return err
	}
	if len(extra) > 0 {
		return fmt.Errorf("unexpected arguments %q; put the arguments to parse after --", extra)
	}
	f, err := loadSpec(flags.Spec)
	if err != nil {
		return err
	}
	f.InOrder = f.InOrder || flags.InOrder
	f.Strict = f.Strict || flags.Strict
	p, err := f.Parser()
	if err != nil {
		return err
	}

	logf("parsing %d argument(s) against %s", len(passthroughArgs), flags.Spec)
	res := p.Parse(passthroughArgs)
	if err := writeResult(stdout, flags.Format, flags.Prefix, res); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if len(res.Errors) == 0 {
		return nil
	}
	for _, msg := range res.Errors {
		fmt.Fprintln(stderr, colors.Error("error:"), msg)
	}
	fmt.Fprintf(stderr, "\n%s\n", colors.Dim(res.Summary))
	return &exitError{code: 1}
}

func handleSummary(_ context.Context, args []string) error {
	flags, _, err := cli.ParseSummary(withPassthrough(trimCommand(args, "summary")))
	if err != nil {
		return err
	}
	f, err := loadSpec(flags.Spec)
	if err != nil {
		return err
	}
	p, err := f.Parser()
	if err != nil {
		return err
	}
	if f.Description != "" {
		fmt.Fprintf(stdout, "%s\n\n", f.Description)
	}
	fmt.Fprintln(stdout, p.Summary())
	return nil
}

type checkResult struct {
	path    string
	options int
	err     error
}

func handleCheck(ctx context.Context, args []string) error {
	flags, files, err := cli.ParseCheck(withPassthrough(trimCommand(args, "check")))
	if err != nil {
		return err
	}
	want := flags.Version
	if want == "" {
		want = version
	}

	results := make([]checkResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(flags.Jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			logf("checking %s", path)
			results[i] = checkFile(path, want)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(stdout, "%s %s: %v\n", colors.Error("FAIL"), r.path, r.err)
			continue
		}
		fmt.Fprintf(stdout, "%s   %s %s\n", colors.OK("ok"), r.path, colors.Dim(fmt.Sprintf("(%d options)", r.options)))
	}
	if failed > 0 {
		fmt.Fprintf(stderr, "%d of %d spec file(s) failed\n", failed, len(results))
		return &exitError{code: 1}
	}
	return nil
}

func checkFile(path, want string) checkResult {
	r := checkResult{path: path}
	f, err := specfile.Load(path)
	if err != nil {
		r.err = err
		return r
	}
	if err := f.CheckVersion(want); err != nil {
		r.err = err
		return r
	}
	p, err := f.Parser()
	if err != nil {
		r.err = err
		return r
	}
	r.options = len(p.Specs())
	return r
}

func handleVersion(_ context.Context, args []string) error {
	flags, _, err := cli.ParseVersion(trimCommand(args, "version"))
	if err != nil {
		return err
	}
	if !flags.JSON {
		fmt.Fprintf(stdout, "clopt %s\n", version)
		return nil
	}
	b, err := json.MarshalIndent(map[string]string{
		"version": version,
		"go":      runtime.Version(),
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(b))
	return nil
}

func loadSpec(path string) (*specfile.File, error) {
	f, err := specfile.Load(path)
	if err != nil {
		return nil, err
	}
	if err := f.CheckVersion(version); err != nil {
		return nil, err
	}
	logf("loaded %d option(s) from %s", len(f.Options), path)
	return f, nil
}
