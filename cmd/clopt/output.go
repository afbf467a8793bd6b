// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/yeetrun/clopt/pkg/cli"
	"github.com/yeetrun/clopt/pkg/env"
	"github.com/yeetrun/clopt/pkg/optparse"
	"gopkg.in/yaml.v3"
)

type parseOutput struct {
	Options map[string]any `json:"options" yaml:"options"`
	Args    []string       `json:"args" yaml:"args"`
	Errors  []string       `json:"errors" yaml:"errors"`
}

func newParseOutput(res *optparse.Result) parseOutput {
	opts := make(map[string]any, len(res.Options))
	for k, v := range res.Options {
		opts[k] = plainValue(v)
	}
	return parseOutput{Options: opts, Args: res.Args, Errors: res.Errors}
}

// plainValue converts parsed values to their textual form where the
// encoders would otherwise expose internals (durations as nanoseconds,
// URLs as structs).
func plainValue(v any) any {
	switch v := v.(type) {
	case time.Duration:
		return v.String()
	case *url.URL:
		return v.String()
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = plainValue(e)
		}
		return out
	}
	return v
}

func writeResult(w io.Writer, format, prefix string, res *optparse.Result) error {
	switch format {
	case cli.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newParseOutput(res))
	case cli.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newParseOutput(res)); err != nil {
			return err
		}
		return enc.Close()
	case cli.FormatEnv:
		return writeEnv(w, prefix, res)
	case cli.FormatText, "":
		return writeText(w, res)
	}
	return fmt.Errorf("unknown format %q", format)
}

// writeEnv emits assignments followed by a "set --" line so that
// eval-ing the output also replaces the positional parameters.
func writeEnv(w io.Writer, prefix string, res *optparse.Result) error {
	if err := env.Write(w, prefix, res.Options); err != nil {
		return err
	}
	args := make([]string, len(res.Args))
	for i, a := range res.Args {
		args[i] = env.Quote(a)
	}
	_, err := fmt.Fprintln(w, strings.TrimSpace("set -- "+strings.Join(args, " ")))
	return err
}

func writeText(w io.Writer, res *optparse.Result) error {
	ids := make([]string, 0, len(res.Options))
	for id := range res.Options {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OPTION\tVALUE")
	for _, id := range ids {
		fmt.Fprintf(tw, "%s\t%s\n", id, env.Format(res.Options[id]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(res.Args) == 0 {
		return nil
	}
	quoted := make([]string, len(res.Args))
	for i, a := range res.Args {
		quoted[i] = env.Quote(a)
	}
	_, err := fmt.Fprintf(w, "\nARGS  %s\n", strings.Join(quoted, " "))
	return err
}
