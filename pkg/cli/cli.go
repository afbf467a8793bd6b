// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shayne/yargs"
)

// Output formats accepted by the parse command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatEnv  = "env"
)

var outputFormats = []string{FormatText, FormatJSON, FormatYAML, FormatEnv}

type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Aliases     []string
}

type ParseCmdFlags struct {
	Spec    string
	Format  string
	Prefix  string
	InOrder bool
	Strict  bool
}

type SummaryFlags struct {
	Spec string
}

type CheckFlags struct {
	Jobs    int
	Version string
}

type VersionFlags struct {
	JSON bool
}

type parseFlagsParsed struct {
	Spec    string `flag:"spec" short:"s" help:"Spec file (.toml, .yaml or .hcl)"`
	Format  string `flag:"format" short:"f" default:"text" help:"Output format (text|json|yaml|env)"`
	Prefix  string `flag:"prefix" help:"Variable prefix for --format=env"`
	InOrder bool   `flag:"in-order" help:"Stop at the first positional argument"`
	Strict  bool   `flag:"strict" help:"Never take a known flag as an option value"`
}

type summaryFlagsParsed struct {
	Spec string `flag:"spec" short:"s" help:"Spec file (.toml, .yaml or .hcl)"`
}

type checkFlagsParsed struct {
	Jobs    int    `flag:"jobs" short:"j" default:"4" help:"Files to check in parallel"`
	Version string `flag:"as-version" help:"Check requires constraints against this version"`
}

type versionFlagsParsed struct {
	JSON bool `flag:"json"`
}

var commandInfos = map[string]CommandInfo{
	"parse": {Name: "parse", Description: "Parse arguments against a spec file and print the result", Usage: "--spec FILE [--format=text|json|yaml|env] [--prefix P] -- ARGS...", Examples: []string{
		"clopt parse --spec server.toml -- -p 8080 -v -v",
		"clopt parse -s server.yaml --format json -- --port=9000 serve",
		`eval "$(clopt parse -s server.hcl -f env --prefix APP_ -- "$@")"`,
	}, Aliases: []string{"p"}},
	"summary": {Name: "summary", Description: "Print the option summary for a spec file", Usage: "--spec FILE", Examples: []string{
		"clopt summary --spec server.toml",
	}},
	"check": {Name: "check", Description: "Validate one or more spec files", Usage: "FILE... [--jobs N]", Examples: []string{
		"clopt check specs/*.toml",
		"clopt check --jobs 8 a.yaml b.hcl",
	}},
	"version": {Name: "version", Description: "Show the clopt version", Usage: "[--json]"},
}

func CommandNames() []string {
	names := make([]string, 0, len(commandInfos))
	for name := range commandInfos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// HelpConfig returns the yargs help metadata for the clopt command tree.
func HelpConfig() yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo, len(commandInfos))
	for name, info := range commandInfos {
		subcommands[name] = toSubCommandInfo(name, info)
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "clopt",
			Description: "Parse command-line options declared in a TOML, YAML or HCL spec file.",
			Examples: []string{
				"clopt parse --spec server.toml -- -p 8080 -v",
				"clopt summary --spec server.toml",
				"clopt check specs/*.toml",
			},
		},
		SubCommands: subcommands,
	}
}

func toSubCommandInfo(name string, info CommandInfo) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        name,
		Description: info.Description,
		Usage:       info.Usage,
		Examples:    info.Examples,
		Aliases:     info.Aliases,
	}
}

// ParseParse parses the flags of the parse command. args should not include
// the command name or anything after "--".
func ParseParse(args []string) (ParseCmdFlags, []string, error) {
	parsed, err := parseFlags[parseFlagsParsed](args)
	if err != nil {
		return ParseCmdFlags{}, nil, err
	}
	flags := ParseCmdFlags{
		Spec:    parsed.Flags.Spec,
		Format:  strings.ToLower(parsed.Flags.Format),
		Prefix:  parsed.Flags.Prefix,
		InOrder: parsed.Flags.InOrder,
		Strict:  parsed.Flags.Strict,
	}
	if flags.Spec == "" {
		return flags, nil, fmt.Errorf("'parse' requires --spec")
	}
	if !slices.Contains(outputFormats, flags.Format) {
		return flags, nil, fmt.Errorf("unknown format %q (want %s)", parsed.Flags.Format, strings.Join(outputFormats, "|"))
	}
	return flags, parsed.Args, nil
}

func ParseSummary(args []string) (SummaryFlags, []string, error) {
	parseArgs, extraArgs := SplitArgsAtDoubleDash(args)
	parsed, err := parseFlags[summaryFlagsParsed](parseArgs)
	if err != nil {
		return SummaryFlags{}, nil, err
	}
	flags := SummaryFlags{Spec: parsed.Flags.Spec}
	argsOut := append(parsed.Args, extraArgs...)
	if flags.Spec == "" && len(argsOut) == 1 {
		flags.Spec, argsOut = argsOut[0], nil
	}
	if flags.Spec == "" {
		return flags, nil, fmt.Errorf("'summary' requires --spec")
	}
	return flags, argsOut, nil
}

func ParseCheck(args []string) (CheckFlags, []string, error) {
	parseArgs, extraArgs := SplitArgsAtDoubleDash(args)
	parsed, err := parseFlags[checkFlagsParsed](parseArgs)
	if err != nil {
		return CheckFlags{}, nil, err
	}
	flags := CheckFlags{Jobs: parsed.Flags.Jobs, Version: parsed.Flags.Version}
	if flags.Jobs < 1 {
		return flags, nil, fmt.Errorf("--jobs must be at least 1, got %d", flags.Jobs)
	}
	argsOut := append(parsed.Args, extraArgs...)
	if err := RequireArgsAtLeast("check", argsOut, 1); err != nil {
		return flags, nil, err
	}
	return flags, argsOut, nil
}

func ParseVersion(args []string) (VersionFlags, []string, error) {
	parseArgs, extraArgs := SplitArgsAtDoubleDash(args)
	parsed, err := parseFlags[versionFlagsParsed](parseArgs)
	if err != nil {
		return VersionFlags{}, nil, err
	}
	flags := VersionFlags{JSON: parsed.Flags.JSON}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

type parsedFlags[T any] struct {
	Flags T
	Args  []string
}

func parseFlags[T any](args []string) (parsedFlags[T], error) {
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	if len(result.RemainingArgs) > 0 {
		argsOut = append(argsOut, result.RemainingArgs...)
	}
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut}, nil
}

// SplitArgsAtDoubleDash splits args at the first "--", dropping it.
func SplitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}

func RequireArgsAtLeast(subcmd string, args []string, count int) error {
	if len(args) < count {
		return fmt.Errorf("'%s' requires at least %d argument(s), got %d", subcmd, count, len(args))
	}
	return nil
}
