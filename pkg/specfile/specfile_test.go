// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package specfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/clopt/pkg/optparse"
)

var serverSummary = strings.Join([]string{
	"  -p, --port PORT      Port number      (default: 80)",
	"  -H, --hostname HOST  Remote host      (default: the local host)",
	"  -v, --verbose        Verbosity level  (default: 0)",
	"      --format FMT     Output format    (default: text)",
	"  -t, --tag TAG        Tag to apply",
	"  -h, --help",
}, "\n")

func loadParser(t *testing.T, path string) *optparse.Parser {
	t.Helper()
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error: %v", path, err)
	}
	p, err := f.Parser()
	if err != nil {
		t.Fatalf("Parser() error: %v", err)
	}
	return p
}

func TestLoadFormatsAgree(t *testing.T) {
	for _, name := range []string{"server.toml", "server.yaml", "server.hcl"} {
		t.Run(name, func(t *testing.T) {
			p := loadParser(t, filepath.Join("testdata", name))
			if diff := cmp.Diff(serverSummary, p.Summary()); diff != "" {
				t.Errorf("Summary mismatch (-want +got):\n%s", diff)
			}

			res := p.Parse([]string{"-p", "8080", "-v", "-v", "--tag", "a", "-t", "b", "--format", "json", "x"})
			wantOpts := map[string]any{
				"port":     uint16(8080),
				"hostname": "localhost",
				"verbose":  2,
				"format":   "json",
				"tags":     []any{"a", "b"},
			}
			if diff := cmp.Diff(wantOpts, res.Options); diff != "" {
				t.Errorf("Options mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"x"}, res.Args); diff != "" {
				t.Errorf("Args mismatch (-want +got):\n%s", diff)
			}
			if len(res.Errors) != 0 {
				t.Errorf("Errors = %q, want none", res.Errors)
			}
		})
	}
}

func TestLoadedValidation(t *testing.T) {
	p := loadParser(t, filepath.Join("testdata", "server.toml"))
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "choice",
			args: []string{"--format", "xml"},
			want: []string{`Failed to validate "--format xml": Must be one of text, json`},
		},
		{
			name: "port range",
			args: []string{"-p", "0"},
			want: []string{`Error while parsing option "-p 0": port must be between 1-65535, got 0`},
		},
		{
			name: "unknown",
			args: []string{"--bogus", "80"},
			want: []string{`Unknown option: "--bogus"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Parse(tt.args)
			if diff := cmp.Diff(tt.want, res.Errors); diff != "" {
				t.Errorf("Errors mismatch (-want +got):\n%s", diff)
			}
			if got := res.Options["port"]; got != uint16(80) {
				t.Errorf("port = %v, want default 80", got)
			}
		})
	}
}

func TestLoadDuplicateFlags(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "duplicate.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	_, err = f.Parser()
	var specErr *optparse.SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("Parser() error = %v, want *optparse.SpecError", err)
	}
	if specErr.Flag != "-p" {
		t.Errorf("SpecError.Flag = %q, want -p", specErr.Flag)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"unknown toml key", filepath.Join("testdata", "unknown_key.toml"), "unknown key"},
		{"unknown yaml key", write("bad.yaml", "options:\n  - long: port\n    placeholder: PORT\n"), "placeholder"},
		{"bad extension", write("spec.json", "{}"), "unsupported spec file extension"},
		{"missing file", filepath.Join(dir, "nope.toml"), "failed to read spec file"},
		{"invalid hcl", write("bad.hcl", "option \"port\" {\n"), "failed to parse"},
		{"hcl list default", write("list.hcl", "option \"tag\" {\n  arg = \"TAG\"\n  default = [\"a\"]\n}\n"), "default must be a string, number or bool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSpecsErrors(t *testing.T) {
	one := 1.0
	tests := []struct {
		name    string
		opt     Option
		wantErr string
	}{
		{"missing long", Option{Short: "p"}, "long flag is required"},
		{"unknown type", Option{Long: "port", Arg: "PORT", Type: "ipv6"}, `unknown type "ipv6"`},
		{"unknown accumulate", Option{Long: "port", Arg: "PORT", Accumulate: "avg"}, `unknown accumulate mode "avg"`},
		{"bad default", Option{Long: "port", Arg: "PORT", Type: "int", Default: "eighty"}, `invalid default "eighty"`},
		{"range on string", Option{Long: "name", Arg: "NAME", Min: &one}, "min/max need a numeric type"},
		{"bool with type", Option{Long: "fast", Type: "int"}, `type "int" needs an arg placeholder`},
		{"bool append", Option{Long: "fast", Accumulate: "append"}, `accumulate mode "append" needs an arg placeholder`},
		{"bool bad default", Option{Long: "fast", Default: "maybe"}, "invalid default"},
		{"negatable count", Option{Long: "loud", Accumulate: "count", Negatable: true}, "counting flags cannot be negatable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{Name: "test", Options: []Option{tt.opt}}
			_, err := f.Specs()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Specs error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSpecsNumericRange(t *testing.T) {
	lo, hi := 0.0, 99.0
	f := &File{Options: []Option{
		{Short: "n", Long: "count", Arg: "N", Type: "int", Default: 1, Min: &lo, Max: &hi, Accumulate: "max"},
		{Long: "ratio", Arg: "R", Type: "float", Max: &hi, ValidateMsg: "too big"},
		{Long: "color", Default: true, Negatable: true},
		{Long: "host", Arg: "HOST", Required: true},
	}}
	p, err := f.Parser()
	if err != nil {
		t.Fatalf("Parser() error: %v", err)
	}
	res := p.Parse([]string{"-n", "2", "-n", "50", "-n", "10", "-n", "200", "--ratio", "100", "--no-color"})
	wantOpts := map[string]any{"count": 50, "color": false}
	if diff := cmp.Diff(wantOpts, res.Options); diff != "" {
		t.Errorf("Options mismatch (-want +got):\n%s", diff)
	}
	wantErrs := []string{
		`Failed to validate "-n 200": Must be between 0 and 99`,
		`Failed to validate "--ratio 100": too big`,
		"Missing required option --host",
	}
	if diff := cmp.Diff(wantErrs, res.Errors); diff != "" {
		t.Errorf("Errors mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulateByType(t *testing.T) {
	tests := []struct {
		typ, mode string
		args      []string
		want      any
	}{
		{"duration", "max", []string{"50s", "7s"}, 50 * time.Second},
		{"duration", "min", []string{"50s", "7s"}, 7 * time.Second},
		{"duration", "sum", []string{"50s", "7s"}, 57 * time.Second},
		{"port", "max", []string{"50", "7"}, uint16(50)},
		{"port", "sum", []string{"50", "7"}, uint16(57)},
		{"int", "max", []string{"50", "7"}, 50},
		{"int", "sum", []string{"50", "7"}, 57},
		{"int", "sum", []string{"9007199254740993", "0"}, 9007199254740993},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.mode, func(t *testing.T) {
			src := fmt.Sprintf("[[option]]\nlong = \"x\"\narg = \"X\"\ntype = %q\naccumulate = %q\n", tt.typ, tt.mode)
			f, err := Decode([]byte(src), FormatTOML, "accumulate.toml")
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			p, err := f.Parser()
			if err != nil {
				t.Fatalf("Parser() error: %v", err)
			}
			res := p.Parse([]string{"--x", tt.args[0], "--x", tt.args[1]})
			if len(res.Errors) > 0 {
				t.Fatalf("Parse errors: %v", res.Errors)
			}
			if got := res.Options["x"]; got != tt.want {
				t.Errorf("x = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCheckVersion(t *testing.T) {
	f := &File{Name: "server", Requires: ">= 0.2.0, < 1.0.0"}
	if err := f.CheckVersion("0.2.3"); err != nil {
		t.Errorf("CheckVersion(0.2.3) error: %v", err)
	}
	err := f.CheckVersion("0.1.0")
	if err == nil || !strings.Contains(err.Error(), "server requires clopt >= 0.2.0, < 1.0.0") {
		t.Errorf("CheckVersion(0.1.0) error = %v", err)
	}
	if err := f.CheckVersion("dev"); err == nil {
		t.Errorf("CheckVersion(dev) error = nil, want invalid version")
	}
	if err := (&File{}).CheckVersion("dev"); err != nil {
		t.Errorf("CheckVersion without constraint error: %v", err)
	}
	bad := &File{Requires: "around 1"}
	if err := bad.CheckVersion("1.0.0"); err == nil {
		t.Errorf("CheckVersion with bad constraint error = nil")
	}
}

func TestParserOptions(t *testing.T) {
	f, err := Decode([]byte("in_order = true\nstrict = true\n[[option]]\nlong = \"verbose\"\nshort = \"v\"\n"), FormatTOML, "inline.toml")
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	p, err := f.Parser()
	if err != nil {
		t.Fatalf("Parser() error: %v", err)
	}
	res := p.Parse([]string{"-v", "run", "-v"})
	if diff := cmp.Diff([]string{"run", "-v"}, res.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
	if res.Options["verbose"] != true {
		t.Errorf("verbose = %v, want true", res.Options["verbose"])
	}
}
