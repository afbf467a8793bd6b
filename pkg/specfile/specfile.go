// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package specfile loads option declarations from TOML, YAML or HCL files
// and turns them into optparse specs.
package specfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/clopt/pkg/optparse"
	"gopkg.in/yaml.v3"
)

// Format identifies a spec file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// File is a decoded spec file.
type File struct {
	// Path is the file the declarations were loaded from, if any.
	Path string `toml:"-" yaml:"-"`

	Name        string `toml:"name,omitempty" yaml:"name,omitempty"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
	// Requires is a semver constraint on the clopt version, e.g. ">= 0.2".
	Requires string `toml:"requires,omitempty" yaml:"requires,omitempty"`
	InOrder  bool   `toml:"in_order,omitempty" yaml:"in_order,omitempty"`
	Strict   bool   `toml:"strict,omitempty" yaml:"strict,omitempty"`

	Options []Option `toml:"option" yaml:"options"`
}

// Option declares one option.
type Option struct {
	ID          string   `toml:"id,omitempty" yaml:"id,omitempty"`
	Short       string   `toml:"short,omitempty" yaml:"short,omitempty"`
	Long        string   `toml:"long" yaml:"long"`
	Arg         string   `toml:"arg,omitempty" yaml:"arg,omitempty"`
	Desc        string   `toml:"desc,omitempty" yaml:"desc,omitempty"`
	Type        string   `toml:"type,omitempty" yaml:"type,omitempty"`
	Default     any      `toml:"default,omitempty" yaml:"default,omitempty"`
	DefaultDesc string   `toml:"default_desc,omitempty" yaml:"default_desc,omitempty"`
	Accumulate  string   `toml:"accumulate,omitempty" yaml:"accumulate,omitempty"`
	Min         *float64 `toml:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64 `toml:"max,omitempty" yaml:"max,omitempty"`
	Choices     []string `toml:"choices,omitempty" yaml:"choices,omitempty"`
	ValidateMsg string   `toml:"validate_msg,omitempty" yaml:"validate_msg,omitempty"`
	Required    bool     `toml:"required,omitempty" yaml:"required,omitempty"`
	Negatable   bool     `toml:"negatable,omitempty" yaml:"negatable,omitempty"`
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return "", fmt.Errorf("unsupported spec file extension %q (want .toml, .yaml, .yml or .hcl)", filepath.Ext(path))
}

// Load reads and decodes the spec file at path.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}
	f, err := Decode(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Decode decodes data in the given format. filename is only used in
// diagnostics.
func Decode(data []byte, format Format, filename string) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case FormatHCL:
		hf, err := decodeHCL(data, filename)
		if err != nil {
			return nil, err
		}
		f = *hf
	default:
		return nil, fmt.Errorf("unknown spec format %q", format)
	}
	return &f, nil
}

// CheckVersion reports an error if version does not satisfy Requires.
func (f *File) CheckVersion(version string) error {
	if f.Requires == "" {
		return nil
	}
	c, err := semver.NewConstraint(f.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", f.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid clopt version %q: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%s requires clopt %s, have %s", f.displayName(), f.Requires, v)
	}
	return nil
}

// ParserOptions returns the parser options declared by the file.
func (f *File) ParserOptions() []optparse.Option {
	var opts []optparse.Option
	if f.InOrder {
		opts = append(opts, optparse.InOrder())
	}
	if f.Strict {
		opts = append(opts, optparse.Strict())
	}
	return opts
}

// Parser builds the specs and returns a validated parser for them.
func (f *File) Parser() (*optparse.Parser, error) {
	specs, err := f.Specs()
	if err != nil {
		return nil, err
	}
	p, err := optparse.New(specs, f.ParserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.displayName(), err)
	}
	return p, nil
}

func (f *File) displayName() string {
	switch {
	case f.Path != "":
		return f.Path
	case f.Name != "":
		return f.Name
	}
	return "spec file"
}
