// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui holds terminal styling helpers for command output.
package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Colorizer styles short status strings. The zero value leaves text
// untouched.
type Colorizer struct {
	Enabled bool

	red, green, yellow, dim *color.Color
}

// NewColorizer returns an enabled Colorizer when enabled is set, fd is a
// terminal and neither NO_COLOR nor a dumb TERM asks otherwise.
func NewColorizer(enabled bool, fd uintptr) Colorizer {
	if !enabled || !term.IsTerminal(int(fd)) {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	if t := os.Getenv("TERM"); t == "" || t == "dumb" {
		return Colorizer{}
	}
	return Forced()
}

// Forced returns an enabled Colorizer regardless of the environment.
func Forced() Colorizer {
	c := Colorizer{
		Enabled: true,
		red:     color.New(color.FgRed, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		dim:     color.New(color.FgHiBlack),
	}
	for _, cc := range []*color.Color{c.red, c.green, c.yellow, c.dim} {
		cc.EnableColor()
	}
	return c
}

func (c Colorizer) wrap(cc *color.Color, text string) string {
	if !c.Enabled || cc == nil {
		return text
	}
	return cc.Sprint(text)
}

func (c Colorizer) Error(text string) string { return c.wrap(c.red, text) }
func (c Colorizer) Warn(text string) string  { return c.wrap(c.yellow, text) }
func (c Colorizer) OK(text string) string    { return c.wrap(c.green, text) }
func (c Colorizer) Dim(text string) string   { return c.wrap(c.dim, text) }
