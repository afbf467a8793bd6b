// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package specfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// hclFile mirrors File for gohcl. Options are blocks labelled with their
// long flag name:
//
//	option "port" {
//	  short   = "p"
//	  arg     = "PORT"
//	  type    = "port"
//	  default = 8080
//	}
type hclFile struct {
	Name        string       `hcl:"name,optional"`
	Description string       `hcl:"description,optional"`
	Requires    string       `hcl:"requires,optional"`
	InOrder     bool         `hcl:"in_order,optional"`
	Strict      bool         `hcl:"strict,optional"`
	Options     []*hclOption `hcl:"option,block"`
}

type hclOption struct {
	Long        string    `hcl:"long,label"`
	ID          string    `hcl:"id,optional"`
	Short       string    `hcl:"short,optional"`
	Arg         string    `hcl:"arg,optional"`
	Desc        string    `hcl:"desc,optional"`
	Type        string    `hcl:"type,optional"`
	Default     cty.Value `hcl:"default,optional"`
	DefaultDesc string    `hcl:"default_desc,optional"`
	Accumulate  string    `hcl:"accumulate,optional"`
	Min         *float64  `hcl:"min,optional"`
	Max         *float64  `hcl:"max,optional"`
	Choices     []string  `hcl:"choices,optional"`
	ValidateMsg string    `hcl:"validate_msg,optional"`
	Required    bool      `hcl:"required,optional"`
	Negatable   bool      `hcl:"negatable,optional"`
}

func decodeHCL(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	hf, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	var parsed hclFile
	if diags := gohcl.DecodeBody(hf.Body, nil, &parsed); diags.HasErrors() {
		return nil, diags
	}

	f := &File{
		Name:        parsed.Name,
		Description: parsed.Description,
		Requires:    parsed.Requires,
		InOrder:     parsed.InOrder,
		Strict:      parsed.Strict,
		Options:     make([]Option, 0, len(parsed.Options)),
	}
	for _, o := range parsed.Options {
		def, err := ctyDefault(o.Default)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", o.Long, err)
		}
		f.Options = append(f.Options, Option{
			ID:          o.ID,
			Short:       o.Short,
			Long:        o.Long,
			Arg:         o.Arg,
			Desc:        o.Desc,
			Type:        o.Type,
			Default:     def,
			DefaultDesc: o.DefaultDesc,
			Accumulate:  o.Accumulate,
			Min:         o.Min,
			Max:         o.Max,
			Choices:     o.Choices,
			ValidateMsg: o.ValidateMsg,
			Required:    o.Required,
			Negatable:   o.Negatable,
		})
	}
	return f, nil
}

// ctyDefault renders a primitive default as the raw string the option's
// parser will see. A null value means no default.
func ctyDefault(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.Type().IsPrimitiveType() {
		return nil, fmt.Errorf("default must be a string, number or bool, have %s", v.Type().FriendlyName())
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return nil, fmt.Errorf("invalid default: %w", err)
	}
	return s.AsString(), nil
}
