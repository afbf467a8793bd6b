// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optparse parses command-line arguments against a declarative list
// of option specifications.
//
// A Spec describes one option: its short and long flags, whether it takes a
// value, how the raw value is converted, how repeated values accumulate and
// how the result is validated. Parsing never fails on user input; every
// problem is recorded in Result.Errors and scanning continues.
//
//	specs := []optparse.Spec{
//	    {Short: "-p", Long: "--port", Arg: "PORT", Desc: "Port number",
//	        Default: uint16(80), Parse: optparse.Port(0, 0),
//	        Validate: optparse.IntRange(1, 65535), ValidateMsg: "Must be a number between 1 and 65535"},
//	    {Short: "-v", Long: "--verbose", Desc: "Verbosity level", Default: 0, Assoc: optparse.Count},
//	    {Short: "-h", Long: "--help"},
//	}
//	res, err := optparse.Parse(os.Args[1:], specs)
//	if err != nil {
//	    log.Fatal(err) // duplicate or malformed specs
//	}
//	if len(res.Errors) > 0 || res.Options["help"] == true {
//	    fmt.Println(res.Summary)
//	}
//
// # Token grammar
//
//   - Short flags: -p
//   - Long flags: --port, and --port=80 for flags that take a value
//   - Negatable boolean flags also accept --no-name
//   - "--" ends option parsing; every later token is positional
//   - A bare "-" is positional
//
// A flag that takes a value always consumes the next token, even one that
// looks like a flag, unless the Strict option is set.
package optparse
