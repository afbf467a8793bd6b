// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/yeetrun/clopt/pkg/optparse"
)

var parser = optparse.MustNew([]optparse.Spec{
	{
		ID:          "port",
		Short:       "-p",
		Long:        "--port",
		Arg:         "PORT",
		Desc:        "Port number",
		Default:     uint16(8080),
		Parse:       optparse.Port(0, 0),
		Validate:    optparse.IntRange(1, 65535),
		ValidateMsg: "Must be a number between 1 and 65535",
	},
	{
		ID:      "hostname",
		Short:   "-H",
		Long:    "--hostname",
		Arg:     "HOST",
		Desc:    "Address to listen on",
		Default: "localhost",
	},
	{
		ID:      "verbose",
		Short:   "-v",
		Long:    "--verbose",
		Desc:    "Log each request (repeat for more)",
		Default: 0,
		Assoc:   optparse.Count,
	},
	{
		Short: "-h",
		Long:  "--help",
		Desc:  "Show this help",
	},
})

type config struct {
	addr      string
	verbosity int
	options   map[string]any
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: helloserver [options]\n\n%s\n", parser.Summary())
}

// parseConfig returns the server config, or ok=false after writing help or
// errors to w. code is the exit status to use in that case.
func parseConfig(args []string, w io.Writer) (cfg config, code int, ok bool) {
	res := parser.Parse(args)
	if help, _ := res.Options["help"].(bool); help {
		usage(w)
		return cfg, 0, false
	}
	if len(res.Errors) > 0 || len(res.Args) > 0 {
		for _, msg := range res.Errors {
			fmt.Fprintln(w, msg)
		}
		if len(res.Args) > 0 {
			fmt.Fprintf(w, "unexpected arguments: %q\n", res.Args)
		}
		usage(w)
		return cfg, 2, false
	}
	port := res.Options["port"].(uint16)
	host := res.Options["hostname"].(string)
	return config{
		addr:      net.JoinHostPort(host, strconv.Itoa(int(port))),
		verbosity: res.Options["verbose"].(int),
		options:   res.Options,
	}, 0, true
}

func newHandler(cfg config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cfg.verbosity > 0 {
			log.Printf("%s %s", r.Method, r.URL.Path)
		}
		if cfg.verbosity > 1 {
			log.Printf("headers: %v", r.Header)
		}
		if r.URL.Path == "/options" {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(cfg.options); err != nil {
				log.Printf("failed to encode options: %v", err)
			}
			return
		}
		fmt.Fprintln(w, "Hello, world!")
	})
}

func main() {
	cfg, code, ok := parseConfig(os.Args[1:], os.Stderr)
	if !ok {
		os.Exit(code)
	}
	log.Printf("listening on %s", cfg.addr)
	if err := http.ListenAndServe(cfg.addr, newHandler(cfg)); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
