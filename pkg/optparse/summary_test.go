// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		name  string
		specs []Spec
		want  []string
	}{
		{
			name:  "empty",
			specs: nil,
			want:  nil,
		},
		{
			name:  "aligned columns",
			specs: testSpecs(),
			want: []string{
				"  -p, --port PORT  Port number      (default: 80)",
				"  -n, --count N    Count            (default: 1)",
				"  -v, --verbose    Verbosity level  (default: 0)",
				"  -h, --help",
			},
		},
		{
			name: "default description and missing short flag",
			specs: []Spec{
				{Long: "--hostname", Arg: "HOST", Desc: "Bind address", Default: "0.0.0.0", DefaultDesc: "all interfaces"},
				{Short: "-q", Long: "--quiet"},
			},
			want: []string{
				"      --hostname HOST  Bind address  (default: all interfaces)",
				"  -q, --quiet",
			},
		},
		{
			name: "no descriptions",
			specs: []Spec{
				{Short: "-a", Long: "--all", Default: false},
				{Long: "--color", Negatable: true},
			},
			want: []string{
				"  -a, --all                (default: false)",
				"      --color, --no-color",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summary(tt.specs)
			want := strings.Join(tt.want, "\n")
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Summary mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSummaryLongFlagsOnce(t *testing.T) {
	specs := []Spec{
		{Short: "-p", Long: "--port", Arg: "PORT", Desc: "Port number", Default: 80},
		{Long: "--no-cache", Desc: "Skip cache"},
		{Long: "--cache-dir", Arg: "DIR"},
		{Short: "-c", Long: "--color", Negatable: true},
	}
	got := Summary(specs)
	for _, s := range specs {
		if n := strings.Count(got, s.Long); n != 1 {
			t.Errorf("summary contains %q %d times, want 1:\n%s", s.Long, n, got)
		}
	}
	if n := strings.Count(got, "\n"); n != len(specs)-1 {
		t.Errorf("summary has %d lines, want %d", n+1, len(specs))
	}
}
