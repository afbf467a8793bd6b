// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package env

import (
	"strings"
	"testing"
	"time"
)

func TestWrite(t *testing.T) {
	opts := map[string]any{
		"port":      uint16(8080),
		"host-name": "localhost",
		"verbose":   2,
		"tags":      []any{"a", "b c"},
		"timeout":   90 * time.Second,
		"message":   "it's here",
		"empty":     "",
		"missing":   nil,
	}
	var b strings.Builder
	if err := Write(&b, "APP_", opts); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := strings.Join([]string{
		"APP_EMPTY=''",
		"APP_HOST_NAME=localhost",
		`APP_MESSAGE='it'\''s here'`,
		"APP_PORT=8080",
		"APP_TAGS='a b c'",
		"APP_TIMEOUT=1m30s",
		"APP_VERBOSE=2",
	}, "\n") + "\n"
	if got := b.String(); got != want {
		t.Errorf("Write output:\n%s\nwant:\n%s", got, want)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		prefix, id, want string
	}{
		{"", "port", "PORT"},
		{"X_", "dry-run", "X_DRY_RUN"},
		{"", "log.level", "LOG_LEVEL"},
	}
	for _, tt := range tests {
		if got := Key(tt.prefix, tt.id); got != tt.want {
			t.Errorf("Key(%q, %q) = %q, want %q", tt.prefix, tt.id, got, tt.want)
		}
	}
}
