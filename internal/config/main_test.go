// SPDX-License-Identifier: MIT

package config

import (
	"io"
	"os"
	"strings"
	"testing"

	xlog "github.com/ishanbagchi/sitecfg/internal/log"
)

func TestMain(m *testing.M) {
	// Unset logging vars so the package logger is deterministic.
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "LOG_") {
			kv := strings.SplitN(e, "=", 2)
			if err := os.Unsetenv(kv[0]); err != nil {
				panic("failed to unset env: " + err.Error())
			}
		}
	}
	xlog.Configure(xlog.Config{Level: "disabled", Output: io.Discard})

	os.Exit(m.Run())
}
