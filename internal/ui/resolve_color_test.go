// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package ui

import (
	"os"
	"testing"
)

func TestResolveColorMode(t *testing.T) {
	for _, key := range []string{"NO_COLOR", "CLICOLOR_FORCE", "CLICOLOR"} {
		old, ok := os.LookupEnv(key)
		if ok {
			defer os.Setenv(key, old)
		} else {
			defer os.Unsetenv(key)
		}
		os.Unsetenv(key)
	}

	tests := []struct {
		name         string
		colorFlag    bool
		colorFlagSet bool
		setenv       map[string]string
		stderrIsTTY  bool
		wantNoColor  bool
	}{
		{
			name:         "--no-color flag wins over everything",
			colorFlag:    false,
			colorFlagSet: true,
			setenv:       map[string]string{"CLICOLOR_FORCE": "1"},
			stderrIsTTY:  true,
			wantNoColor:  true,
		},
		{
			name:         "--color flag forces color off a TTY",
			colorFlag:    true,
			colorFlagSet: true,
			stderrIsTTY:  false,
			wantNoColor:  false,
		},
		{
			name:        "NO_COLOR set disables color regardless of TTY",
			setenv:      map[string]string{"NO_COLOR": "1"},
			stderrIsTTY: true,
			wantNoColor: true,
		},
		{
			name:        "CLICOLOR_FORCE set forces color off a TTY",
			setenv:      map[string]string{"CLICOLOR_FORCE": "1"},
			stderrIsTTY: false,
			wantNoColor: false,
		},
		{
			name:        "CLICOLOR=0 disables color",
			setenv:      map[string]string{"CLICOLOR": "0"},
			stderrIsTTY: true,
			wantNoColor: true,
		},
		{
			name:        "no flags, no env: TTY enables color",
			stderrIsTTY: true,
			wantNoColor: false,
		},
		{
			name:        "no flags, no env: non-TTY disables color",
			stderrIsTTY: false,
			wantNoColor: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"NO_COLOR", "CLICOLOR_FORCE", "CLICOLOR"} {
				os.Unsetenv(key)
			}
			for k, v := range tt.setenv {
				os.Setenv(k, v)
			}
			t.Cleanup(func() {
				for _, key := range []string{"NO_COLOR", "CLICOLOR_FORCE", "CLICOLOR"} {
					os.Unsetenv(key)
				}
			})

			got := ResolveColorMode(tt.colorFlag, tt.colorFlagSet, tt.stderrIsTTY)
			if got != tt.wantNoColor {
				t.Errorf("ResolveColorMode() = %v, want %v", got, tt.wantNoColor)
			}
		})
	}
}
