// Package cmd provides tests for shared command flags
package cmd

import (
	"testing"

	"github.com/hansbonini/cditools/pkg/cdi"
	"github.com/spf13/pflag"
)

func TestSelectionFromFlags(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		channel  uint8
		file     int
		hasError bool
	}{
		{"defaults", nil, 0, -1, false},
		{"channel only", []string{"-c", "3"}, 3, -1, false},
		{"channel and file", []string{"--channel", "1", "--file", "2"}, 1, 2, false},
		{"file out of range", []string{"-f", "300"}, 0, 0, true},
		{"negative file", []string{"-f", "-5"}, 0, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			addSelectionFlags(fs)
			if err := fs.Parse(tc.args); err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}

			channel, file, err := selectionFromFlags(fs)
			if tc.hasError {
				if err == nil {
					t.Error("selectionFromFlags() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("selectionFromFlags() failed: %v", err)
			}
			if channel != tc.channel {
				t.Errorf("channel = %d, want %d", channel, tc.channel)
			}
			if tc.file < 0 {
				if file != nil {
					t.Errorf("file = %d, want every file", *file)
				}
			} else if file == nil || int(*file) != tc.file {
				t.Errorf("file = %v, want %d", file, tc.file)
			}
		})
	}
}

func TestSectorTypeValue(t *testing.T) {
	var v sectorTypeValue
	if v.String() != "all" {
		t.Errorf("zero value String() = %q, want all", v.String())
	}

	empty := cdi.Open(make([]byte, cdi.SectorSize)).Sectors()[0]
	if !v.matches(empty) {
		t.Error("zero value should match every sector")
	}

	if err := v.Set("Audio"); err != nil {
		t.Fatalf("Set(Audio) failed: %v", err)
	}
	if v.String() != "audio" {
		t.Errorf("String() = %q, want audio", v.String())
	}
	if v.matches(empty) {
		t.Error("audio filter should not match an empty sector")
	}

	if err := v.Set("empty"); err != nil || !v.matches(empty) {
		t.Errorf("empty filter should match an empty sector (err %v)", err)
	}
	if err := v.Set("all"); err != nil || !v.matches(empty) {
		t.Errorf("all should reset the filter (err %v)", err)
	}
	if err := v.Set("subtitle"); err == nil {
		t.Error("Set(subtitle) should fail")
	}
}
