package main

import (
	"errors"
	"testing"
)

func TestParseExportArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantOutput string
		wantConfig string
	}{
		{"default output", []string{"tables/demo.yaml"}, "tables/demo.glb", ""},
		{"explicit output", []string{"-o", "out.glb", "demo.yaml"}, "out.glb", ""},
		{"config flag", []string{"-config", "vpxglb.toml", "-group-by", "none", "demo.yml"}, "demo.glb", "vpxglb.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExportArgs(tt.args)
			if err != nil {
				t.Fatalf("parseExportArgs() error = %v", err)
			}
			if got.output != tt.wantOutput {
				t.Errorf("output = %q, want %q", got.output, tt.wantOutput)
			}
			if got.flags.ConfigPath != tt.wantConfig {
				t.Errorf("ConfigPath = %q, want %q", got.flags.ConfigPath, tt.wantConfig)
			}
		})
	}
}

func TestParseExportArgsErrors(t *testing.T) {
	if _, err := parseExportArgs(nil); !errors.Is(err, errNoInput) {
		t.Errorf("no input: error = %v, want errNoInput", err)
	}
	if _, err := parseExportArgs([]string{"-no-such-flag", "demo.yaml"}); err == nil {
		t.Error("unknown flag: expected an error")
	}
	if _, err := parseExportArgs([]string{"-workers", "many", "demo.yaml"}); err == nil {
		t.Error("bad flag value: expected an error")
	}
}
