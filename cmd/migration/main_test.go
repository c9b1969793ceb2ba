package main

import (
	"errors"
	"testing"

	"github.com/riskibarqy/quiniela/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default one step", want: 1},
		{name: "explicit", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "not a number", args: []string{"many"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSteps(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSteps(%v) err=%v wantErr=%v", tt.args, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("parseSteps(%v)=%d want=%d", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("2"); err != nil || v != 2 {
		t.Fatalf("parseVersion: v=%d err=%v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected negative version error")
	}
	if v, err := parseTarget("3"); err != nil || v != 3 {
		t.Fatalf("parseTarget: v=%d err=%v", v, err)
	}
	if _, err := parseTarget("-3"); err == nil {
		t.Fatalf("expected invalid target error")
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("MIGRATION_FLAG", "")
	if !envBool("MIGRATION_FLAG", true) {
		t.Fatalf("expected fallback for empty value")
	}
	t.Setenv("MIGRATION_FLAG", "off")
	if envBool("MIGRATION_FLAG", true) {
		t.Fatalf("expected off to be false")
	}
	t.Setenv("MIGRATION_FLAG", "YES")
	if !envBool("MIGRATION_FLAG", false) {
		t.Fatalf("expected YES to be true")
	}
}

func TestRun_ArgumentErrors(t *testing.T) {
	if err := run(nil, logging.NewNop()); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}

	t.Setenv("DB_URL", "")
	if err := run([]string{"up"}, logging.NewNop()); err == nil {
		t.Fatalf("expected error without DB_URL")
	}
}
