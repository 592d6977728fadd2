package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/garyellow/strcheck/internal/analyzer"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  []string
	}{
		{
			name:     "all default alphabets",
			args:     []string{"-cases", "50", "-max-len", "16"},
			wantCode: 0,
			wantOut:  []string{"✅ ascii: 50 cases", "✅ unicode: 50 cases", "4 passed, 0 failed"},
		},
		{
			name:     "selected alphabets",
			args:     []string{"-cases", "20", "-alphabets", "lower, latin1"},
			wantCode: 0,
			wantOut:  []string{"✅ lower: 20 cases", "✅ latin1: 20 cases", "2 passed, 0 failed"},
		},
		{
			name:     "unknown alphabet",
			args:     []string{"-alphabets", "klingon"},
			wantCode: 2,
		},
		{
			name:     "invalid case count",
			args:     []string{"-cases", "0"},
			wantCode: 2,
		},
		{
			name:     "bad flag",
			args:     []string{"-nope"},
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			if code != tt.wantCode {
				t.Fatalf("run(%q) = %d, want %d (stderr: %s)", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("run(%q) stdout missing %q:\n%s", tt.args, want, stdout.String())
				}
			}
		})
	}
}

func TestPrintReports_Disagreement(t *testing.T) {
	reports := []*analyzer.VerifyReport{
		{Alphabet: "ascii", Checked: 10},
		{
			Alphabet: "lower",
			Checked:  10,
			Disagreements: []analyzer.Disagreement{{
				Case: analyzer.VerifyCase{Operation: analyzer.OperationUnique, A: "abc"},
				Results: []analyzer.StrategyResult{
					{Strategy: "set", Result: true},
					{Strategy: "bits", Result: false},
				},
			}},
		},
	}

	var out bytes.Buffer
	if code := printReports(&out, reports); code != 1 {
		t.Errorf("printReports() = %d, want 1", code)
	}
	for _, want := range []string{"❌ lower: 1 of 10 cases disagree", `unique "abc" "": set=true bits=false`, "1 passed, 1 failed"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("printReports() output missing %q:\n%s", want, out.String())
		}
	}
}
