// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes and severity.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2025-10-12 v0.2.0: Script codes, errors.As reachability

package error

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type offsetError struct{ offset int }

func (e *offsetError) Error() string { return "bad char" }

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			message:  "wrapper message",
			wantMsg:  "wrapper message: original error",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap coded error keeps code",
			err:      New("unexpected token").WithCode(CodeGrammar),
			message:  "parse failed",
			wantMsg:  "parse failed: unexpected token",
			wantCode: CodeGrammar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got.Code(), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("errors.Is() should find the wrapped error")
			}
		})
	}
}

func TestWrapKeepsTypedCauseReachable(t *testing.T) {
	cause := &offsetError{offset: 7}
	err := Wrap(cause, "tokenize").WithCode(CodeLexical).WithParseID("ab12cd34")

	var target *offsetError
	if !errors.As(err, &target) {
		t.Fatal("errors.As() should reach the typed cause")
	}
	if target.offset != 7 {
		t.Errorf("offset = %d, want 7", target.offset)
	}
	if err.RootCause() != cause {
		t.Errorf("RootCause() = %v, want %v", err.RootCause(), cause)
	}

	outer := Wrap(err, "check main.fg")
	if outer.ParseID() != "ab12cd34" {
		t.Errorf("ParseID() = %q, want carried over", outer.ParseID())
	}
}

func TestWithCodeSetsSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeGrammar, SeverityLow},
		{CodeLexical, SeverityLow},
		{CodeCache, SeverityHigh},
		{CodeInternal, SeverityCritical},
		{CodeIO, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}

	explicit := New("x").WithSeverity(SeverityHigh).WithCode(CodeGrammar)
	if explicit.Severity() != SeverityHigh {
		t.Errorf("explicit severity overridden: %v", explicit.Severity())
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	err := Wrap(New("inner").WithCode(CodeInputTooLarge), "outer")

	if !HasCode(err, CodeInputTooLarge) {
		t.Error("HasCode() should be true")
	}
	if HasCode(errors.New("plain"), CodeInputTooLarge) {
		t.Error("HasCode() on plain error should be false")
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode() on plain error should be CodeUnknown")
	}
	if GetSeverity(errors.New("plain")) != SeverityMedium {
		t.Error("GetSeverity() on plain error should be SeverityMedium")
	}
}

func TestCodeClassification(t *testing.T) {
	if !CodeGrammar.IsSourceError() || CodeIO.IsSourceError() {
		t.Error("IsSourceError() classification wrong")
	}
	if CodeLexical.Category() != "script" {
		t.Errorf("Category() = %q, want script", CodeLexical.Category())
	}
	if Code("NOPE").IsValid() {
		t.Error("IsValid() should reject unknown codes")
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("boom"), "parse failed").
		WithCode(CodeGrammar).
		WithOperation("script.Parse").
		WithSource("main.fg").
		WithDetail("offset", 3)

	data, mErr := json.Marshal(err)
	if mErr != nil {
		t.Fatalf("MarshalJSON() error = %v", mErr)
	}

	var decoded map[string]interface{}
	if uErr := json.Unmarshal(data, &decoded); uErr != nil {
		t.Fatalf("unmarshal error = %v", uErr)
	}

	want := map[string]interface{}{
		"message":   "parse failed",
		"code":      "SCRIPT_GRAMMAR",
		"severity":  "low",
		"operation": "script.Parse",
		"source":    "main.fg",
		"cause":     "boom",
	}
	for k, v := range want {
		if decoded[k] != v {
			t.Errorf("%s = %v, want %v", k, decoded[k], v)
		}
	}
}

func TestString(t *testing.T) {
	s := New("bad").WithCode(CodeGrammar).WithDetail("b", 2).WithDetail("a", 1).String()
	if !strings.Contains(s, "Details: {a=1, b=2}") {
		t.Errorf("String() details not sorted: %s", s)
	}
}
