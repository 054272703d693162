package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeValidation, "invalid sense: %s", "sideways")

	if err.ErrCode != ErrCodeValidation {
		t.Errorf("ErrCode = %q, want %q", err.ErrCode, ErrCodeValidation)
	}
	if err.Message != "invalid sense: sideways" {
		t.Errorf("Message = %q", err.Message)
	}
	want := "VALIDATION_ERROR: invalid sense: sideways"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := Wrap(ErrCodeIO, cause, "write %s", "/tmp/out.lp")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause with errors.Is")
	}
	if got := err.Error(); got != "IO_ERROR: write /tmp/out.lp: permission denied" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeNotFound, "missing"), ErrCodeNotFound, true},
		{"different code", New(ErrCodeNotFound, "missing"), ErrCodeParse, false},
		{"wrapped with fmt", fmt.Errorf("context: %w", New(ErrCodeState, "must parse first")), ErrCodeState, true},
		{"plain error", stderrors.New("boring"), ErrCodeNotFound, false},
		{"nil", nil, ErrCodeNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeParse, "bad token")); got != ErrCodeParse {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeParse)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeIO, "disk full")); got != "disk full" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("raw")); got != "raw" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{New(ErrCodeNotFound, "x"), 2},
		{New(ErrCodeParse, "x"), 3},
		{New(ErrCodeState, "x"), 4},
		{New(ErrCodeValidation, "x"), 5},
		{New(ErrCodeIO, "x"), 6},
		{stderrors.New("unknown"), 1},
	}

	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
