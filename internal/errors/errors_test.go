package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

var errSample = New("sample failure")

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(errSample, ExitUser),
			want: "sample failure",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(Wrap(errSample, "loading source"), ExitUser),
			want: "loading source: sample failure",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
		{
			name: "usage error",
			err:  NewUsageError(),
			want: "usage requested",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(errSample, ExitUser),
			wantTarget: errSample,
			wantIs:     true,
		},
		{
			name:       "unwrap through wrapped error",
			err:        NewExitError(fmt.Errorf("parsing: %w", errSample), ExitUser),
			wantTarget: errSample,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(errSample, ExitUser),
			wantTarget: ErrUsage,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: errSample,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestNewConstructors(t *testing.T) {
	t.Run("NewUserError", func(t *testing.T) {
		e := NewUserError(errSample, "check input")
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion != "check input" {
			t.Errorf("Suggestion = %q, want 'check input'", e.Suggestion)
		}
	})

	t.Run("NewSystemError", func(t *testing.T) {
		e := NewSystemError(errSample, "check output")
		if e.Code != ExitSystem {
			t.Errorf("Code = %d, want %d", e.Code, ExitSystem)
		}
	})

	t.Run("NewUsageError", func(t *testing.T) {
		e := NewUsageError()
		if e.Code != ExitUsage {
			t.Errorf("Code = %d, want %d", e.Code, ExitUsage)
		}
		if !Is(e, ErrUsage) {
			t.Error("usage error should match ErrUsage")
		}
	})
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", stderrors.New("boom"), ExitUser},
		{"system", NewSystemError(errSample, ""), ExitSystem},
		{"wrapped usage", Wrap(NewUsageError(), "executing"), ExitUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %d, want %d", got, tt.want)
			}
		})
	}
}
