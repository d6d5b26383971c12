package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Are verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrInvalidFEN", ErrInvalidFEN, ErrInvalidFEN},
		{"ErrIllegalMove", ErrIllegalMove, ErrIllegalMove},
		{"ErrInvalidMoveString", ErrInvalidMoveString, ErrInvalidMoveString},
		{"ErrUnknownVariant", ErrUnknownVariant, ErrUnknownVariant},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
		{"ErrInvalidBook", ErrInvalidBook, ErrInvalidBook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

// TestSentinelErrors_Distinct verifies no two sentinels match each other
func TestSentinelErrors_Distinct(t *testing.T) {
	all := []error{ErrInvalidFEN, ErrIllegalMove, ErrInvalidMoveString,
		ErrUnknownVariant, ErrInvalidConfig, ErrInvalidBook}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}

// TestPositionError_Error verifies the error message format
func TestPositionError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *PositionError
		contains []string
	}{
		{
			name: "full context",
			err: &PositionError{
				Err:      ErrIllegalMove,
				Variant:  "crazyhouse",
				FEN:      "8/8/8/8/8/8/8/K6k[Q] w - - 0 1",
				Ply:      12,
				MoveText: "Q@e5",
			},
			contains: []string{"crazyhouse", "ply 12", "Q@e5", "K6k[Q]", "illegal move"},
		},
		{
			name: "minimal context",
			err: &PositionError{
				Err: ErrInvalidFEN,
			},
			contains: []string{"invalid FEN string"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("PositionError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestPositionError_As verifies that errors.As works with PositionError
func TestPositionError_As(t *testing.T) {
	posErr := &PositionError{
		Err:      ErrIllegalMove,
		Variant:  "standard",
		Ply:      24,
		MoveText: "O-O-O",
	}

	wrapped := fmt.Errorf("replay failed: %w", posErr)

	var extracted *PositionError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("errors.As() could not extract PositionError")
	}
	if extracted.Ply != 24 {
		t.Errorf("extracted.Ply = %d, want 24", extracted.Ply)
	}
	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("errors.Is(wrapped, ErrIllegalMove) = false, want true")
	}
}

// TestParseError_Error verifies ParseError formatting
func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "field with expected and got",
			err:  &ParseError{Err: ErrInvalidFEN, Field: "side to move", Expected: "w or b", Got: "x"},
			want: `side to move: expected w or b, got "x": invalid FEN string`,
		},
		{
			name: "offset",
			err:  &ParseError{Err: ErrInvalidBook, Field: "record", Offset: 3},
			want: "record at 3: invalid opening book",
		},
		{
			name: "bare",
			err:  &ParseError{},
			want: "parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestFieldError verifies FieldError keeps the sentinel
func TestFieldError(t *testing.T) {
	err := FieldError(ErrInvalidFEN, "castling", "castling rights", "Z")
	if !errors.Is(err, ErrInvalidFEN) {
		t.Error("errors.Is(err, ErrInvalidFEN) = false, want true")
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Field != "castling" {
		t.Errorf("errors.As() = %v, want ParseError for castling", err)
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrInvalidFEN, "parsing FEN string")

	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrap should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "parsing FEN string") {
		t.Errorf("Wrap should include context, got %q", wrapped.Error())
	}
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIllegalMove, "move %d in %s", 15, "atomic")

	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "move 15 in atomic") {
		t.Errorf("Wrapf should include formatted context, got %q", wrapped.Error())
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
