package utils

import (
	"context"
	"testing"
	"time"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "generated posting",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "short",
			limit:  10,
			expect: "short",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "generated posting text",
			limit:  9,
			expect: "generated...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
		{
			name:   "counts runes not bytes",
			input:  "₹18–35 LPA",
			limit:  6,
			expect: "₹18–35...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestWaitForCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Minute); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWaitForZeroDuration(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, 0); err != nil {
		t.Fatalf("zero duration must not block or fail: %v", err)
	}
}
