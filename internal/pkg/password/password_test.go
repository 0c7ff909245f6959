package password

import (
	"testing"
)

func TestGenerateLength(t *testing.T) {
	for _, length := range []int{1, 8, 10, 32} {
		got, err := Generate(length)
		if err != nil {
			t.Fatalf("Generate(%d) returned error: %v", length, err)
		}
		if len(got) != length {
			t.Errorf("Generate(%d) returned %d characters", length, len(got))
		}
	}
}

func TestGenerateDefaultsOnInvalidLength(t *testing.T) {
	got, err := Generate(0)
	if err != nil {
		t.Fatalf("Generate(0) returned error: %v", err)
	}
	if len(got) != DefaultLength {
		t.Errorf("Generate(0) returned %d characters, want %d", len(got), DefaultLength)
	}
}

func TestGenerateIsRandom(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		got, err := Generate(10)
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if seen[got] {
			t.Fatalf("Generate produced duplicate password %q", got)
		}
		seen[got] = true
	}
}
