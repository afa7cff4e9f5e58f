package testutil

import (
	"errors"
	"fmt"
	"testing"
)

// Note: Testing t.Errorf/t.Fatalf calls requires a mock testing.T
// implementation which adds complexity. These helpers are best validated
// through the packages where they're actually used.

func TestAssertNoError(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
}

func TestAssertError(t *testing.T) {
	t.Parallel()

	AssertError(t, errors.New("test error"))
}

func TestAssertErrorIs(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	AssertErrorIs(t, sentinel, sentinel)
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", sentinel), sentinel)
}

func TestAssertInDelta(t *testing.T) {
	t.Parallel()

	AssertInDelta(t, 1.0, 1.0, 0)
	AssertInDelta(t, 1.0005, 1.0, 0.001)
	AssertInDelta(t, -2.5, -2.4, 0.2)
}
