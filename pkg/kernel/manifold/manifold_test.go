package manifold

import (
	"errors"
	"testing"
)

func TestNewUnavailable(t *testing.T) {
	k, err := New()
	if err == nil {
		t.Fatal("expected error from New without a compiled binding")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if k != nil {
		t.Errorf("expected nil kernel, got %v", k)
	}
}
