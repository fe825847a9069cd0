package store

import (
	"testing"
	"time"
)

func TestKeyMutexExcludesSameKey(t *testing.T) {
	km := newKeyMutex()
	km.Lock("a")

	acquired := make(chan struct{})
	go func() {
		km.Lock("a")
		close(acquired)
		km.Unlock("a")
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock on the same key acquired while held")
	case <-time.After(50 * time.Millisecond):
	}

	km.Unlock("a")

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second Lock never acquired after Unlock")
	}
}

func TestKeyMutexIndependentKeys(t *testing.T) {
	km := newKeyMutex()
	km.Lock("a")
	defer km.Unlock("a")

	acquired := make(chan struct{})
	go func() {
		km.Lock("b")
		close(acquired)
		km.Unlock("b")
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("Lock on an independent key blocked")
	}
}

func TestKeyMutexReleasesEntries(t *testing.T) {
	km := newKeyMutex()
	km.Lock("a")
	km.Unlock("a")

	km.mu.Lock()
	defer km.mu.Unlock()
	if len(km.locks) != 0 {
		t.Fatalf("expected empty lock table, got %d entries", len(km.locks))
	}
}
