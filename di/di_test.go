package di

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

type widget struct{ name string }

type gadget struct{ closed bool }

func (g *gadget) Close() error {
	g.closed = true
	return nil
}

func TestContainer_RegisterSingleton_Resolve(t *testing.T) {
	c := NewContainer()
	w := &widget{name: "one"}
	if err := c.RegisterSingleton("w", w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := c.Resolve("w")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != w {
		t.Error("expected the registered instance back")
	}
}

func TestContainer_Resolve_NotRegistered(t *testing.T) {
	c := NewContainer()
	if _, err := c.Resolve("missing"); err == nil {
		t.Error("expected error for unregistered key")
	}
}

func TestContainer_Register_LazyConstructedOnce(t *testing.T) {
	c := NewContainer()
	var calls int32
	err := c.Register("w", func() *widget {
		atomic.AddInt32(&calls, 1)
		return &widget{name: "lazy"}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := c.Resolve("w")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Resolve("w")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the same instance on repeated resolves")
	}
	if calls != 1 {
		t.Errorf("expected constructor to run once, ran %d times", calls)
	}
}

func TestContainer_Register_ConstructorErrorRetried(t *testing.T) {
	c := NewContainer()
	var calls int32
	err := c.Register("w", func() (*widget, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return nil, fmt.Errorf("not ready")
		}
		return &widget{}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.Resolve("w"); err == nil {
		t.Fatal("expected first resolve to fail")
	}
	if _, err := c.Resolve("w"); err != nil {
		t.Fatalf("expected second resolve to succeed, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 constructor calls, got %d", calls)
	}
}

func TestContainer_Register_RejectsBadConstructors(t *testing.T) {
	c := NewContainer()
	if err := c.Register("a", 42); err == nil {
		t.Error("non-function constructor should be rejected")
	}
	if err := c.Register("b", func(x int) *widget { return nil }); err == nil {
		t.Error("constructor with arguments should be rejected")
	}
	if err := c.Register("c", func() (*widget, *widget) { return nil, nil }); err == nil {
		t.Error("constructor with non-error second result should be rejected")
	}
}

func TestContainer_DuplicateKeyRejected(t *testing.T) {
	c := NewContainer()
	if err := c.RegisterSingleton("w", &widget{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.RegisterSingleton("w", &widget{}); err == nil {
		t.Error("duplicate key should be rejected")
	}
}

func TestContainer_KeysForType(t *testing.T) {
	c := NewContainer()
	if err := c.RegisterSingleton("w1", &widget{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.RegisterSingleton("w2", &widget{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Register("g", func() *gadget { return &gadget{} }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	keys := c.KeysForType("*di.widget")
	if len(keys) != 2 || keys[0] != "w1" || keys[1] != "w2" {
		t.Errorf("expected sorted [w1 w2], got %v", keys)
	}

	// Lazy registration found via constructor signature, not constructed.
	keys = c.KeysForType("*di.gadget")
	if len(keys) != 1 || keys[0] != "g" {
		t.Errorf("expected [g], got %v", keys)
	}
	for _, info := range c.Registrations() {
		if info.Key == "g" && info.Initialized {
			t.Error("type inspection must not construct lazy components")
		}
	}

	if keys := c.KeysForType("*di.unknown"); len(keys) != 0 {
		t.Errorf("expected no keys, got %v", keys)
	}
}

func TestContainer_ConcurrentResolve_SingleConstruction(t *testing.T) {
	c := NewContainer()
	var calls int32
	if err := c.Register("w", func() *widget {
		atomic.AddInt32(&calls, 1)
		return &widget{}
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const goroutines = 32
	instances := make([]any, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inst, err := c.Resolve("w")
			if err != nil {
				t.Errorf("resolve failed: %v", err)
				return
			}
			instances[i] = inst
		}(i)
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("expected a single construction, got %d", calls)
	}
	for i := 1; i < goroutines; i++ {
		if instances[i] != instances[0] {
			t.Fatal("all resolvers must observe the same instance")
		}
	}
}

func TestContainer_Close_ClosesInitialized(t *testing.T) {
	c := NewContainer()
	g := &gadget{}
	if err := c.RegisterSingleton("g", g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.closed {
		t.Error("expected gadget to be closed")
	}
}

func TestResolve_Typed(t *testing.T) {
	c := NewContainer()
	if err := c.RegisterSingleton("w", &widget{name: "typed"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, err := Resolve[*widget](c, "w")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.name != "typed" {
		t.Errorf("expected typed widget, got %+v", w)
	}

	if _, err := Resolve[*gadget](c, "w"); err == nil {
		t.Error("expected type mismatch error")
	}

	if _, ok := TryResolve[*gadget](c, "w"); ok {
		t.Error("TryResolve should report false on type mismatch")
	}
	if got, ok := TryResolve[*widget](c, "w"); !ok || got != w {
		t.Error("TryResolve should return the instance")
	}
}
