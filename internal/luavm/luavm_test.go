package luavm

import (
	"strings"
	"testing"

	"github.com/zot/rdflua/internal/ffi"
	"github.com/zot/rdflua/internal/resolver"
	"github.com/zot/rdflua/internal/store"
)

func newTestVM(t *testing.T) (*VM, func()) {
	t.Helper()
	reg := ffi.NewRegistry()
	h := reg.Acquire(store.NewMemoryStore())
	vm := New(reg, h, resolver.NewRegistry())
	return vm, func() {
		vm.Close()
		reg.Release(h)
	}
}

func TestInsertThenQueryCount(t *testing.T) {
	vm, done := newTestVM(t)
	defer done()

	result, err := vm.Exec(`
		State.insert('user:alice','name','Alice')
		State.insert('user:alice','age',30)
		local r = State.query({subject='user:alice'})
		return #r
	`)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if result != float64(2) {
		t.Errorf("result = %#v, want 2", result)
	}
}

func TestDeleteAllBySP(t *testing.T) {
	vm, done := newTestVM(t)
	defer done()

	result, err := vm.Exec(`
		State.insert('x','tag','a'); State.insert('x','tag','b')
		State.delete('x','tag')
		return #State.query({subject='x'})
	`)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if result != float64(0) {
		t.Errorf("result = %#v, want 0", result)
	}
}

func TestNamedNodeRoundTrip(t *testing.T) {
	vm, done := newTestVM(t)
	defer done()

	result, err := vm.Exec(`
		State.insert('post:1','author','resource://user:alice')
		local r = State.query({predicate='author'})
		return r[1].object
	`)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if result != "resource://user:alice" {
		t.Errorf("result = %#v, want resource://user:alice", result)
	}
}

func TestTypedLiteralDecoding(t *testing.T) {
	vm, done := newTestVM(t)
	defer done()

	result, err := vm.Exec(`
		State.insert('k','v',1949)
		return State.query({subject='k'})[1].object
	`)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if result != float64(1949) {
		t.Errorf("result = %#v, want number 1949", result)
	}
}

func TestModuleLoadingInMemory(t *testing.T) {
	reg := ffi.NewRegistry()
	h := reg.Acquire(store.NewMemoryStore())
	resolvers := resolver.NewRegistry()
	resolvers.File.Register("Mod", "return { greet = function(n) return 'hi '..n end }")
	vm := New(reg, h, resolvers)
	defer func() { vm.Close(); reg.Release(h) }()

	result, err := vm.Exec(`return require('file://Mod').greet('x')`)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if result != "hi x" {
		t.Errorf("result = %#v, want 'hi x'", result)
	}
}

func TestUninitializedStoreProducesError(t *testing.T) {
	reg := ffi.NewRegistry()
	vm := New(reg, "", resolver.NewRegistry())
	defer vm.Close()

	_, err := vm.Exec(`State.insert('a','b','c')`)
	if err == nil {
		t.Fatal("expected an error for uninitialized store")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("error = %v, want mention of 'not initialized'", err)
	}
}

func TestOutputCaptureOrderedWithState(t *testing.T) {
	vm, done := newTestVM(t)
	defer done()

	_, err := vm.Exec(`
		print('before')
		State.insert('a','b','c')
		print('after')
	`)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	out := vm.CapturedOutput()
	if out != "before\nafter\n" {
		t.Errorf("output = %q, want %q", out, "before\nafter\n")
	}
}

func TestReturningFunctionYieldsPlaceholder(t *testing.T) {
	vm, done := newTestVM(t)
	defer done()

	result, err := vm.Exec(`return function() end`)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	s, ok := result.(string)
	if !ok || !strings.HasPrefix(s, "function:") {
		t.Errorf("result = %#v, want a function placeholder string", result)
	}
}

func TestBadArgumentOnNonJSONEncodableObject(t *testing.T) {
	vm, done := newTestVM(t)
	defer done()

	_, err := vm.Exec(`State.insert('a','b', function() end)`)
	if err == nil {
		t.Fatal("expected error for non-JSON-encodable object")
	}
}
