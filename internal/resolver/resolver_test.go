package resolver

import "testing"

func TestFileRegistryRoundTrip(t *testing.T) {
	reg := NewRegistry()
	reg.File.Register("Mod", "return { greet = function(n) return 'hi '..n end }")

	src, base, err := reg.Resolve("file://Mod", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != "file://Mod" {
		t.Errorf("base = %q, want file://Mod", base)
	}
	if src == "" {
		t.Error("expected non-empty source")
	}
}

func TestUnregisteredFileModuleFails(t *testing.T) {
	reg := NewRegistry()
	if _, _, err := reg.Resolve("file://Missing", ""); err == nil {
		t.Fatal("expected error for unregistered module")
	}
}

func TestResourceSchemeRejected(t *testing.T) {
	reg := NewRegistry()
	if _, _, err := reg.Resolve("resource://x", ""); err == nil {
		t.Fatal("expected resource:// to be rejected for require")
	}
}

func TestUnsupportedSchemeRejected(t *testing.T) {
	reg := NewRegistry()
	if _, _, err := reg.Resolve("ftp://x", ""); err == nil {
		t.Fatal("expected unsupported scheme to be rejected")
	}
}

func TestRelativeWithNoBaseFails(t *testing.T) {
	reg := NewRegistry()
	if _, _, err := reg.Resolve("Module:Foo", ""); err == nil {
		t.Fatal("expected relative specifier with empty base to fail")
	}
}

func TestMediaWikiRelativeResolvesAgainstBase(t *testing.T) {
	reg := NewRegistry()
	reg.MediaWiki = &MediaWikiResolver{
		Fetch: func(host, module string) (string, error) {
			return "-- " + host + " " + module, nil
		},
	}
	src, newBase, err := reg.Resolve("Module:Bar", "mediawiki://wiki.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newBase != "mediawiki://wiki.example" {
		t.Errorf("newBase = %q, want mediawiki://wiki.example", newBase)
	}
	if src != "-- wiki.example Module:Bar" {
		t.Errorf("src = %q", src)
	}
}

func TestCachingResolverMemoizes(t *testing.T) {
	calls := 0
	inner := &HTTPResolver{Fetch: func(url string) (string, error) {
		calls++
		return "source", nil
	}}
	c := NewCachingResolver(inner)
	c.Resolve("https://example.com/mod.lua", "")
	c.Resolve("https://example.com/mod.lua", "")
	if calls != 1 {
		t.Errorf("expected 1 underlying fetch, got %d", calls)
	}
	c.Clear()
	c.Resolve("https://example.com/mod.lua", "")
	if calls != 2 {
		t.Errorf("expected fetch after Clear, got %d calls", calls)
	}
}
