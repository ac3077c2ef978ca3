// Package resolver implements the host side of the require protocol
// (C6): scheme dispatch, the in-memory file:// registry, and the
// contract stubs for the out-of-scope http(s):// and mediawiki://
// fetchers.
package resolver

import (
	"strings"

	"github.com/zot/rdflua/internal/rdf"
)

// Resolver resolves a module specifier (optionally relative to base,
// for mediawiki:// nested requires) to source text and the base that
// should be pushed for specifiers loaded from within it.
type Resolver interface {
	Resolve(spec, base string) (source, newBase string, err error)
}

// Registry dispatches require() specifiers by URI scheme to the
// resolver registered for that scheme, in the shape of the teacher's
// wrapper-type registry (internal/lua/wrapper.go's
// RegisterWrapperType/GetGlobalWrapperFactory), generalised from a
// type-name key to a URI scheme key.
type Registry struct {
	File      *FileRegistry
	HTTP      Resolver // nil unless the embedder supplies one
	MediaWiki Resolver // nil unless the embedder supplies one
}

// NewRegistry constructs a Registry with a fresh FileRegistry and no
// http(s)/mediawiki resolvers configured (those require an embedder to
// supply the actual fetch mechanics; spec.md §1 places that out of
// scope for the core).
func NewRegistry() *Registry {
	return &Registry{File: NewFileRegistry()}
}

// Resolve dispatches spec by scheme. An empty scheme (a bare relative
// specifier such as "Module:Foo") is only accepted when base is
// non-empty, resolving against the mediawiki resolver.
func (r *Registry) Resolve(spec, base string) (string, string, error) {
	scheme, _, hasScheme := splitScheme(spec)
	if !hasScheme {
		if base == "" {
			return "", "", rdf.NewError(rdf.ModuleLoadError, "require(%q): relative specifier with no base", spec)
		}
		if r.MediaWiki == nil {
			return "", "", rdf.NewError(rdf.ModuleLoadError, "require(%q): no mediawiki resolver configured", spec)
		}
		return r.MediaWiki.Resolve(spec, base)
	}
	switch scheme {
	case "file":
		return r.File.Resolve(spec)
	case "http", "https":
		if r.HTTP == nil {
			return "", "", rdf.NewError(rdf.ModuleLoadError, "require(%q): no http resolver configured", spec)
		}
		return r.HTTP.Resolve(spec, base)
	case "mediawiki":
		if r.MediaWiki == nil {
			return "", "", rdf.NewError(rdf.ModuleLoadError, "require(%q): no mediawiki resolver configured", spec)
		}
		return r.MediaWiki.Resolve(spec, base)
	case "resource":
		return "", "", rdf.NewError(rdf.ModuleLoadError, "require(%q): resource:// is reserved and not valid for require", spec)
	default:
		return "", "", rdf.NewError(rdf.ModuleLoadError, "require(%q): unsupported scheme %q", spec, scheme)
	}
}

func splitScheme(spec string) (scheme, rest string, ok bool) {
	i := strings.Index(spec, "://")
	if i < 0 {
		return "", spec, false
	}
	return spec[:i], spec[i+3:], true
}
