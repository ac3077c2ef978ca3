package resolver

import (
	"strings"

	"github.com/zot/rdflua/internal/rdf"
)

// HTTPFetchFunc performs the actual synchronous network fetch for an
// http(s):// specifier. The core does not implement this (spec.md §1
// Non-goals); an embedder supplies one.
type HTTPFetchFunc func(url string) (source string, err error)

// HTTPResolver adapts an embedder-supplied HTTPFetchFunc to Resolver.
type HTTPResolver struct {
	Fetch HTTPFetchFunc
}

func (h *HTTPResolver) Resolve(spec, base string) (string, string, error) {
	if h.Fetch == nil {
		return "", "", rdf.NewError(rdf.ModuleLoadError, "require(%q): no fetch function configured", spec)
	}
	src, err := h.Fetch(spec)
	if err != nil {
		return "", "", rdf.NewError(rdf.ModuleLoadError, "require(%q): %v", spec, err)
	}
	return src, spec, nil
}

// MediaWikiFetchFunc performs the actual MediaWiki API call for
// (host, module). The core does not implement this (spec.md §1
// Non-goals); an embedder supplies one.
type MediaWikiFetchFunc func(host, module string) (source string, err error)

// MediaWikiResolver adapts an embedder-supplied MediaWikiFetchFunc to
// Resolver, handling both absolute (mediawiki://host/Module:Name) and
// base-relative (Module:Name) specifiers.
type MediaWikiResolver struct {
	Fetch MediaWikiFetchFunc
}

func (m *MediaWikiResolver) Resolve(spec, base string) (string, string, error) {
	host, module, err := parseMediaWikiSpec(spec, base)
	if err != nil {
		return "", "", err
	}
	if m.Fetch == nil {
		return "", "", rdf.NewError(rdf.ModuleLoadError, "require(%q): no mediawiki fetch function configured", spec)
	}
	src, err := m.Fetch(host, module)
	if err != nil {
		return "", "", rdf.NewError(rdf.ModuleLoadError, "require(%q): %v", spec, err)
	}
	return src, "mediawiki://" + host, nil
}

func parseMediaWikiSpec(spec, base string) (host, module string, err error) {
	if strings.HasPrefix(spec, "mediawiki://") {
		rest := strings.TrimPrefix(spec, "mediawiki://")
		i := strings.Index(rest, "/")
		if i < 0 {
			return "", "", rdf.NewError(rdf.ModuleLoadError, "require(%q): missing module path", spec)
		}
		return rest[:i], rest[i+1:], nil
	}
	// Relative specifier: resolve host against the require stack's
	// current base, which is itself always a "mediawiki://HOST" string.
	if !strings.HasPrefix(base, "mediawiki://") {
		return "", "", rdf.NewError(rdf.ModuleLoadError, "require(%q): relative outside a mediawiki base", spec)
	}
	return strings.TrimPrefix(base, "mediawiki://"), spec, nil
}
