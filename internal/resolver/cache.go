package resolver

import "sync"

// CachingResolver memoizes a wrapped Resolver's fetched source by
// specifier. Per spec.md §4.6, "the cache persists across invocations;
// the host MUST expose a cache-clear operation" — this wraps the
// http(s) and mediawiki resolvers (fetches are the expensive,
// worth-memoizing case; file:// already lives in a host-mutated
// registry and needs no separate fetch cache).
type CachingResolver struct {
	inner   Resolver
	mu      sync.RWMutex
	sources map[string]cached
}

type cached struct {
	source, base string
}

// NewCachingResolver wraps inner with a persistent fetch cache.
func NewCachingResolver(inner Resolver) *CachingResolver {
	return &CachingResolver{inner: inner, sources: make(map[string]cached)}
}

func (c *CachingResolver) Resolve(spec, base string) (string, string, error) {
	c.mu.RLock()
	if hit, ok := c.sources[spec]; ok {
		c.mu.RUnlock()
		return hit.source, hit.base, nil
	}
	c.mu.RUnlock()

	src, newBase, err := c.inner.Resolve(spec, base)
	if err != nil {
		return "", "", err
	}
	c.mu.Lock()
	c.sources[spec] = cached{src, newBase}
	c.mu.Unlock()
	return src, newBase, nil
}

// Clear empties the fetch cache.
func (c *CachingResolver) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = make(map[string]cached)
}

// Invalidate drops a single cached specifier.
func (c *CachingResolver) Invalidate(spec string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, spec)
}
