package adaptive

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
)

// Cache remembers the last solve for one operation. It exists purely
// to skip re-running the expensive 2D solve when neither geometry nor
// parameters changed between recomputes. One cache per joint; caches
// are never shared across operations.
type Cache struct {
	fingerprint Fingerprint
	result      *Result
	valid       bool
}

// Lookup returns the cached result if fp matches the stored
// fingerprint and a stored result exists.
func (c *Cache) Lookup(fp Fingerprint) (*Result, bool) {
	if !c.valid || c.fingerprint != fp || c.result == nil {
		return nil, false
	}
	return c.result, true
}

// Store records a solve result under its request fingerprint. Partial
// results are dropped: they must not satisfy a future identical
// request.
func (c *Cache) Store(fp Fingerprint, res *Result) {
	if res == nil || res.Partial {
		c.Invalidate()
		return
	}
	c.fingerprint = fp
	c.result = res
	c.valid = true
}

// Invalidate clears the cache.
func (c *Cache) Invalidate() {
	c.valid = false
	c.result = nil
}

// cacheState is the persisted form of a cache entry.
type cacheState struct {
	Fingerprint string  `json:"fingerprint"`
	Result      *Result `json:"result"`
}

// Save writes the fingerprint + result pair as JSON so a later
// session can reuse the solve. Saving an empty cache is an error.
func (c *Cache) Save(w io.Writer) error {
	if !c.valid {
		return fmt.Errorf("cache: nothing to save")
	}
	state := cacheState{
		Fingerprint: hex.EncodeToString(c.fingerprint[:]),
		Result:      c.result,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&state)
}

// Load restores a previously saved fingerprint + result pair.
func (c *Cache) Load(r io.Reader) error {
	var state cacheState
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return fmt.Errorf("cache: decoding state: %w", err)
	}
	raw, err := hex.DecodeString(state.Fingerprint)
	if err != nil || len(raw) != len(c.fingerprint) {
		return fmt.Errorf("cache: malformed fingerprint %q", state.Fingerprint)
	}
	if state.Result == nil {
		return fmt.Errorf("cache: state has no result")
	}
	copy(c.fingerprint[:], raw)
	c.result = state.Result
	c.valid = true
	return nil
}
