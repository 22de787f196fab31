package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Resolver tracks output paths claimed by input files during one run.
// Timestamps have one-second resolution, so two inputs sharing a stem
// (clip.mkv and clip.mov) can map to the same output; the later claimant
// gets a "-N" suffix. All methods are goroutine-safe.
type Resolver struct {
	mu       sync.Mutex
	owners   map[string]string // output path → input path that owns it
	counters map[string]int    // requested output path → next suffix
}

// NewResolver creates a ready-to-use resolver.
func NewResolver() *Resolver {
	return &Resolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the output path input should write to, and whether it
// differs from requested. A path unclaimed or already owned by input is
// returned as-is.
func (r *Resolver) Resolve(input, requested string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.owners[requested]
	if !exists || owner == input {
		r.owners[requested] = input
		return requested, false
	}

	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	counter := max(r.counters[requested], 1)
	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, counter, ext))
		cOwner, cExists := r.owners[candidate]
		if !cExists || cOwner == input {
			r.counters[requested] = counter + 1
			r.owners[candidate] = input
			return candidate, true
		}
		counter++
	}
}
