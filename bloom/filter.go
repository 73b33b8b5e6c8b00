// Package bloom deduplicates URLs with a Bloom filter.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is used by NewDeduper.
const DefaultFalsePositiveRate = 0.01

// Filter wraps a Bloom filter for URL deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(n, 1), fpRate),
	}
}

// TestAndAdd adds url and reports whether it might have been present before.
// False positives are possible; false negatives are not.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// Deduper reports the first occurrence of each URL exactly. The filter
// answers most first sightings; its positives are confirmed against the
// set of URLs seen so far. Deduper is safe for concurrent use.
type Deduper struct {
	mu     sync.Mutex
	filter *Filter
	seen   map[string]struct{}
}

// NewDeduper returns a Deduper sized for n URLs.
func NewDeduper(n uint) *Deduper {
	return &Deduper{
		filter: NewFilter(n, DefaultFalsePositiveRate),
		seen:   make(map[string]struct{}, n),
	}
}

// First records url and reports whether this is its first occurrence.
func (d *Deduper) First(url string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	maybeSeen := d.filter.TestAndAdd(url)
	if maybeSeen {
		if _, ok := d.seen[url]; ok {
			return false
		}
	}
	d.seen[url] = struct{}{}
	return true
}
