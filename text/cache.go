package text

import (
	"math"

	"github.com/gogpu/vscene/internal/cache"
)

// defaultCacheCapacity is the number of shaped words kept per layouter.
const defaultCacheCapacity = cache.DefaultCapacity

type advanceKey struct {
	font     uint64
	sizeBits uint64
	word     string
}

// advanceCache memoizes shaped advances. Wrapping measures every
// candidate line, so repeated words across frames are shaped once.
type advanceCache = cache.Cache[advanceKey, float64]

func newAdvanceCache(capacity int) *advanceCache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return cache.New[advanceKey, float64](capacity)
}

func cacheKey(f *Font, size float64, s string) advanceKey {
	return advanceKey{font: f.id, sizeBits: math.Float64bits(size), word: s}
}
