// Package cache provides a generic LRU cache used for memoizing shaped text.
//
//	c := cache.New[string, float64](1024)
//	c.Put("hello", 31.5)
//	adv, ok := c.Get("hello")
//
// The cache is safe for concurrent use and must not be copied after
// creation.
package cache
