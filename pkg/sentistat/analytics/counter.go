package analytics

import "sort"

// Entry is a key with its count.
type Entry[K comparable] struct {
	Key   K
	Count int64
}

// Counter counts keys and remembers the order in which keys were first seen,
// so that MostCommon breaks ties deterministically.
type Counter[K comparable] struct {
	counts map[K]int64
	order  []K
	total  int64
}

// NewCounter creates an empty counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int64)}
}

// Add increments the count of key by one.
func (c *Counter[K]) Add(key K) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
	c.total++
}

// AddAll increments every key in keys.
func (c *Counter[K]) AddAll(keys []K) {
	for _, k := range keys {
		c.Add(k)
	}
}

// Count returns the count of key.
func (c *Counter[K]) Count(key K) int64 {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

// Total returns the sum of all counts.
func (c *Counter[K]) Total() int64 {
	return c.total
}

// MostCommon returns up to n entries ordered by count, highest first. Keys
// with equal counts keep first-seen order. n <= 0 returns every entry.
func (c *Counter[K]) MostCommon(n int) []Entry[K] {
	entries := make([]Entry[K], 0, len(c.order))
	for _, k := range c.order {
		entries = append(entries, Entry[K]{Key: k, Count: c.counts[k]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
