package engine

import (
	"unsafe"
)

const (
	// In MB
	DefaultHashMB = 64
	megabyte      = 1 << 20
	clusterSize   = 4
)

// hashKey is anything that can select a cluster. Equality of the key itself
// decides a hit, so hash collisions never return a foreign entry.
type hashKey interface {
	comparable
	Hash() uint64
}

type ttEntry[K hashKey, V any] struct {
	key   K
	value V
	gen   uint32
	stamp uint32
}

// transTable is a fixed-size clustered table. Replacement inside a cluster
// prefers the same key, then a slot from an older generation, then the
// oldest write.
type transTable[K hashKey, V any] struct {
	entries      []ttEntry[K, V]
	clusterCount uint64
	gen          uint32
	clock        uint32
	used         int
}

// newTransTable sizes the table in bytes. It always holds at least one
// cluster.
func newTransTable[K hashKey, V any](size int) *transTable[K, V] {
	tt := &transTable[K, V]{}
	tt.init(size)
	return tt
}

func (tt *transTable[K, V]) init(size int) {
	entrySize := uint64(unsafe.Sizeof(ttEntry[K, V]{}))
	if entrySize == 0 {
		entrySize = 1
	}
	clusterCount := uint64(max(size, 0)) / (entrySize * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	tt.clusterCount = clusterCount
	tt.entries = make([]ttEntry[K, V], clusterCount*clusterSize)
	// Generation 0 marks never-written slots.
	tt.gen = 1
	tt.clock = 0
	tt.used = 0
}

// clear empties the table in O(1) by moving to a new generation.
func (tt *transTable[K, V]) clear() {
	tt.gen++
	tt.used = 0
	if tt.gen == 0 {
		clear(tt.entries)
		tt.gen = 1
	}
}

func (tt *transTable[K, V]) cluster(key K) []ttEntry[K, V] {
	base := (key.Hash() % tt.clusterCount) * clusterSize
	return tt.entries[base : base+clusterSize]
}

func (tt *transTable[K, V]) get(key K) (value V, found bool) {
	c := tt.cluster(key)
	for i := range c {
		if c[i].gen == tt.gen && c[i].key == key {
			return c[i].value, true
		}
	}
	return value, false
}

func (tt *transTable[K, V]) put(key K, value V) {
	c := tt.cluster(key)
	target := -1
	for i := range c {
		if c[i].gen == tt.gen && c[i].key == key {
			target = i
			break
		}
	}
	if target == -1 {
		for i := range c {
			if c[i].gen != tt.gen {
				target = i
				tt.used++
				break
			}
		}
	}
	if target == -1 {
		target = 0
		for i := 1; i < len(c); i++ {
			if c[i].stamp < c[target].stamp {
				target = i
			}
		}
	}

	tt.clock++
	c[target] = ttEntry[K, V]{key: key, value: value, gen: tt.gen, stamp: tt.clock}
}

// len reports the number of live entries.
func (tt *transTable[K, V]) len() int { return tt.used }

func (tt *transTable[K, V]) capacity() int { return len(tt.entries) }
