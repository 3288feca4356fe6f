package stats

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Entry is one key/value pair of an ordered map.
type Entry[V int | float64] struct {
	Key   string
	Value V
}

// Ordered is a small insertion-ordered map that marshals as a JSON object in
// slice order. encoding/json sorts plain map keys, which would lose the order.
type Ordered[V int | float64] []Entry[V]

// Counts is an ordered tally.
type Counts = Ordered[int]

// Averages is an ordered set of per-key averages.
type Averages = Ordered[float64]

// Get returns the value stored under key, or zero.
func (o Ordered[V]) Get(key string) V {
	for _, e := range o {
		if e.Key == key {
			return e.Value
		}
	}
	var zero V
	return zero
}

// Keys returns the keys in order.
func (o Ordered[V]) Keys() []string {
	keys := make([]string, len(o))
	for i, e := range o {
		keys[i] = e.Key
	}
	return keys
}

// Total sums all values.
func (o Ordered[V]) Total() V {
	var sum V
	for _, e := range o {
		sum += e.Value
	}
	return sum
}

// SortedByValue returns a copy ordered by descending value. Ties keep their order.
func (o Ordered[V]) SortedByValue() Ordered[V] {
	out := make(Ordered[V], len(o))
	copy(out, o)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// MarshalJSON writes a JSON object with keys in slice order.
func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// tally accumulates an Ordered map with O(1) lookups.
type tally[V int | float64] struct {
	index map[string]int
	items Ordered[V]
}

func newTally[V int | float64]() *tally[V] {
	return &tally[V]{index: make(map[string]int)}
}

func (t *tally[V]) add(key string, v V) {
	if i, ok := t.index[key]; ok {
		t.items[i].Value += v
		return
	}
	t.index[key] = len(t.items)
	t.items = append(t.items, Entry[V]{Key: key, Value: v})
}

func (t *tally[V]) result() Ordered[V] {
	if t.items == nil {
		return Ordered[V]{}
	}
	return t.items
}
