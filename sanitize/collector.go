package sanitize

// Entry is one keyed, deduplicated chunk of CSS ready for packing.
type Entry struct {
	Key string
	CSS string
}

// Collector stores stylesheet entries in insertion order, deduplicated
// by key. It is scoped to a single sanitization pass and never shared.
type Collector struct {
	index   map[string]int
	entries []Entry
}

func NewCollector() *Collector {
	return &Collector{index: make(map[string]int)}
}

// Put inserts css under key. Re-inserting an existing key replaces the
// stored CSS but keeps the entry's original position.
func (c *Collector) Put(key, css string) {
	if i, ok := c.index[key]; ok {
		c.entries[i].CSS = css
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, Entry{Key: key, CSS: css})
}

func (c *Collector) Len() int { return len(c.entries) }

// Entries returns the stored entries in insertion order. The returned
// slice is the collector's backing store; callers must not mutate it.
func (c *Collector) Entries() []Entry {
	return c.entries
}
