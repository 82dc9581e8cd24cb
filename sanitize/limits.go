package sanitize

// Spec rule names understood by the limit catalog.
const (
	SpecNameCustomStyle = "style amp-custom"
	SpecNameKeyframes   = "style[amp-keyframes]"
)

const (
	defaultCustomBudget    = 50000
	defaultKeyframesBudget = 500000
)

// Catalog supplies the byte limits for the consolidated custom
// stylesheet and for a single keyframes block, keyed by spec name. The
// driver looks limits up once at construction.
type Catalog struct {
	limits map[string]int
}

// NewCatalog builds a catalog from explicit limits. Names absent from
// the map fall back to the defaults.
func NewCatalog(limits map[string]int) *Catalog {
	c := &Catalog{limits: make(map[string]int, len(limits))}
	for name, n := range limits {
		if n > 0 {
			c.limits[name] = n
		}
	}
	return c
}

func DefaultCatalog() *Catalog {
	return NewCatalog(nil)
}

// Bytes returns the limit for a spec name, or its default when the
// catalog carries no override.
func (c *Catalog) Bytes(name string) int {
	if c != nil {
		if n, ok := c.limits[name]; ok {
			return n
		}
	}
	switch name {
	case SpecNameKeyframes:
		return defaultKeyframesBudget
	default:
		return defaultCustomBudget
	}
}
