package camera

import "github.com/Faultbox/carviewer/pkg/math"

// Viewpoint is a named camera position and look-at target.
type Viewpoint struct {
	Name     string
	Position math.Vec3
	LookAt   math.Vec3
}

// Catalog is an ordered, immutable set of viewpoints keyed by name.
type Catalog struct {
	views []Viewpoint
	index map[string]int
}

// NewCatalog builds a catalog. Later duplicates of a name are ignored.
func NewCatalog(views ...Viewpoint) *Catalog {
	c := &Catalog{index: make(map[string]int, len(views))}
	for _, v := range views {
		if _, dup := c.index[v.Name]; dup {
			continue
		}
		c.index[v.Name] = len(c.views)
		c.views = append(c.views, v)
	}
	return c
}

// DefaultCatalog returns the five studio viewpoints.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Viewpoint{"front", math.V3(0, 1, 5), math.V3(0, 0.5, 0)},
		Viewpoint{"side", math.V3(5, 1, 0), math.V3(0, 0.5, 0)},
		Viewpoint{"rear", math.V3(0, 1, -5), math.V3(0, 0.5, 0)},
		Viewpoint{"top", math.V3(0, 5, 0), math.V3(0, 0, 0)},
		Viewpoint{"interior", math.V3(0, 1, 0), math.V3(0, 1, 1)},
	)
}

// Lookup returns the viewpoint called name.
func (c *Catalog) Lookup(name string) (Viewpoint, bool) {
	i, ok := c.index[name]
	if !ok {
		return Viewpoint{}, false
	}
	return c.views[i], true
}

// All returns the viewpoints in catalog order.
func (c *Catalog) All() []Viewpoint {
	return append([]Viewpoint(nil), c.views...)
}

// Names returns the viewpoint names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.views))
	for i, v := range c.views {
		names[i] = v.Name
	}
	return names
}

// Len returns the number of viewpoints.
func (c *Catalog) Len() int {
	return len(c.views)
}
