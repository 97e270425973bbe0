// api/models/models.go
package models

// Collections bundles the three top-level collections. It is the unit of
// persistence: one JSON document with three keyed arrays, same shape locally
// and remotely.
type Collections struct {
	Filaments    []Filament    `json:"filaments"`
	PrintedParts []PrintedPart `json:"printedParts"`
	Projects     []Project     `json:"projects"`
}

// Clone returns a deep copy of the collections.
func (c Collections) Clone() Collections {
	out := Collections{
		Filaments:    make([]Filament, len(c.Filaments)),
		PrintedParts: make([]PrintedPart, len(c.PrintedParts)),
		Projects:     make([]Project, len(c.Projects)),
	}
	copy(out.Filaments, c.Filaments)
	copy(out.PrintedParts, c.PrintedParts)
	copy(out.Projects, c.Projects)
	for i, f := range c.Filaments {
		if f.Price != nil {
			price := *f.Price
			out.Filaments[i].Price = &price
		}
	}
	return out
}

// Normalized replaces nil slices with empty ones so a decoded document with
// missing keys behaves like an empty document.
func (c Collections) Normalized() Collections {
	if c.Filaments == nil {
		c.Filaments = []Filament{}
	}
	if c.PrintedParts == nil {
		c.PrintedParts = []PrintedPart{}
	}
	if c.Projects == nil {
		c.Projects = []Project{}
	}
	return c
}

// FindFilament returns a pointer into the Filaments slice, or nil when the
// id is absent.
func (c *Collections) FindFilament(id string) *Filament {
	for i := range c.Filaments {
		if c.Filaments[i].ID == id {
			return &c.Filaments[i]
		}
	}
	return nil
}

// FindPart returns a pointer into the PrintedParts slice, or nil when the
// id is absent.
func (c *Collections) FindPart(id string) *PrintedPart {
	for i := range c.PrintedParts {
		if c.PrintedParts[i].ID == id {
			return &c.PrintedParts[i]
		}
	}
	return nil
}

// FindProject returns a pointer into the Projects slice, or nil when the
// id is absent.
func (c *Collections) FindProject(id string) *Project {
	for i := range c.Projects {
		if c.Projects[i].ID == id {
			return &c.Projects[i]
		}
	}
	return nil
}
