// Package sections models which output fields an export shows, in which
// order and how wide. Every operation is a pure transition: it takes a
// States value and returns a new one, leaving its input untouched.
package sections

import (
	"math"
	"sort"
	"strings"

	"github.com/gompdf/shotpdf/internal/item"
)

// ID identifies a section. Concrete sections use item field keys.
type ID string

// Flex bounds accepted by SetFlex
const (
	MinFlex = 0.5
	MaxFlex = 6.0
)

// CombinedSeparator joins member values of a combined section
const CombinedSeparator = " - "

// State is the user-controlled configuration of one concrete section
type State struct {
	Visible bool    `yaml:"visible" mapstructure:"visible"`
	Order   int     `yaml:"order" mapstructure:"order"`
	Flex    float64 `yaml:"flex" mapstructure:"flex"`
}

// States maps concrete section ids to their state
type States map[ID]State

// Clone returns an independent copy
func (s States) Clone() States {
	out := make(States, len(s))
	for id, st := range s {
		out[id] = st
	}
	return out
}

// Definition describes a section of a catalog. A definition with Members is
// a combined section: it owns no state and renders its members as one column.
type Definition struct {
	ID       ID
	Label    string
	Required bool
	Visible  bool
	Order    int
	Flex     float64
	Members  []ID
}

// IsCombined reports whether the definition merges other sections
func (d Definition) IsCombined() bool {
	return len(d.Members) > 0
}

// Section is a resolved top-level section ready to render
type Section struct {
	ID       ID
	Label    string
	Visible  bool
	Order    int
	Flex     float64
	Required bool
	// Members holds the visible members of a combined section
	Members []ID
}

// IsCombined reports whether the section merges other sections
func (s Section) IsCombined() bool {
	return len(s.Members) > 0
}

// Value returns the text a section shows for an item. Combined sections join
// their visible members' values.
func (s Section) Value(it item.ExportableItem) string {
	if !s.IsCombined() {
		return it.Value(string(s.ID))
	}
	parts := make([]string, 0, len(s.Members))
	for _, m := range s.Members {
		if v := strings.TrimSpace(it.Value(string(m))); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, CombinedSeparator)
}

// Fields returns the item field keys a section draws from
func (s Section) Fields() []string {
	if !s.IsCombined() {
		return []string{string(s.ID)}
	}
	out := make([]string, len(s.Members))
	for i, m := range s.Members {
		out[i] = string(m)
	}
	return out
}

// Catalog is the set of sections offered by one export type
type Catalog struct {
	name     string
	defs     []Definition
	byID     map[ID]Definition
	byFold   map[string]ID
	memberOf map[ID]ID
	presets  map[string][]ID
}

// NewCatalog builds a catalog. Presets map a preset name to the sections it
// shows; required sections are always shown.
func NewCatalog(name string, defs []Definition, presets map[string][]ID) *Catalog {
	c := &Catalog{
		name:     name,
		defs:     defs,
		byID:     make(map[ID]Definition, len(defs)),
		byFold:   make(map[string]ID, len(defs)),
		memberOf: make(map[ID]ID),
		presets:  presets,
	}
	for _, d := range defs {
		c.byID[d.ID] = d
		c.byFold[strings.ToLower(string(d.ID))] = d.ID
		for _, m := range d.Members {
			c.memberOf[m] = d.ID
		}
	}
	return c
}

// Name returns the catalog name
func (c *Catalog) Name() string { return c.name }

// Definition returns the definition of a section
func (c *Catalog) Definition(id ID) (Definition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Lookup finds a definition by id, ignoring case. Configuration loaders
// lowercase map keys, so ids read from files only match this way.
func (c *Catalog) Lookup(key string) (Definition, bool) {
	if d, ok := c.byID[ID(key)]; ok {
		return d, true
	}
	id, ok := c.byFold[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Definition{}, false
	}
	return c.byID[id], true
}

// PresetNames lists the preset names in sorted order
func (c *Catalog) PresetNames() []string {
	names := make([]string, 0, len(c.presets))
	for name := range c.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns the default state of every concrete section
func (c *Catalog) Defaults() States {
	out := make(States)
	for _, d := range c.defs {
		if d.IsCombined() {
			continue
		}
		out[d.ID] = State{Visible: d.Visible || d.Required, Order: d.Order, Flex: d.Flex}
	}
	return out
}

// normalize returns a copy of states holding exactly the catalog's concrete
// sections. Missing entries get defaults and required sections are forced
// visible.
func (c *Catalog) normalize(states States) States {
	out := c.Defaults()
	for id, st := range states {
		d, ok := c.Lookup(string(id))
		if !ok || d.IsCombined() {
			continue
		}
		id = d.ID
		if st.Flex <= 0 || math.IsNaN(st.Flex) {
			st.Flex = d.Flex
		}
		if d.Required {
			st.Visible = true
		}
		out[id] = st
	}
	return out
}

// Normalize returns states completed with catalog defaults. Unknown ids are
// dropped.
func (c *Catalog) Normalize(states States) States {
	return c.normalize(states)
}

// SortedSections returns every top-level section, visible or not, sorted by
// order. Combined sections replace their members: visible if any member is,
// flex is the sum of member flex and order is the first member's order.
func (c *Catalog) SortedSections(states States) []Section {
	st := c.normalize(states)
	out := make([]Section, 0, len(c.defs))
	for _, d := range c.defs {
		if _, isMember := c.memberOf[d.ID]; isMember {
			continue
		}
		if !d.IsCombined() {
			s := st[d.ID]
			out = append(out, Section{
				ID:       d.ID,
				Label:    d.Label,
				Visible:  s.Visible,
				Order:    s.Order,
				Flex:     s.Flex,
				Required: d.Required,
			})
			continue
		}

		sec := Section{ID: d.ID, Label: d.Label, Order: st[d.Members[0]].Order}
		for _, m := range d.Members {
			ms := st[m]
			sec.Flex += ms.Flex
			if ms.Visible {
				sec.Visible = true
				sec.Members = append(sec.Members, m)
			}
			if md, ok := c.byID[m]; ok && md.Required {
				sec.Required = true
			}
		}
		out = append(out, sec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// VisibleSections returns the enabled top-level sections sorted by order
func (c *Catalog) VisibleSections(states States) []Section {
	all := c.SortedSections(states)
	out := make([]Section, 0, len(all))
	for _, s := range all {
		if s.Visible {
			out = append(out, s)
		}
	}
	return out
}

// Toggle flips the visibility of a section. Hiding a required section is a
// no-op. Toggling a combined section hides all its optional members when any
// member is visible and shows all of them otherwise.
func (c *Catalog) Toggle(states States, id ID) States {
	st := c.normalize(states)
	d, ok := c.byID[id]
	if !ok {
		return st
	}

	if !d.IsCombined() {
		s := st[id]
		if s.Visible && d.Required {
			return st
		}
		s.Visible = !s.Visible
		st[id] = s
		return st
	}

	// Required members stay visible, so only optional members flip.
	anyVisible := false
	for _, m := range d.Members {
		if st[m].Visible && !c.byID[m].Required {
			anyVisible = true
			break
		}
	}
	for _, m := range d.Members {
		if c.byID[m].Required {
			continue
		}
		s := st[m]
		s.Visible = !anyVisible
		st[m] = s
	}
	return st
}

// SetVisible sets the visibility of a concrete section. Required sections
// stay visible.
func (c *Catalog) SetVisible(states States, id ID, visible bool) States {
	st := c.normalize(states)
	d, ok := c.byID[id]
	if !ok || d.IsCombined() {
		return st
	}
	s := st[id]
	s.Visible = visible || d.Required
	st[id] = s
	return st
}

// SetFlex sets the relative width of a section, clamped to [MinFlex, MaxFlex].
// Non-positive values are ignored. For a combined section the members are
// scaled so their flex sums to the new value.
func (c *Catalog) SetFlex(states States, id ID, flex float64) States {
	st := c.normalize(states)
	d, ok := c.byID[id]
	if !ok || flex <= 0 || math.IsNaN(flex) {
		return st
	}

	if !d.IsCombined() {
		s := st[id]
		s.Flex = clampFlex(flex)
		st[id] = s
		return st
	}

	// member flex is not clamped individually, the combined total is
	flex = clampFlex(flex)
	total := 0.0
	for _, m := range d.Members {
		total += st[m].Flex
	}
	for _, m := range d.Members {
		s := st[m]
		if total > 0 {
			s.Flex = s.Flex / total * flex
		} else {
			s.Flex = flex / float64(len(d.Members))
		}
		st[m] = s
	}
	return st
}

// Move places a top-level section at position index of the sorted list and
// renumbers every order. Members of a combined section receive consecutive
// orders so the combined section keeps its place.
func (c *Catalog) Move(states States, id ID, index int) States {
	st := c.normalize(states)
	sorted := c.SortedSections(st)

	from := -1
	for i, s := range sorted {
		if s.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return st
	}
	if index < 0 {
		index = 0
	}
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	moved := sorted[from]
	sorted = append(sorted[:from], sorted[from+1:]...)
	sorted = append(sorted[:index], append([]Section{moved}, sorted[index:]...)...)

	order := 0
	for _, s := range sorted {
		d := c.byID[s.ID]
		ids := []ID{s.ID}
		if d.IsCombined() {
			ids = d.Members
		}
		for _, sid := range ids {
			cur := st[sid]
			cur.Order = order
			st[sid] = cur
			order++
		}
	}
	return st
}

// ApplyPreset shows exactly the sections named by a preset, plus required
// sections. Order and flex are kept. Unknown presets leave the state as is.
func (c *Catalog) ApplyPreset(states States, name string) States {
	st := c.normalize(states)
	ids, ok := c.presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return st
	}

	show := make(map[ID]bool)
	for _, id := range ids {
		if d, ok := c.byID[id]; ok && d.IsCombined() {
			for _, m := range d.Members {
				show[m] = true
			}
			continue
		}
		show[id] = true
	}
	for id, s := range st {
		s.Visible = show[id] || c.byID[id].Required
		st[id] = s
	}
	return st
}

// ApplyFields applies a field key to visibility mapping on top of states.
// Keys that name no concrete section are ignored.
func (c *Catalog) ApplyFields(states States, fields map[string]bool) States {
	st := c.normalize(states)
	for key, visible := range fields {
		d, ok := c.Lookup(key)
		if !ok || d.IsCombined() {
			continue
		}
		id := d.ID
		s := st[id]
		s.Visible = visible || d.Required
		st[id] = s
	}
	return st
}

func clampFlex(f float64) float64 {
	return math.Max(MinFlex, math.Min(MaxFlex, f))
}
