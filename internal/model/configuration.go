package model

import (
	"fmt"
	"slices"
)

// Configuration holds at most one part per category. The zero value is an
// empty configuration. Methods that return a Configuration never modify the
// receiver.
type Configuration struct {
	slots map[Category]*Part
}

func NewConfiguration(parts ...*Part) (Configuration, error) {
	var c Configuration
	for _, p := range parts {
		if err := c.Set(p); err != nil {
			return Configuration{}, err
		}
	}
	return c, nil
}

// ConfigurationFromSlots builds a configuration from explicit slots. A part
// whose category differs from its slot is rejected with ErrCategoryMismatch.
// Slots are checked in category display order, unknown slot keys first.
func ConfigurationFromSlots(slots map[Category]*Part) (Configuration, error) {
	unknown := make([]string, 0)
	for slot := range slots {
		if !slot.Valid() {
			unknown = append(unknown, string(slot))
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return Configuration{}, fmt.Errorf("%w: %q", ErrUnknownCategory, unknown[0])
	}

	var c Configuration
	for _, slot := range categories {
		p := slots[slot]
		if p == nil {
			continue
		}
		if p.Category != slot {
			return Configuration{}, fmt.Errorf("%w: part %q is %q, slot is %q",
				ErrCategoryMismatch, p.ID, p.Category, slot)
		}
		if err := c.Set(p); err != nil {
			return Configuration{}, err
		}
	}
	return c, nil
}

// Set places p in the slot of its category, replacing any previous part.
func (c *Configuration) Set(p *Part) error {
	if p == nil {
		return fmt.Errorf("%w: nil part", ErrInvalidArgument)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, p.Category)
	}
	if c.slots == nil {
		c.slots = make(map[Category]*Part, len(categories))
	}
	c.slots[p.Category] = p
	return nil
}

func (c *Configuration) Unset(cat Category) {
	delete(c.slots, cat)
}

func (c Configuration) Part(cat Category) (*Part, bool) {
	p, ok := c.slots[cat]
	return p, ok
}

func (c Configuration) Has(cat Category) bool {
	_, ok := c.slots[cat]
	return ok
}

// Parts returns the present parts in category display order.
func (c Configuration) Parts() []*Part {
	out := make([]*Part, 0, len(c.slots))
	for _, cat := range categories {
		if p, ok := c.slots[cat]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (c Configuration) Len() int { return len(c.slots) }

// With returns a copy of c with p placed in its category. Parts with an
// unknown category leave the copy unchanged.
func (c Configuration) With(p *Part) Configuration {
	cp := c.Clone()
	if p != nil && p.Category.Valid() {
		_ = cp.Set(p)
	}
	return cp
}

// Without returns a copy of c with cat emptied.
func (c Configuration) Without(cat Category) Configuration {
	cp := c.Clone()
	cp.Unset(cat)
	return cp
}

// Clone copies the slot map. Parts are shared, they are immutable records.
func (c Configuration) Clone() Configuration {
	if len(c.slots) == 0 {
		return Configuration{}
	}
	slots := make(map[Category]*Part, len(c.slots))
	for k, v := range c.slots {
		slots[k] = v
	}
	return Configuration{slots: slots}
}

// Slots returns a copy of the category to part mapping.
func (c Configuration) Slots() map[Category]*Part {
	out := make(map[Category]*Part, len(c.slots))
	for k, v := range c.slots {
		out[k] = v
	}
	return out
}
