package entity

import "time"

// CartLine references a catalog product by slug and freezes its token cost
// at the moment it was added.
type CartLine struct {
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Tokens  int64     `json:"tokens"`
	AddedAt time.Time `json:"added_at"`
}

// Cart is the browsing-session cart. Lines keep insertion order; adding a
// slug already present replaces the line in place.
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Upsert replaces the line with the same slug or appends a new one.
func (c *Cart) Upsert(line CartLine) {
	for i := range c.Lines {
		if c.Lines[i].Slug == line.Slug {
			c.Lines[i] = line
			return
		}
	}

	c.Lines = append(c.Lines, line)
}

// Remove drops the line with the given slug, keeping order. Reports whether
// anything was removed.
func (c *Cart) Remove(slug string) bool {
	for i := range c.Lines {
		if c.Lines[i].Slug == slug {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}

	return false
}

// TotalTokens sums line token costs. Currency conversion happens once on
// this aggregate, never per line.
func (c *Cart) TotalTokens() int64 {
	var sum int64
	for _, line := range c.Lines {
		sum += line.Tokens
	}

	return sum
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}
