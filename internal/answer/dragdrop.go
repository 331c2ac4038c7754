package answer

import (
	"fmt"

	"github.com/lshigami/edugress/internal/domain"
)

// DragDrop sorts items into category buckets. Every item is always in
// exactly one place: the pool or a single bucket.
type DragDrop struct {
	categories []string
	items      []domain.KeyedOption
	known      map[string]bool
	// location holds placed items only; a missing key is in the pool.
	location map[string]string
	// order keeps each bucket's items in the order they were dropped.
	order map[string][]string
	armed string
}

// NewDragDrop keeps the first item of each key.
func NewDragDrop(categories []string, items []domain.KeyedOption) *DragDrop {
	c := &DragDrop{categories: categories, known: make(map[string]bool, len(items))}
	for _, it := range items {
		if c.known[it.Key] {
			continue
		}
		c.known[it.Key] = true
		c.items = append(c.items, it)
	}
	c.Reset(nil)
	return c
}

func (c *DragDrop) Kind() domain.QuestionType { return domain.DragDrop }

func (c *DragDrop) Categories() []string        { return c.categories }
func (c *DragDrop) Items() []domain.KeyedOption { return c.items }

// Armed returns the armed item key or "".
func (c *DragDrop) Armed() string { return c.armed }

// Pool lists the unplaced item keys in item order.
func (c *DragDrop) Pool() []string {
	var out []string
	for _, it := range c.items {
		if _, placed := c.location[it.Key]; !placed {
			out = append(out, it.Key)
		}
	}
	return out
}

func (c *DragDrop) Bucket(category string) []string {
	return append([]string(nil), c.order[category]...)
}

// Location returns the category holding key; ok is false while the item
// sits in the pool.
func (c *DragDrop) Location(key string) (category string, ok bool) {
	category, ok = c.location[key]
	return category, ok
}

func (c *DragDrop) ArmItem(key string) error {
	if !c.known[key] {
		return fmt.Errorf("unknown item %q", key)
	}
	c.armed = key
	return nil
}

// Drop moves the armed item into category, taking it out of the pool or its
// previous bucket.
func (c *DragDrop) Drop(category string) error {
	if !c.hasCategory(category) {
		return fmt.Errorf("unknown category %q", category)
	}
	if c.armed == "" {
		return ErrNothingArmed
	}
	c.take(c.armed)
	c.location[c.armed] = category
	c.order[category] = append(c.order[category], c.armed)
	c.armed = ""
	return nil
}

func (c *DragDrop) ReturnToPool(key string) error {
	if !c.known[key] {
		return fmt.Errorf("unknown item %q", key)
	}
	c.take(key)
	if c.armed == key {
		c.armed = ""
	}
	return nil
}

// take removes key from its bucket, leaving it in the pool.
func (c *DragDrop) take(key string) {
	from, placed := c.location[key]
	if !placed {
		return
	}
	bucket := c.order[from]
	for i, k := range bucket {
		if k == key {
			c.order[from] = append(bucket[:i:i], bucket[i+1:]...)
			break
		}
	}
	delete(c.location, key)
}

func (c *DragDrop) hasCategory(category string) bool {
	for _, cat := range c.categories {
		if cat == category {
			return true
		}
	}
	return false
}

// Draft lists every category, empty ones included.
func (c *DragDrop) Draft() (domain.UserAnswer, bool) {
	placed := false
	buckets := make(map[string][]string, len(c.categories))
	for _, cat := range c.categories {
		items := append([]string{}, c.order[cat]...)
		if len(items) > 0 {
			placed = true
		}
		buckets[cat] = items
	}
	if !placed {
		return nil, false
	}
	return domain.DragDropAnswer{Buckets: buckets}, true
}

func (c *DragDrop) Answer() (domain.UserAnswer, error) {
	return answerFromDraft(c, "Place at least one item in a category before submitting.")
}

// Reset puts every item back in the pool, then replays a previous answer.
// Unknown items and categories are ignored; an item listed twice stays in
// the first bucket that claimed it.
func (c *DragDrop) Reset(prev domain.UserAnswer) {
	c.location = make(map[string]string, len(c.items))
	c.order = make(map[string][]string, len(c.categories))
	c.armed = ""
	a, ok := prev.(domain.DragDropAnswer)
	if !ok {
		return
	}
	for _, cat := range c.categories {
		for _, key := range a.Buckets[cat] {
			if _, placed := c.location[key]; c.known[key] && !placed {
				c.location[key] = cat
				c.order[cat] = append(c.order[cat], key)
			}
		}
	}
}
