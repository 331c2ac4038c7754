package answer

import (
	"errors"

	"github.com/lshigami/edugress/internal/domain"
)

var ErrNothingArmed = errors.New("select an item first")

// Match pairs left-column positions with right-column positions. Each left
// and each right position takes part in at most one pair.
type Match struct {
	left, right []domain.KeyedOption
	pairs       map[int]int
	armed       int
}

func NewMatch(left, right []domain.KeyedOption) *Match {
	return &Match{left: left, right: right, pairs: make(map[int]int), armed: -1}
}

func (c *Match) Kind() domain.QuestionType { return domain.Match }

func (c *Match) Left() []domain.KeyedOption  { return c.left }
func (c *Match) Right() []domain.KeyedOption { return c.right }

// Armed returns the armed left position or -1.
func (c *Match) Armed() int { return c.armed }

// PairOf returns the right position paired with left i.
func (c *Match) PairOf(i int) (int, bool) {
	j, ok := c.pairs[i]
	return j, ok
}

func (c *Match) ArmLeft(i int) error {
	if i < 0 || i >= len(c.left) {
		return outOfRange("left item", i, len(c.left))
	}
	c.armed = i
	return nil
}

// PickRight pairs the armed left item with right j, first dropping any pair
// that already uses either side.
func (c *Match) PickRight(j int) error {
	if j < 0 || j >= len(c.right) {
		return outOfRange("right item", j, len(c.right))
	}
	if c.armed < 0 {
		return ErrNothingArmed
	}
	for l, r := range c.pairs {
		if l == c.armed || r == j {
			delete(c.pairs, l)
		}
	}
	c.pairs[c.armed] = j
	c.armed = -1
	return nil
}

func (c *Match) Unpair(i int) {
	delete(c.pairs, i)
}

func (c *Match) Draft() (domain.UserAnswer, bool) {
	if len(c.pairs) == 0 {
		return nil, false
	}
	out := make(map[int]int, len(c.pairs))
	for l, r := range c.pairs {
		out[l] = r
	}
	return domain.MatchAnswer{Pairs: out}, true
}

func (c *Match) Answer() (domain.UserAnswer, error) {
	return answerFromDraft(c, "Match at least one pair before submitting.")
}

// Reset restores pairs from a previous answer, skipping positions that no
// longer exist and later duplicates of a right position.
func (c *Match) Reset(prev domain.UserAnswer) {
	c.pairs = make(map[int]int)
	c.armed = -1
	a, ok := prev.(domain.MatchAnswer)
	if !ok {
		return
	}
	used := make(map[int]bool)
	for _, l := range a.SortedLefts() {
		r := a.Pairs[l]
		if l < 0 || l >= len(c.left) || r < 0 || r >= len(c.right) || used[r] {
			continue
		}
		used[r] = true
		c.pairs[l] = r
	}
}
