package answer

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opts(texts ...string) []domain.Option {
	out := make([]domain.Option, len(texts))
	for i, t := range texts {
		out[i] = domain.Option{Text: t}
	}
	return out
}

func keyed(n int) []domain.KeyedOption {
	out := make([]domain.KeyedOption, n)
	for i := range out {
		out[i] = domain.KeyedOption{Key: strconv.Itoa(i), Option: domain.Option{Text: "item " + strconv.Itoa(i)}}
	}
	return out
}

func allComponents() []Component {
	return []Component{
		NewSingle(opts("a", "b")),
		NewMultiple(opts("a", "b")),
		NewMatch(keyed(2), keyed(2)),
		NewShortOpen(),
		NewOpenParagraph(),
		NewQuantitative(),
		NewDragDrop([]string{"x", "y"}, keyed(3)),
	}
}

func TestEmptyComponentsFailValidation(t *testing.T) {
	for _, c := range allComponents() {
		t.Run(c.Kind().String(), func(t *testing.T) {
			_, ok := c.Draft()
			assert.False(t, ok)

			_, err := c.Answer()
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, c.Kind(), ve.Kind)
			assert.NotEmpty(t, ve.Message)
		})
	}
}

func TestSingle(t *testing.T) {
	c := NewSingle(opts("3", "4", "5"))
	require.NoError(t, c.Select(0))
	require.NoError(t, c.Select(1))
	require.Error(t, c.Select(3))

	a, err := c.Answer()
	require.NoError(t, err)
	assert.Equal(t, domain.SingleAnswer{Option: domain.Option{Text: "4"}}, a)

	again, err := c.Answer()
	require.NoError(t, err)
	assert.Equal(t, a, again)

	c.Reset(domain.SingleAnswer{Option: domain.Option{Text: "5"}})
	assert.Equal(t, 2, c.Selected())
	c.Reset(nil)
	assert.Equal(t, -1, c.Selected())
}

func TestMultiple(t *testing.T) {
	c := NewMultiple(opts("a", "b", "c"))
	require.NoError(t, c.Toggle(2))
	require.NoError(t, c.Toggle(0))
	require.NoError(t, c.Toggle(1))
	require.NoError(t, c.Toggle(1))

	a, err := c.Answer()
	require.NoError(t, err)
	assert.Equal(t, domain.MultipleAnswer{Options: opts("a", "c")}, a)

	require.NoError(t, c.Toggle(0))
	require.NoError(t, c.Toggle(2))
	_, err = c.Answer()
	require.Error(t, err)

	c.Reset(domain.MultipleAnswer{Options: opts("b", "missing")})
	assert.True(t, c.IsSelected(1))
	assert.False(t, c.IsSelected(0))
}

func TestMatch_PickRightRemovesConflicts(t *testing.T) {
	c := NewMatch(keyed(3), keyed(3))
	require.ErrorIs(t, c.PickRight(0), ErrNothingArmed)

	require.NoError(t, c.ArmLeft(0))
	require.NoError(t, c.PickRight(1))
	require.NoError(t, c.ArmLeft(1))
	require.NoError(t, c.PickRight(1))

	_, ok := c.PairOf(0)
	assert.False(t, ok, "right 1 moved to left 1")
	j, ok := c.PairOf(1)
	require.True(t, ok)
	assert.Equal(t, 1, j)

	require.NoError(t, c.ArmLeft(1))
	require.NoError(t, c.PickRight(2))
	a, err := c.Answer()
	require.NoError(t, err)
	assert.Equal(t, domain.MatchAnswer{Pairs: map[int]int{1: 2}}, a)
}

func TestMatch_UniquenessUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for run := 0; run < 200; run++ {
		n := 1 + rng.Intn(5)
		c := NewMatch(keyed(n), keyed(n))
		for step := 0; step < 30; step++ {
			if rng.Intn(2) == 0 {
				_ = c.ArmLeft(rng.Intn(n))
			} else {
				_ = c.PickRight(rng.Intn(n))
			}
			seen := make(map[int]bool)
			for l := 0; l < n; l++ {
				if r, ok := c.PairOf(l); ok {
					require.False(t, seen[r], "right %d paired twice", r)
					seen[r] = true
				}
			}
		}
	}
}

func TestMatch_Reset(t *testing.T) {
	c := NewMatch(keyed(2), keyed(2))
	c.Reset(domain.MatchAnswer{Pairs: map[int]int{0: 1, 1: 1, 5: 0}})
	r, ok := c.PairOf(0)
	require.True(t, ok)
	assert.Equal(t, 1, r)
	_, ok = c.PairOf(1)
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	short := NewShortOpen()
	short.SetText("  ")
	_, err := short.Answer()
	require.Error(t, err)

	short.AppendLine("forty")
	short.AppendLine("two")
	a, err := short.Answer()
	require.NoError(t, err)
	assert.Equal(t, domain.ShortOpenAnswer{Text: "two"}, a)

	para := NewOpenParagraph()
	para.AppendLine("first")
	para.AppendLine("second")
	a, err = para.Answer()
	require.NoError(t, err)
	assert.Equal(t, domain.OpenParagraphAnswer{Text: "first\nsecond"}, a)

	para.Reset(domain.OpenParagraphAnswer{Text: "kept"})
	assert.Equal(t, "kept", para.Text())
	para.Reset(domain.ShortOpenAnswer{Text: "x"})
	assert.Equal(t, "x", para.Text())
}

func TestQuantitative(t *testing.T) {
	c := NewQuantitative()
	require.Len(t, Comparisons, 4)
	require.Error(t, c.Choose("E"))
	require.NoError(t, c.Choose("c"))

	a, err := c.Answer()
	require.NoError(t, err)
	assert.Equal(t, domain.QuantitativeAnswer{Choice: "C"}, a)

	require.NoError(t, c.Choose(">"))
	assert.Equal(t, "A", c.Choice())
}

func TestDragDrop_MoveBetweenBuckets(t *testing.T) {
	c := NewDragDrop([]string{"fruit", "veg"}, keyed(3))
	assert.Equal(t, []string{"0", "1", "2"}, c.Pool())
	require.ErrorIs(t, c.Drop("fruit"), ErrNothingArmed)
	require.Error(t, c.ArmItem("9"))

	require.NoError(t, c.ArmItem("0"))
	require.NoError(t, c.Drop("fruit"))
	require.NoError(t, c.ArmItem("1"))
	require.NoError(t, c.Drop("fruit"))
	require.NoError(t, c.ArmItem("0"))
	require.NoError(t, c.Drop("veg"))

	assert.Equal(t, []string{"1"}, c.Bucket("fruit"))
	assert.Equal(t, []string{"0"}, c.Bucket("veg"))
	assert.Equal(t, []string{"2"}, c.Pool())

	a, err := c.Answer()
	require.NoError(t, err)
	assert.Equal(t, domain.DragDropAnswer{Buckets: map[string][]string{"fruit": {"1"}, "veg": {"0"}}}, a)

	require.NoError(t, c.ReturnToPool("1"))
	assert.Empty(t, c.Bucket("fruit"))
	a, err = c.Answer()
	require.NoError(t, err)
	assert.Equal(t, domain.DragDropAnswer{Buckets: map[string][]string{"fruit": {}, "veg": {"0"}}}, a)
}

func TestDragDrop_ExactlyOnePlaceUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cats := []string{"a", "b", "c"}
	for run := 0; run < 200; run++ {
		n := 1 + rng.Intn(6)
		c := NewDragDrop(cats, keyed(n))
		for step := 0; step < 40; step++ {
			key := strconv.Itoa(rng.Intn(n))
			switch rng.Intn(3) {
			case 0:
				_ = c.ArmItem(key)
			case 1:
				_ = c.Drop(cats[rng.Intn(len(cats))])
			default:
				_ = c.ReturnToPool(key)
			}

			count := make(map[string]int)
			for _, k := range c.Pool() {
				count[k]++
			}
			for _, cat := range cats {
				for _, k := range c.Bucket(cat) {
					count[k]++
				}
			}
			for i := 0; i < n; i++ {
				require.Equal(t, 1, count[strconv.Itoa(i)], "item %d", i)
			}
		}
	}
}

func TestDragDrop_Reset(t *testing.T) {
	c := NewDragDrop([]string{"a", "b"}, keyed(3))
	c.Reset(domain.DragDropAnswer{Buckets: map[string][]string{"a": {"2", "0"}, "b": {"0", "7"}, "z": {"1"}}})
	assert.Equal(t, []string{"2", "0"}, c.Bucket("a"))
	assert.Empty(t, c.Bucket("b"))
	assert.Equal(t, []string{"1"}, c.Pool())
}

func TestDragDrop_EmptyCategoryNameIsABucket(t *testing.T) {
	c := NewDragDrop([]string{"", "veg"}, keyed(2))
	require.NoError(t, c.ArmItem("0"))
	require.NoError(t, c.Drop(""))

	assert.Equal(t, []string{"0"}, c.Bucket(""))
	assert.Equal(t, []string{"1"}, c.Pool())
	cat, ok := c.Location("0")
	assert.True(t, ok)
	assert.Equal(t, "", cat)
	_, ok = c.Location("1")
	assert.False(t, ok)

	a, err := c.Answer()
	require.NoError(t, err)
	assert.Equal(t, domain.DragDropAnswer{Buckets: map[string][]string{"": {"0"}, "veg": {}}}, a)

	require.NoError(t, c.ReturnToPool("0"))
	assert.Equal(t, []string{"0", "1"}, c.Pool())
	assert.Empty(t, c.Bucket(""))

	c.Reset(domain.DragDropAnswer{Buckets: map[string][]string{"": {"1"}}})
	assert.Equal(t, []string{"1"}, c.Bucket(""))
	assert.Equal(t, []string{"0"}, c.Pool())
}

func TestDragDrop_DuplicateItemKeysListedOnce(t *testing.T) {
	items := []domain.KeyedOption{
		{Key: "0", Option: domain.Option{Text: "apple"}},
		{Key: "1", Option: domain.Option{Text: "carrot"}},
		{Key: "0", Option: domain.Option{Text: "pear"}},
	}
	c := NewDragDrop([]string{"fruit"}, items)
	assert.Equal(t, []string{"0", "1"}, c.Pool())
	require.Len(t, c.Items(), 2)
	assert.Equal(t, "apple", c.Items()[0].Option.Text)

	require.NoError(t, c.ArmItem("0"))
	require.NoError(t, c.Drop("fruit"))
	assert.Equal(t, []string{"1"}, c.Pool())
	assert.Equal(t, []string{"0"}, c.Bucket("fruit"))
}
