package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lshigami/edugress/internal/answer"
	"github.com/lshigami/edugress/internal/domain"
)

// parseIndex turns a 1-based number into a 0-based index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not an option number", s)
	}
	return n - 1, nil
}

// parseLetter turns a, b, c... into 0, 1, 2...
func parseLetter(s string) (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	ch := strings.ToLower(s)[0]
	if ch < 'a' || ch > 'z' {
		return 0, false
	}
	return int(ch - 'a'), true
}

func letter(i int) string {
	return string(rune('a' + i))
}

func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
}

// splitToken separates "2b" into "2" and "b".
func splitToken(tok string) []string {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i == 0 || i == len(tok) {
		return []string{tok}
	}
	return []string{tok[:i], tok[i:]}
}

func tokens(input string) []string {
	var out []string
	for _, f := range fields(input) {
		out = append(out, splitToken(f)...)
	}
	return out
}

// handleMatch reads numbers as left items and letters as right items, so
// "1 b" or "1b" pairs left 1 with right b.
func handleMatch(c *answer.Match, input string) error {
	toks := tokens(input)
	if len(toks) == 0 {
		return fmt.Errorf("type a left number and a right letter, e.g. 1b")
	}
	for _, tok := range toks {
		if j, ok := parseLetter(tok); ok {
			if err := c.PickRight(j); err != nil {
				return err
			}
			continue
		}
		i, err := parseIndex(tok)
		if err != nil {
			return err
		}
		if err := c.ArmLeft(i); err != nil {
			return err
		}
	}
	return nil
}

// handleDragDrop reads numbers as items and letters as categories; "-"
// returns the armed item to the pool.
func handleDragDrop(c *answer.DragDrop, input string) error {
	toks := tokens(input)
	if len(toks) == 0 {
		return fmt.Errorf("type an item number and a category letter, e.g. 2a")
	}
	items := c.Items()
	cats := c.Categories()
	for _, tok := range toks {
		if tok == "-" {
			if c.Armed() == "" {
				return answer.ErrNothingArmed
			}
			if err := c.ReturnToPool(c.Armed()); err != nil {
				return err
			}
			continue
		}
		if j, ok := parseLetter(tok); ok {
			if j >= len(cats) {
				return fmt.Errorf("no category %s", tok)
			}
			if err := c.Drop(cats[j]); err != nil {
				return err
			}
			continue
		}
		i, err := parseIndex(tok)
		if err != nil {
			return err
		}
		if i >= len(items) {
			return fmt.Errorf("no item %d", i+1)
		}
		if err := c.ArmItem(items[i].Key); err != nil {
			return err
		}
	}
	return nil
}

func renderMatch(b *strings.Builder, q domain.Question, c *answer.Match) {
	if q.Description.Column1 != "" || q.Description.Column2 != "" {
		fmt.Fprintf(b, "  %s | %s\n", q.Description.Column1, q.Description.Column2)
	}
	right := c.Right()
	for i, l := range c.Left() {
		marker := " "
		if c.Armed() == i {
			marker = ">"
		}
		pair := "-"
		if j, ok := c.PairOf(i); ok {
			pair = letter(j) + ". " + optionText(right[j].Option)
		}
		fmt.Fprintf(b, " %s%d. %s  =>  %s\n", marker, i+1, optionText(l.Option), pair)
	}
	for j, r := range right {
		fmt.Fprintf(b, "    %s. %s\n", letter(j), optionText(r.Option))
	}
	b.WriteString("Pair items with a number and a letter, e.g. 1b.\n")
}

func renderDragDrop(b *strings.Builder, c *answer.DragDrop) {
	names := make(map[string]string, len(c.Items()))
	num := make(map[string]int, len(c.Items()))
	for i, it := range c.Items() {
		names[it.Key] = optionText(it.Option)
		num[it.Key] = i + 1
	}
	label := func(key string) string {
		s := fmt.Sprintf("%d. %s", num[key], names[key])
		if c.Armed() == key {
			s = ">" + s
		}
		return s
	}
	b.WriteString("  Pool:\n")
	for _, key := range c.Pool() {
		fmt.Fprintf(b, "    %s\n", label(key))
	}
	for j, cat := range c.Categories() {
		fmt.Fprintf(b, "  %s. %s:\n", letter(j), cat)
		for _, key := range c.Bucket(cat) {
			fmt.Fprintf(b, "    %s\n", label(key))
		}
	}
	b.WriteString("Move items with a number and a letter, e.g. 2a; 2- puts item 2 back.\n")
}

func optionText(o domain.Option) string {
	if o.Img != "" && o.Text == "" {
		return "[image] " + o.Img
	}
	if o.Img != "" {
		return o.Text + " [image] " + o.Img
	}
	return o.Text
}

func radio(on bool) string {
	if on {
		return "(*)"
	}
	return "( )"
}

func check(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func indent(s string) string {
	return "    " + strings.ReplaceAll(s, "\n", "\n    ")
}
