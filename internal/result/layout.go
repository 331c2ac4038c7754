package result

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lshigami/edugress/internal/answer"
	"github.com/lshigami/edugress/internal/domain"
)

// Row marks: a picked row is "+" or "x" once the correct answer is known;
// revealing also points at the rows that should have been picked.
const (
	markRight  = "+"
	markWrong  = "x"
	markMissed = "<- correct"
)

// writeLayout draws the answered question with the same rows the answer
// screen used. It reports false when the question has no rows to draw.
func writeLayout(b *strings.Builder, aq domain.AnsweredQuestion, reveal bool) bool {
	q := aq.Question
	switch q.QuestionType {
	case domain.SingleSelect, domain.MultipleSelect:
		if len(q.Options) == 0 {
			return false
		}
	case domain.Match:
		if len(q.Left) == 0 {
			return false
		}
	case domain.DragDrop:
		if len(q.Items) == 0 {
			return false
		}
	}
	switch q.QuestionType {
	case domain.SingleSelect:
		user, _ := aq.UserAnswer.(domain.SingleAnswer)
		correct, known := aq.CorrectAnswer.(domain.SingleAnswer)
		picked := aq.UserAnswer != nil
		for i, o := range q.Options {
			on := picked && user.Option == o
			fmt.Fprintf(b, "  %s %d. %s%s\n", radio(on), i+1, optionText(o),
				rowMark(on, known && correct.Option == o, known, reveal))
		}
	case domain.MultipleSelect:
		user, _ := aq.UserAnswer.(domain.MultipleAnswer)
		correct, known := aq.CorrectAnswer.(domain.MultipleAnswer)
		for i, o := range q.Options {
			on := containsOption(user.Options, o)
			fmt.Fprintf(b, "  %s %d. %s%s\n", check(on), i+1, optionText(o),
				rowMark(on, known && containsOption(correct.Options, o), known, reveal))
		}
	case domain.QuantitativeCharacteristics:
		user, _ := aq.UserAnswer.(domain.QuantitativeAnswer)
		correct, known := aq.CorrectAnswer.(domain.QuantitativeAnswer)
		for _, cmp := range answer.Comparisons {
			on := user.Choice == cmp.Letter
			fmt.Fprintf(b, "  %s %s (%s)%s\n", radio(on), cmp.Letter, cmp.Symbol,
				rowMark(on, known && correct.Choice == cmp.Letter, known, reveal))
		}
	case domain.Match:
		writeMatch(b, aq, reveal)
	case domain.DragDrop:
		writeBuckets(b, aq, reveal)
	default:
		return false
	}
	return true
}

// rowMark is the suffix of one row. Unpicked rows stay bare unless the
// answer is revealed and the row was the right pick.
func rowMark(picked, right, known, reveal bool) string {
	switch {
	case !known:
		return ""
	case picked && right:
		return "  " + markRight
	case picked:
		return "  " + markWrong
	case right && reveal:
		return "  " + markMissed
	default:
		return ""
	}
}

func writeMatch(b *strings.Builder, aq domain.AnsweredQuestion, reveal bool) {
	q := aq.Question
	user, _ := aq.UserAnswer.(domain.MatchAnswer)
	correct, known := aq.CorrectAnswer.(domain.MatchAnswer)
	if q.Description.Column1 != "" || q.Description.Column2 != "" {
		fmt.Fprintf(b, "  %s | %s\n", q.Description.Column1, q.Description.Column2)
	}
	for i, l := range q.Left {
		pair := "-"
		j, paired := user.Pairs[i]
		if paired {
			pair = letter(j) + ". " + rightText(q.Right, j)
		}
		want, hasWant := correct.Pairs[i]
		mark := ""
		switch {
		case !known:
		case paired && hasWant && j == want:
			mark = "  " + markRight
		case paired || hasWant:
			mark = "  " + markWrong
			if reveal && hasWant {
				mark += " (" + letter(want) + ". " + rightText(q.Right, want) + ")"
			}
		}
		fmt.Fprintf(b, "  %d. %s  =>  %s%s\n", i+1, optionText(l.Option), pair, mark)
	}
	for j, r := range q.Right {
		fmt.Fprintf(b, "    %s. %s\n", letter(j), optionText(r.Option))
	}
}

func writeBuckets(b *strings.Builder, aq domain.AnsweredQuestion, reveal bool) {
	q := aq.Question
	user, _ := aq.UserAnswer.(domain.DragDropAnswer)
	correct, known := aq.CorrectAnswer.(domain.DragDropAnswer)

	names := make(map[string]string, len(q.Items))
	num := make(map[string]int, len(q.Items))
	var keys []string
	for i, it := range q.Items {
		if _, dup := num[it.Key]; dup {
			continue
		}
		names[it.Key] = optionText(it.Option)
		num[it.Key] = i + 1
		keys = append(keys, it.Key)
	}
	placedIn := bucketOf(user)
	wantIn := bucketOf(correct)

	row := func(key string, placed bool, cat string) {
		want, hasWant := wantIn[key]
		mark := ""
		switch {
		case !known:
		case placed && hasWant && want == cat:
			mark = "  " + markRight
		case placed || hasWant:
			mark = "  " + markWrong
			if reveal && hasWant {
				mark += " (" + want + ")"
			}
		}
		label := names[key]
		if label == "" {
			label = key
		}
		fmt.Fprintf(b, "    %d. %s%s\n", num[key], label, mark)
	}

	b.WriteString("  Pool:\n")
	for _, key := range keys {
		if _, ok := placedIn[key]; !ok {
			row(key, false, "")
		}
	}
	for j, cat := range categoriesOf(q, user) {
		fmt.Fprintf(b, "  %s. %s:\n", letter(j), cat)
		for _, key := range user.Buckets[cat] {
			row(key, true, cat)
		}
	}
}

// bucketOf inverts an answer into item key -> category.
func bucketOf(a domain.DragDropAnswer) map[string]string {
	out := make(map[string]string)
	for cat, keys := range a.Buckets {
		for _, k := range keys {
			out[k] = cat
		}
	}
	return out
}

func categoriesOf(q domain.Question, a domain.DragDropAnswer) []string {
	if len(q.Categories) > 0 {
		return q.Categories
	}
	cats := make([]string, 0, len(a.Buckets))
	for c := range a.Buckets {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

func containsOption(opts []domain.Option, o domain.Option) bool {
	for _, x := range opts {
		if x == o {
			return true
		}
	}
	return false
}

func rightText(col []domain.KeyedOption, j int) string {
	if j >= 0 && j < len(col) {
		return optionText(col[j].Option)
	}
	return fmt.Sprintf("#%d", j+1)
}

func optionText(o domain.Option) string {
	switch {
	case o.Img != "" && o.Text == "":
		return "[image] " + o.Img
	case o.Img != "":
		return o.Text + " [image] " + o.Img
	default:
		return o.Text
	}
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

func letter(i int) string {
	return string(rune('a' + i))
}
