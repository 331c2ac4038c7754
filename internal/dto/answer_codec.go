package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lshigami/edugress/internal/domain"
)

// answerEnvelope is the {"answer": ...} wrapper used by every question kind
// except DragDrop.
type answerEnvelope struct {
	Answer any `json:"answer"`
}

type rawEnvelope struct {
	Answer json.RawMessage `json:"answer"`
}

// EncodeUserAnswer produces the `user_answer` payload for the submit endpoint.
//
// The backend schema differs per kind: DragDrop answers are sent as the bare
// category map {"<category>": ["<item>", ...]}, all other kinds are wrapped
// as {"answer": <value>}. The remote contract is fixed, so this asymmetry must
// be kept as is.
func EncodeUserAnswer(a domain.UserAnswer) (json.RawMessage, error) {
	var v any
	switch ans := a.(type) {
	case domain.SingleAnswer:
		v = answerEnvelope{Answer: ans.Option}
	case domain.MultipleAnswer:
		opts := ans.Options
		if opts == nil {
			opts = []domain.Option{}
		}
		v = answerEnvelope{Answer: opts}
	case domain.MatchAnswer:
		pairs := make(map[string]string, len(ans.Pairs))
		for l, r := range ans.Pairs {
			pairs[strconv.Itoa(l)] = strconv.Itoa(r)
		}
		v = answerEnvelope{Answer: pairs}
	case domain.ShortOpenAnswer:
		v = answerEnvelope{Answer: ans.Text}
	case domain.OpenParagraphAnswer:
		v = answerEnvelope{Answer: ans.Text}
	case domain.QuantitativeAnswer:
		v = answerEnvelope{Answer: ans.Choice}
	case domain.DragDropAnswer:
		buckets := make(map[string][]string, len(ans.Buckets))
		for cat, items := range ans.Buckets {
			if items == nil {
				items = []string{}
			}
			buckets[cat] = items
		}
		v = buckets
	case nil:
		return nil, fmt.Errorf("encode answer: nil answer")
	default:
		return nil, fmt.Errorf("encode answer: unsupported answer type %T", a)
	}
	return json.Marshal(v)
}

// DecodeUserAnswer parses a `user_answer` or `correct_answer` value for the
// given kind. Null, empty and {} payloads decode to a nil answer. Both the
// wrapped and the bare form are accepted for DragDrop and Match, since older
// records were stored either way.
func DecodeUserAnswer(t domain.QuestionType, raw json.RawMessage) (domain.UserAnswer, error) {
	raw = bytes.TrimSpace(raw)
	if isEmptyPayload(raw) {
		return nil, nil
	}

	inner := raw
	var env rawEnvelope
	wrapped := false
	if raw[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, fmt.Errorf("decode %s answer: %w", t, err)
		}
		if _, ok := probe["answer"]; ok && len(probe) == 1 {
			if err := json.Unmarshal(raw, &env); err != nil {
				return nil, fmt.Errorf("decode %s answer: %w", t, err)
			}
			inner = bytes.TrimSpace(env.Answer)
			wrapped = true
		}
	}
	if isEmptyPayload(inner) {
		return nil, nil
	}

	switch t {
	case domain.SingleSelect:
		if !wrapped {
			return nil, fmt.Errorf("decode %s answer: missing answer envelope", t)
		}
		var opt domain.Option
		if inner[0] == '[' {
			// Some records store a one-element list for single select.
			var opts []domain.Option
			if err := json.Unmarshal(inner, &opts); err != nil {
				return nil, fmt.Errorf("decode %s answer: %w", t, err)
			}
			if len(opts) == 0 {
				return nil, nil
			}
			opt = opts[0]
		} else if err := json.Unmarshal(inner, &opt); err != nil {
			return nil, fmt.Errorf("decode %s answer: %w", t, err)
		}
		return domain.SingleAnswer{Option: opt}, nil
	case domain.MultipleSelect:
		if !wrapped {
			return nil, fmt.Errorf("decode %s answer: missing answer envelope", t)
		}
		var opts []domain.Option
		if err := json.Unmarshal(inner, &opts); err != nil {
			return nil, fmt.Errorf("decode %s answer: %w", t, err)
		}
		return domain.MultipleAnswer{Options: opts}, nil
	case domain.Match:
		var pairs map[string]string
		if err := json.Unmarshal(inner, &pairs); err != nil {
			return nil, fmt.Errorf("decode %s answer: %w", t, err)
		}
		out := domain.MatchAnswer{Pairs: make(map[int]int, len(pairs))}
		for l, r := range pairs {
			li, err := strconv.Atoi(l)
			if err != nil {
				return nil, fmt.Errorf("decode %s answer: left index %q: %w", t, l, err)
			}
			ri, err := strconv.Atoi(r)
			if err != nil {
				return nil, fmt.Errorf("decode %s answer: right index %q: %w", t, r, err)
			}
			out.Pairs[li] = ri
		}
		return out, nil
	case domain.ShortOpen, domain.OpenParagraph, domain.QuantitativeCharacteristics:
		if !wrapped {
			return nil, fmt.Errorf("decode %s answer: missing answer envelope", t)
		}
		var s string
		if err := json.Unmarshal(inner, &s); err != nil {
			return nil, fmt.Errorf("decode %s answer: %w", t, err)
		}
		switch t {
		case domain.ShortOpen:
			return domain.ShortOpenAnswer{Text: s}, nil
		case domain.OpenParagraph:
			return domain.OpenParagraphAnswer{Text: s}, nil
		default:
			return domain.QuantitativeAnswer{Choice: s}, nil
		}
	case domain.DragDrop:
		var buckets map[string][]string
		if err := json.Unmarshal(inner, &buckets); err != nil {
			return nil, fmt.Errorf("decode %s answer: %w", t, err)
		}
		return domain.DragDropAnswer{Buckets: buckets}, nil
	default:
		return nil, fmt.Errorf("decode answer: unsupported question type %d", int(t))
	}
}

func isEmptyPayload(raw []byte) bool {
	switch string(raw) {
	case "", "null", "{}", `""`, "[]":
		return true
	}
	return false
}
