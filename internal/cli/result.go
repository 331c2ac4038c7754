package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lshigami/edugress/internal/result"
	"github.com/lshigami/edugress/internal/storage"
	"github.com/shopspring/decimal"
)

var errSessionMissing = storage.ErrSessionMissing

func (a *App) result(ctx context.Context, attemptID int) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}
	res, err := a.gw.GetResult(ctx, token, attemptID)
	if err != nil {
		a.alert(err)
		return err
	}
	return a.showResult(ctx, result.NewView(res))
}

// showResult prints the result and then accepts "r N" to reveal or hide the
// correct answer of question N and, for graders, "score N VALUE".
func (a *App) showResult(ctx context.Context, v *result.View) error {
	if err := v.Render(a.out); err != nil {
		return err
	}
	if len(v.Result().AnsweredQuestions) == 0 {
		return nil
	}
	fmt.Fprintln(a.out, "\nType r N to reveal an answer, score N VALUE to grade, or q to leave.")
	for {
		line, ok := a.prompt("> ")
		if !ok {
			return nil
		}
		f := strings.Fields(line)
		if len(f) == 0 {
			continue
		}
		switch f[0] {
		case "q", ":q", "quit":
			return nil
		case "r", "reveal":
			n, err := questionNumber(f)
			if err != nil {
				fmt.Fprintf(a.out, "! %v\n", err)
				continue
			}
			if _, err := v.ToggleReveal(n); err != nil {
				fmt.Fprintf(a.out, "! %v\n", err)
				continue
			}
			_ = v.Render(a.out)
		case "score":
			if len(f) != 3 {
				fmt.Fprintln(a.out, "! usage: score N VALUE")
				continue
			}
			n, err := questionNumber(f)
			if err != nil {
				fmt.Fprintf(a.out, "! %v\n", err)
				continue
			}
			score, err := decimal.NewFromString(f[2])
			if err != nil {
				fmt.Fprintf(a.out, "! %q is not a number\n", f[2])
				continue
			}
			sess, err := a.sessions.Load(ctx)
			if err != nil {
				return err
			}
			if err := v.OverrideScore(ctx, a.gw, sess, n, score); err != nil {
				if errors.Is(err, result.ErrNotGrader) || errors.Is(err, result.ErrScoreOutOfRange) || errors.Is(err, result.ErrNoSuchQuestion) {
					fmt.Fprintf(a.out, "! %v\n", err)
				} else {
					a.alert(err)
				}
				continue
			}
			fmt.Fprintf(a.out, "Score of question %d set to %s.\n", n+1, score.String())
		default:
			fmt.Fprintln(a.out, "! unknown command")
		}
	}
}

func questionNumber(f []string) (int, error) {
	if len(f) < 2 {
		return 0, errors.New("which question?")
	}
	n, err := strconv.Atoi(f[1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not a question number", f[1])
	}
	return n - 1, nil
}
