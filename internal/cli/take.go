package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/edugress/internal/answer"
	"github.com/lshigami/edugress/internal/renderer"
	"github.com/lshigami/edugress/internal/result"
	"github.com/lshigami/edugress/internal/runner"
)

const takeHelp = "Commands: :submit (:s), :back (:b), :quit (:q). Anything else edits your answer."

func (a *App) take(ctx context.Context, testID int) error {
	r := runner.New(testID, a.gw, a.sessions, a.resume, a.log)
	fmt.Fprintln(a.out, "Loading...")
	if err := r.Load(ctx); err != nil {
		if !errors.Is(err, errSessionMissing) {
			a.alert(err)
			fmt.Fprintln(a.out, "Go back and try again later.")
		}
		return err
	}

	rd := renderer.New()
	shown := -1
	for {
		st := r.State()
		switch st.Phase {
		case runner.Completed:
			fmt.Fprintln(a.out, "\nTest complete.")
			return a.showResult(ctx, result.NewView(st.Result))
		case runner.Failed:
			a.alert(st.Err)
			return st.Err
		case runner.InProgress:
		default:
			return fmt.Errorf("unexpected state %s", st.Phase)
		}

		cur, _ := r.Current()
		d, err := rd.Open(cur)
		if err != nil {
			return err
		}
		if shown != cur.ID {
			fmt.Fprintf(a.out, "\nQuestion %d of %d\n", st.Index+1, st.Total)
			if err := d.Render(a.out); err != nil {
				return err
			}
			fmt.Fprintln(a.out, takeHelp)
			shown = cur.ID
		}

		line, ok := a.prompt("> ")
		if !ok {
			fmt.Fprintln(a.out, "\nYour progress is saved; run the same command to continue.")
			return nil
		}
		switch strings.TrimSpace(line) {
		case ":submit", ":s":
			err := d.Submit(r.OnAnswer(ctx))
			var ve *answer.ValidationError
			switch {
			case errors.As(err, &ve):
				fmt.Fprintf(a.out, "! %s\n", ve.Message)
			case err != nil:
				a.alert(err)
			}
		case ":back", ":b":
			if err := r.Back(); err != nil {
				fmt.Fprintln(a.out, "! This is the first question.")
			} else {
				shown = -1
			}
		case ":quit", ":q":
			fmt.Fprintln(a.out, "Your progress is saved; run the same command to continue.")
			return nil
		default:
			if err := d.Handle(line); err != nil {
				fmt.Fprintf(a.out, "! %v\n", err)
				continue
			}
			if err := d.Render(a.out); err != nil {
				return err
			}
		}
	}
}
