package cli

import (
	"context"
	"fmt"

	"github.com/lshigami/edugress/internal/result"
)

func (a *App) courses(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}
	list, err := a.gw.ListMyCourses(ctx, token)
	if err != nil {
		a.alert(err)
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "You have no courses yet.")
	}
	for _, c := range list {
		fmt.Fprintf(a.out, "%4d  %s (%d lessons)\n", c.ID, c.Name, len(c.Lessons))
	}
	return nil
}

func (a *App) tests(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}
	list, err := a.gw.ListTests(ctx, token)
	if err != nil {
		a.alert(err)
		return err
	}
	for _, t := range list {
		fmt.Fprintf(a.out, "%4d  %s (%d questions)\n", t.ID, t.Name, t.QuestionCount)
	}
	return nil
}

func (a *App) exams(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}
	list, err := a.gw.ListExams(ctx, token)
	if err != nil {
		a.alert(err)
		return err
	}
	for _, e := range list {
		fmt.Fprintf(a.out, "%4d  %s  %s\n", e.ID, e.Name, e.Date)
	}
	return nil
}

func (a *App) progress(ctx context.Context, examID int) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}
	p, err := a.gw.GetStudentProgress(ctx, token, examID)
	if err != nil {
		a.alert(err)
		return err
	}
	for _, s := range p.Subjects {
		pct := "0%"
		if s.MaxScore.IsPositive() {
			pct = result.Percentage(int(s.Score.IntPart()), int(s.MaxScore.IntPart()))
		}
		fmt.Fprintf(a.out, "%-20s %s / %s  (%s)\n", s.Name, s.Score.String(), s.MaxScore.String(), pct)
	}
	return nil
}

func (a *App) roadmap(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}
	rm, err := a.gw.GetRoadmap(ctx, token)
	if err != nil {
		a.alert(err)
		return err
	}
	for _, s := range rm.Steps {
		mark := "[ ]"
		if s.IsCompleted {
			mark = "[x]"
		}
		fmt.Fprintf(a.out, "%s %d. %s\n", mark, s.Order+1, s.Title)
	}
	return nil
}
