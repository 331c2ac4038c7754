// Package cli is the line-oriented terminal front end.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lshigami/edugress/internal/gateway"
	"github.com/lshigami/edugress/internal/shop"
	"github.com/lshigami/edugress/internal/storage"
	"github.com/rs/zerolog"
)

// Usage lists the commands understood by Run.
const Usage = `usage: edugress [flags] <command> [args]

commands:
  login [username]          sign in and remember the session
  logout                    forget the session
  whoami                    show the signed-in user and coin balance
  courses                   list your courses
  tests                     list the tests you can take
  take <testId>             take (or resume) a test
  result <attemptId>        show a finished attempt
  store                     list store products
  cart show|add|remove      edit the local cart (add <productId> [amount], remove <productId>)
  checkout [address]        buy everything in the cart
  purchases                 list past purchases
  exams                     list progress dashboard exams
  progress <examId>         show your results for an exam
  roadmap                   show your learning roadmap
`

type App struct {
	gw       *gateway.Client
	sessions *storage.SessionRepository
	resume   *storage.ResumptionStore
	shop     *shop.Shop
	log      zerolog.Logger

	in  *bufio.Scanner
	out io.Writer
}

func New(gw *gateway.Client, sessions *storage.SessionRepository, resume *storage.ResumptionStore, sh *shop.Shop, log zerolog.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		gw:       gw,
		sessions: sessions,
		resume:   resume,
		shop:     sh,
		log:      log,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run executes one command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, Usage)
		return errors.New("no command given")
	}
	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "login":
		err = a.login(ctx, rest)
	case "logout":
		err = a.logout(ctx)
	case "whoami":
		err = a.whoami(ctx)
	case "courses":
		err = a.courses(ctx)
	case "tests":
		err = a.tests(ctx)
	case "take":
		err = a.withID(rest, "testId", func(id int) error { return a.take(ctx, id) })
	case "result":
		err = a.withID(rest, "attemptId", func(id int) error { return a.result(ctx, id) })
	case "store":
		err = a.store(ctx)
	case "cart":
		err = a.cart(ctx, rest)
	case "checkout":
		err = a.checkout(ctx, strings.Join(rest, " "))
	case "purchases":
		err = a.purchases(ctx)
	case "exams":
		err = a.exams(ctx)
	case "progress":
		err = a.withID(rest, "examId", func(id int) error { return a.progress(ctx, id) })
	case "roadmap":
		err = a.roadmap(ctx)
	case "help":
		fmt.Fprint(a.out, Usage)
	default:
		fmt.Fprint(a.out, Usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
	if errors.Is(err, storage.ErrSessionMissing) {
		fmt.Fprintln(a.out, "You are not signed in. Please sign in again with: edugress login")
	}
	return err
}

func (a *App) withID(args []string, name string, fn func(int) error) error {
	if len(args) != 1 {
		return fmt.Errorf("expected <%s>", name)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid %s %q", name, args[0])
	}
	return fn(id)
}

// prompt writes label and reads one line; ok is false at end of input.
func (a *App) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return a.in.Text(), true
}

func (a *App) token(ctx context.Context) (string, error) {
	sess, err := a.sessions.Load(ctx)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

// alert prints a backend failure the way the user should see it.
func (a *App) alert(err error) {
	var se *gateway.HTTPStatusError
	var ne *gateway.NetworkError
	switch {
	case errors.As(err, &se) && se.Unauthorized():
		fmt.Fprintln(a.out, "! Your session has expired. Please sign in again.")
	case errors.As(err, &se) && se.Detail != "":
		fmt.Fprintf(a.out, "! %s\n", se.Detail)
	case errors.As(err, &ne):
		fmt.Fprintln(a.out, "! Could not reach the server. Check your connection and try again.")
	default:
		fmt.Fprintf(a.out, "! %v\n", err)
	}
}
