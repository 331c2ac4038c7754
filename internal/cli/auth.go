package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/edugress/internal/gateway"
)

func (a *App) login(ctx context.Context, args []string) error {
	username := ""
	if len(args) > 0 {
		username = args[0]
	}
	if username == "" {
		line, ok := a.prompt("Username: ")
		if !ok {
			return errors.New("login cancelled")
		}
		username = strings.TrimSpace(line)
	}
	password, ok := a.prompt("Password: ")
	if !ok {
		return errors.New("login cancelled")
	}

	sess, err := a.gw.Login(ctx, username, password)
	if err != nil {
		a.alert(err)
		return err
	}
	if err := a.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	a.log.Info().Int("user_id", sess.User.ID).Msg("signed in")
	fmt.Fprintf(a.out, "Signed in as %s (%s).\n", sess.User.Name(), sess.User.Role)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// whoami refreshes the stored user from the backend.
func (a *App) whoami(ctx context.Context) error {
	sess, err := a.sessions.Load(ctx)
	if err != nil {
		return err
	}
	user, err := a.gw.GetUser(ctx, sess.Token)
	if err != nil {
		a.alert(err)
		return err
	}
	sess.User = user
	if err := a.sessions.Save(ctx, sess); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\nCoins: %s\n", user.Name(), user.Role, user.Coins.String())
	if exp, ok := gateway.TokenExpiry(sess.Token); ok {
		fmt.Fprintf(a.out, "Session valid until %s\n", exp.Local().Format("2006-01-02 15:04"))
	}
	if user.IsOfflineEligible {
		fmt.Fprintln(a.out, "Offline courses available.")
	}
	return nil
}
