package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lshigami/edugress/internal/domain"
)

func (a *App) store(ctx context.Context) error {
	products, err := a.shop.Products(ctx)
	if err != nil {
		a.alert(err)
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "The store is empty.")
		return nil
	}
	for _, p := range products {
		fmt.Fprintf(a.out, "%4d  %-30s %8s coins  (%d left)\n", p.ID, p.Name, p.Price.String(), p.Stock)
	}
	return nil
}

func (a *App) cart(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "show" {
		c, err := a.shop.Cart(ctx)
		if err != nil {
			return err
		}
		a.printCart(c)
		return nil
	}
	switch args[0] {
	case "add":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: cart add <productId> [amount]")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid productId %q", args[1])
		}
		amount := 1
		if len(args) == 3 {
			if amount, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("invalid amount %q", args[2])
			}
		}
		products, err := a.shop.Products(ctx)
		if err != nil {
			a.alert(err)
			return err
		}
		for _, p := range products {
			if p.ID == id {
				c, err := a.shop.Add(ctx, p, amount)
				if err != nil {
					return err
				}
				a.printCart(c)
				return nil
			}
		}
		return fmt.Errorf("no product %d in the store", id)
	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("usage: cart remove <productId>")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid productId %q", args[1])
		}
		c, err := a.shop.Remove(ctx, id)
		if err != nil {
			return err
		}
		a.printCart(c)
		return nil
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
}

func (a *App) printCart(c domain.Cart) {
	if c.Empty() {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return
	}
	for _, it := range c.Items {
		fmt.Fprintf(a.out, "%4d  %-30s %3d x %s\n", it.ProductID, it.Name, it.Amount, it.Price.String())
	}
	fmt.Fprintf(a.out, "Total: %s coins\n", c.Total().String())
}

func (a *App) checkout(ctx context.Context, address string) error {
	resp, err := a.shop.Checkout(ctx, address)
	if err != nil {
		a.alert(err)
		return err
	}
	fmt.Fprintf(a.out, "Order %d placed for %s coins.\n", resp.PurchaseID, resp.Total.String())
	if sess, err := a.sessions.Load(ctx); err == nil {
		fmt.Fprintf(a.out, "Coins left: %s\n", sess.User.Coins.String())
	}
	return nil
}

func (a *App) purchases(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}
	list, err := a.gw.ListPurchases(ctx, token)
	if err != nil {
		a.alert(err)
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No purchases yet.")
	}
	for _, p := range list {
		fmt.Fprintf(a.out, "#%d  %s  %s coins  %d item(s)\n", p.ID, p.CreatedAt, p.Total.String(), len(p.Items))
	}
	return nil
}
