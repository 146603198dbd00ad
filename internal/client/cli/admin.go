package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
)

// Delete removes a record after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("delete <resource> <id>")
	}
	r, ok := models.ParseResource(args[0])
	if !ok {
		return usageError("delete <resource> <id>")
	}

	ok, err := GetConfirmation(a.reader, fmt.Sprintf("Delete %s %s?", r, args[1]), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.catalog.Delete(ctx, r, args[1]); err != nil {
		return err
	}
	if a.edit != nil && a.edit.Draft().ID() == args[1] {
		a.edit.Abandon()
		a.edit = nil
	}
	fmt.Fprintln(a.out, successStyle.Render("Deleted."))
	return nil
}

// OrderStatus changes the fulfilment and, optionally, payment status of an
// order.
func (a *App) OrderStatus(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return usageError("status <order id> <status> [payment status]")
	}
	upd := models.StatusUpdate{Status: args[1]}
	if len(args) == 3 {
		upd.PaymentStatus = args[2]
	}

	o, err := a.catalog.UpdateOrderStatus(ctx, args[0], upd)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order %s is now %s (payment %s)\n", o.OrderNumber, o.Status, o.PaymentStatus)
	return nil
}

// SetActive blocks or unblocks a customer account.
func (a *App) SetActive(ctx context.Context, args []string, active bool) error {
	if len(args) != 1 {
		if active {
			return usageError("unblock <customer id>")
		}
		return usageError("block <customer id>")
	}

	c, err := a.catalog.SetCustomerActive(ctx, args[0], active)
	if err != nil {
		return err
	}
	state := "blocked"
	if c.IsActive {
		state = "active"
	}
	fmt.Fprintf(a.out, "Customer %s is %s\n", c.Name, state)
	return nil
}
