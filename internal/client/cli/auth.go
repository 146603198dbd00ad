package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/pharmadmin/internal/client/changes"
	"github.com/dmitrijs2005/pharmadmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in. An open edit session blocks a
// change of account.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, successStyle.Render("Signed in as "+id.Name))
	return nil
}

// Logout signs out and drops any open edit session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	if a.edit != nil {
		a.edit.Abandon()
		a.edit = nil
	}
	a.resource, a.list = "", nil
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.auth.WhoAmI(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s\n", id.Name, id.Email, id.Role)
	return nil
}

// Stats prints the dashboard panel; a failed fetch is shown as unavailable.
func (a *App) Stats(ctx context.Context) error {
	st, ok := a.dashboard.Stats(ctx)
	if !ok {
		fmt.Fprintln(a.out, mutedStyle.Render("stats unavailable"))
		return nil
	}
	fmt.Fprintln(a.out, renderTable(
		[]string{"Products", "Orders", "Pending", "Customers", "Revenue", "Low stock"},
		[][]string{{
			strconv.Itoa(st.TotalProducts),
			strconv.Itoa(st.TotalOrders),
			strconv.Itoa(st.PendingOrders),
			strconv.Itoa(st.TotalCustomers),
			changes.CurrencySymbol + strconv.FormatFloat(st.Revenue, 'f', 2, 64),
			strconv.Itoa(st.LowStock),
		}},
	))
	return nil
}
