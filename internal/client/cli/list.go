package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pharmadmin/internal/client/changes"
	"github.com/dmitrijs2005/pharmadmin/internal/client/listing"
	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
)

// List opens the list screen of a collection, or refreshes the current one.
// Opening a screen starts with a fresh filter state.
func (a *App) List(ctx context.Context, args []string) error {
	if len(args) > 0 {
		r, ok := models.ParseResource(args[0])
		if !ok {
			return usageError("list <products|categories|orders|customers|banners>")
		}
		a.resource = r
		a.list = listing.New(a.config.PageSize)
		_ = a.list.SetSort("createdAt", listing.SortDesc)
	}
	if a.list == nil {
		return usageError("list <products|categories|orders|customers|banners>")
	}
	return a.fetch(ctx)
}

func (a *App) Filter(ctx context.Context, args []string) error {
	if a.list == nil || len(args) == 0 {
		return usageError("filter <key> [value] (after list)")
	}
	a.list.SetFilter(args[0], strings.Join(args[1:], " "))
	return a.fetch(ctx)
}

func (a *App) ClearFilters(ctx context.Context) error {
	if a.list == nil {
		return usageError("clearfilters (after list)")
	}
	a.list.Clear()
	return a.fetch(ctx)
}

func (a *App) Sort(ctx context.Context, args []string) error {
	if a.list == nil || len(args) == 0 || len(args) > 2 {
		return usageError("sort <field> [asc|desc] (after list)")
	}
	order := listing.SortAsc
	if len(args) == 2 {
		order = args[1]
	}
	if err := a.list.SetSort(args[0], order); err != nil {
		return err
	}
	return a.fetch(ctx)
}

func (a *App) Page(ctx context.Context, args []string) error {
	if a.list == nil || len(args) != 1 {
		return usageError("page <n> (after list)")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return usageError("page <n> (after list)")
	}
	if !a.list.SetPage(n) {
		fmt.Fprintf(a.out, "No page %d (pages: %d)\n", n, a.list.TotalPages())
		return nil
	}
	return a.fetch(ctx)
}

func (a *App) Next(ctx context.Context) error {
	if a.list == nil {
		return usageError("next (after list)")
	}
	if !a.list.Next() {
		fmt.Fprintln(a.out, "Already on the last page.")
		return nil
	}
	return a.fetch(ctx)
}

func (a *App) Prev(ctx context.Context) error {
	if a.list == nil {
		return usageError("prev (after list)")
	}
	if !a.list.Prev() {
		fmt.Fprintln(a.out, "Already on the first page.")
		return nil
	}
	return a.fetch(ctx)
}

// fetch loads the current page and prints it.
func (a *App) fetch(ctx context.Context) error {
	q := a.list.Query()
	var (
		headers []string
		rows    [][]string
		p       models.Pagination
	)

	switch a.resource {
	case models.ResourceProducts:
		page, err := a.catalog.Products(ctx, q)
		if err != nil {
			return err
		}
		headers = []string{"ID", "Name", "Brand", "Category", "Price", "Stock", "In stock"}
		for _, x := range page.Items {
			rows = append(rows, []string{x.ID, x.Name, x.Brand, x.Category, money(x.Price), strconv.Itoa(x.Stock), yesNo(x.InStock)})
		}
		p = page.Pagination
	case models.ResourceCategories:
		page, err := a.catalog.Categories(ctx, q)
		if err != nil {
			return err
		}
		headers = []string{"ID", "Name", "Slug", "Active"}
		for _, x := range page.Items {
			rows = append(rows, []string{x.ID, x.Name, x.Slug, yesNo(x.IsActive)})
		}
		p = page.Pagination
	case models.ResourceOrders:
		page, err := a.catalog.Orders(ctx, q)
		if err != nil {
			return err
		}
		headers = []string{"ID", "Number", "Customer", "Total", "Status", "Payment"}
		for _, x := range page.Items {
			rows = append(rows, []string{x.ID, x.OrderNumber, x.Customer.Name, money(x.TotalAmount), x.Status, x.PaymentStatus})
		}
		p = page.Pagination
	case models.ResourceCustomers:
		page, err := a.catalog.Customers(ctx, q)
		if err != nil {
			return err
		}
		headers = []string{"ID", "Name", "Email", "Phone", "Active", "Orders"}
		for _, x := range page.Items {
			rows = append(rows, []string{x.ID, x.Name, x.Email, x.Phone, yesNo(x.IsActive), strconv.Itoa(x.Orders)})
		}
		p = page.Pagination
	case models.ResourceBanners:
		page, err := a.catalog.Banners(ctx, q)
		if err != nil {
			return err
		}
		headers = []string{"ID", "Title", "Position", "Active"}
		for _, x := range page.Items {
			rows = append(rows, []string{x.ID, x.Title, strconv.Itoa(x.Position), yesNo(x.IsActive)})
		}
		p = page.Pagination
	}

	a.list.Apply(p)
	if len(rows) == 0 {
		fmt.Fprintln(a.out, mutedStyle.Render("No "+a.resource.String()+" found."))
		return nil
	}
	fmt.Fprintln(a.out, renderTable(headers, rows))
	fmt.Fprintln(a.out, a.footer(p))
	return nil
}

func (a *App) footer(p models.Pagination) string {
	from, to := listing.Range(a.list.Page(), a.list.PageSize(), p.Total)
	var pages []string
	for _, n := range listing.Window(a.list.Page(), a.list.TotalPages(), 5) {
		s := strconv.Itoa(n)
		if n == a.list.Page() {
			s = "[" + s + "]"
		}
		pages = append(pages, s)
	}
	line := fmt.Sprintf("Showing %d-%d of %d  %s", from, to, p.Total, strings.Join(pages, " "))
	if f := a.list.Filters(); len(f) > 0 {
		var parts []string
		for _, k := range slices.Sorted(maps.Keys(f)) {
			parts = append(parts, k+"="+f[k])
		}
		line += "  filters: " + strings.Join(parts, ", ")
	}
	return mutedStyle.Render(line)
}

func money(v float64) string {
	return changes.CurrencySymbol + strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
