package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pharmadmin/internal/client/changes"
	"github.com/dmitrijs2005/pharmadmin/internal/client/form"
	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
	"github.com/dmitrijs2005/pharmadmin/internal/client/save"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

var errNoRecordOpen = errors.New("no record open, use 'edit' or 'new'")

// target is a parsed field reference: "price", "weight.unit" or "tags[2]".
// Index is 0-based and -1 when no item is addressed.
type target struct {
	field string
	sub   string
	index int
}

func parseTarget(s string) (target, error) {
	t := target{index: -1}
	if open := strings.IndexByte(s, '['); open >= 0 {
		if !strings.HasSuffix(s, "]") {
			return t, fmt.Errorf("bad field reference %q", s)
		}
		n, err := strconv.Atoi(s[open+1 : len(s)-1])
		if err != nil || n < 1 {
			return t, fmt.Errorf("bad item number in %q", s)
		}
		t.field, t.index = s[:open], n-1
		return t, nil
	}
	t.field, t.sub, _ = strings.Cut(s, ".")
	return t, nil
}

func (t target) slot() form.Slot {
	return form.Slot{Field: t.field, Index: t.index}
}

func (a *App) draft() (*form.Draft, error) {
	if a.edit == nil {
		return nil, errNoRecordOpen
	}
	return a.edit.Draft(), nil
}

// leaveEdit asks before dropping unsaved changes. It reports false when the
// user wants to keep editing.
func (a *App) leaveEdit() (bool, error) {
	if a.edit == nil {
		return true, nil
	}
	if !a.edit.Changes().Empty() {
		ok, err := GetConfirmation(a.reader, "Discard unsaved changes?", a.out)
		if err != nil || !ok {
			return false, err
		}
	}
	a.edit.Abandon()
	a.edit = nil
	return true, nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("edit <resource> <id>")
	}
	r, ok := models.ParseResource(args[0])
	if !ok {
		return usageError("edit <products|categories|customers|banners> <id>")
	}
	if ok, err := a.leaveEdit(); err != nil || !ok {
		return err
	}

	o, err := a.editor.Open(ctx, r, args[1])
	if err != nil {
		return err
	}
	a.edit = o
	return a.Show(ctx)
}

func (a *App) New(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("new <resource>")
	}
	r, ok := models.ParseResource(args[0])
	if !ok {
		return usageError("new <products|categories|customers|banners>")
	}
	if ok, err := a.leaveEdit(); err != nil || !ok {
		return err
	}

	o, err := a.editor.New(r)
	if err != nil {
		return err
	}
	a.edit = o
	return a.Show(ctx)
}

func (a *App) CloseEdit(ctx context.Context) error {
	_, err := a.leaveEdit()
	return err
}

// reopenFirstSlot backs the padded row Show prints for an emptied list, so
// "f[1]" stays addressable after the last item was removed.
func reopenFirstSlot(d *form.Draft, t target) error {
	if t.index != 0 {
		return nil
	}
	if f, ok := d.Schema().Field(t.field); !ok || f.Kind != form.KindList {
		return nil
	}
	if len(d.List(t.field)) > 0 {
		return nil
	}
	_, err := d.AppendListItem(t.field)
	return err
}

// Show prints the open draft, one row per value.
func (a *App) Show(ctx context.Context) error {
	d, err := a.draft()
	if err != nil {
		return err
	}
	pending := map[form.Slot]form.PendingAsset{}
	for _, p := range a.edit.Assets().List() {
		pending[p.Slot] = p
	}
	mark := func(slot form.Slot, v string) string {
		if p, ok := pending[slot]; ok {
			return v + pendingStyle.Render(" <- "+p.Name)
		}
		return v
	}

	var rows [][]string
	for _, f := range d.Schema().Fields {
		switch f.Kind {
		case form.KindBool:
			rows = append(rows, []string{f.Name, yesNo(d.Bool(f.Name))})
		case form.KindNested:
			for _, s := range f.Sub {
				rows = append(rows, []string{f.Name + "." + s.Name, d.Nested(f.Name, s.Name)})
			}
		case form.KindList:
			for i, v := range d.DisplayList(f.Name) {
				ref := fmt.Sprintf("%s[%d]", f.Name, i+1)
				rows = append(rows, []string{ref, mark(form.Slot{Field: f.Name, Index: i}, v)})
			}
		default:
			v := d.Value(f.Name)
			if f.Kind == form.KindCurrency {
				v = changes.CurrencySymbol + v
			}
			rows = append(rows, []string{f.Name, mark(form.MainSlot(f.Name), v)})
		}
	}

	id := d.ID()
	if id == "" {
		id = "new"
	}
	fmt.Fprintln(a.out, titleStyle.Render(fmt.Sprintf("%s / %s", d.Schema().Resource, id)))
	fmt.Fprintln(a.out, renderTable([]string{"Field", "Value"}, rows))
	return nil
}

func (a *App) Set(ctx context.Context, args []string) error {
	d, err := a.draft()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return usageError("set <field> [value]")
	}
	t, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	value := strings.Join(args[1:], " ")

	switch {
	case t.sub != "":
		return d.SetNestedField(t.field, t.sub, value)
	case t.index >= 0:
		if err := reopenFirstSlot(d, t); err != nil {
			return err
		}
		return d.SetListItem(t.field, t.index, value)
	}
	if f, ok := d.Schema().Field(t.field); ok && f.Kind == form.KindBool {
		b, err := parseYesNo(value)
		if err != nil {
			return err
		}
		return d.SetBool(t.field, b)
	}
	return d.SetField(t.field, value)
}

func (a *App) AddItem(ctx context.Context, args []string) error {
	d, err := a.draft()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("add <list field>")
	}
	i, err := d.AppendListItem(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s[%d]\n", args[0], i+1)
	return nil
}

func (a *App) RemoveItem(ctx context.Context, args []string) error {
	d, err := a.draft()
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return usageError("rm <list field> <n>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return usageError("rm <list field> <n>")
	}
	if err := d.RemoveListItem(args[0], n-1); err != nil {
		return err
	}
	a.edit.Assets().Removed(args[0], n-1)
	return nil
}

// Attach picks a local file for an asset field. The file is uploaded on save.
func (a *App) Attach(ctx context.Context, args []string) error {
	d, err := a.draft()
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return usageError("attach <field>[n] <path>")
	}
	t, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	content, err := readFile(args[1])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[1], err)
	}
	if err := reopenFirstSlot(d, t); err != nil {
		return err
	}

	p, err := a.edit.Assets().Attach(d, t.slot(), filepath.Base(args[1]), content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Attached %s to %s (%d bytes, preview %s)\n",
		p.Name, p.Slot.DisplayName(d.Schema()), len(p.Content), p.Preview[:8])
	return nil
}

func (a *App) Diff(ctx context.Context) error {
	if a.edit == nil {
		return errNoRecordOpen
	}
	r := a.edit.Changes()
	if r.Empty() {
		fmt.Fprintln(a.out, mutedStyle.Render("No changes."))
		return nil
	}
	for _, c := range r {
		fmt.Fprintln(a.out, "- "+c)
	}
	return nil
}

// Save runs the two-phase save. The change list is shown in a box and must be
// confirmed.
func (a *App) Save(ctx context.Context) error {
	if a.edit == nil {
		return errNoRecordOpen
	}
	confirm := save.ConfirmFunc(func(ctx context.Context, r changes.Record) (bool, error) {
		fmt.Fprintln(a.out, confirmStyle.Render(changes.Summarize(r, a.config.ConfirmLimit)))
		return GetConfirmation(a.reader, "Save?", a.out)
	})

	out, err := a.edit.Save(ctx, confirm)
	switch {
	case err != nil && out.State == save.Failed:
		fmt.Fprintln(a.out, mutedStyle.Render("Save failed; your edits are kept."))
		return err
	case err != nil:
		return err
	case out.State == save.Idle:
		fmt.Fprintln(a.out, "Save cancelled.")
		return nil
	}

	fmt.Fprintln(a.out, successStyle.Render(fmt.Sprintf("Saved %s %s (%d changes)", a.edit.Draft().Schema().Resource, out.ID, len(out.Changes))))
	return nil
}

func (a *App) Discard(ctx context.Context) error {
	if a.edit == nil {
		return errNoRecordOpen
	}
	if err := a.edit.Discard(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Draft reset.")
	return nil
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "on":
		return true, nil
	case "n", "no", "false", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("expected yes or no, got %q", s)
}
