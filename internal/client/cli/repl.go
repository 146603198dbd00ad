package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pharmadmin/internal/client/client"
	"github.com/dmitrijs2005/pharmadmin/internal/client/save"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Stats(ctx context.Context) error

	List(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	ClearFilters(ctx context.Context) error
	Sort(ctx context.Context, args []string) error
	Page(ctx context.Context, args []string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error

	Edit(ctx context.Context, args []string) error
	New(ctx context.Context, args []string) error
	Show(ctx context.Context) error
	Set(ctx context.Context, args []string) error
	AddItem(ctx context.Context, args []string) error
	RemoveItem(ctx context.Context, args []string) error
	Attach(ctx context.Context, args []string) error
	Diff(ctx context.Context) error
	Save(ctx context.Context) error
	Discard(ctx context.Context) error
	CloseEdit(ctx context.Context) error

	Delete(ctx context.Context, args []string) error
	OrderStatus(ctx context.Context, args []string) error
	SetActive(ctx context.Context, args []string, active bool) error
}

const helpSignedOut = "Available commands: login, help, exit"

const helpSignedIn = `Available commands:
  whoami | stats | logout
  list <products|categories|orders|customers|banners>
  filter <key> [value] | clearfilters | sort <field> [asc|desc]
  page <n> | next | prev
  edit <resource> <id> | new <resource> | show | close
  set <field> [value]       e.g. set price 499, set weight.unit g, set tags[2] cold
  add <list field> | rm <list field> <n>
  attach <field>[n] <path>  e.g. attach mainImage ./pill.png, attach images[1] ./a.png
  diff | save | discard
  delete <resource> <id>
  status <order id> <status> [payment status]
  block <customer id> | unblock <customer id>
  exit`

// runREPL starts a read–eval–print loop for the admin client.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Errors returned by handlers are printed and
// the loop continues. The loop exits on EOF or when the user types "exit" or
// "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pa (%s)> ", strings.TrimSpace(statusFn())))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		reportError(dispatch(ctx, a, cmd, args))
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpSignedOut)
		}
		return nil
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		printlnFn("Please sign in first (login).")
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "stats":
		return a.Stats(ctx)
	case "l", "list":
		return a.List(ctx, args)
	case "filter":
		return a.Filter(ctx, args)
	case "clearfilters":
		return a.ClearFilters(ctx)
	case "sort":
		return a.Sort(ctx, args)
	case "page":
		return a.Page(ctx, args)
	case "next":
		return a.Next(ctx)
	case "prev":
		return a.Prev(ctx)
	case "edit":
		return a.Edit(ctx, args)
	case "new":
		return a.New(ctx, args)
	case "show":
		return a.Show(ctx)
	case "set":
		return a.Set(ctx, args)
	case "add":
		return a.AddItem(ctx, args)
	case "rm":
		return a.RemoveItem(ctx, args)
	case "attach":
		return a.Attach(ctx, args)
	case "diff":
		return a.Diff(ctx)
	case "save":
		return a.Save(ctx)
	case "discard":
		return a.Discard(ctx)
	case "close":
		return a.CloseEdit(ctx)
	case "delete":
		return a.Delete(ctx, args)
	case "status":
		return a.OrderStatus(ctx, args)
	case "block":
		return a.SetActive(ctx, args, false)
	case "unblock":
		return a.SetActive(ctx, args, true)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

// usageError is returned by handlers for malformed arguments.
type usageError string

func (u usageError) Error() string { return "Usage: " + string(u) }

func reportError(err error) {
	switch {
	case err == nil:
	case errors.Is(err, save.ErrNoChanges):
		printlnFn(mutedStyle.Render("No changes detected."))
	case client.IsAuthError(err):
		printlnFn(errorStyle.Render(client.Message(err)), "Use 'login' to sign in again.")
	default:
		var u usageError
		if errors.As(err, &u) {
			printlnFn(u.Error())
			return
		}
		printlnFn(errorStyle.Render("Error: " + client.Message(err)))
	}
}
