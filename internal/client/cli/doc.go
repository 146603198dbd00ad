// Package cli provides the interactive pharmadmin command-line client.
//
// It wires configuration, the persisted session, API services and a REPL
// for browsing and editing the pharmacy catalog. Typical flow: restore or
// sign in, look at the dashboard, list a collection with filters, open a
// record, change fields and attach images, review the change list and save.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command set.
package cli
