// Package services contains the application services used by the admin REPL:
// sign-in and session restore, collection browsing, record editing and the
// dashboard panel. Services sit between the REPL commands and the API client
// so commands never touch transport details.
package services
