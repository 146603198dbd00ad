// Package client talks to the pharmacy REST API on behalf of the admin client.
//
// # Overview
//
// The package provides:
//  1. The Client contract: sign-in, dashboard stats, and generic
//     list/get/create/update/delete over a named collection, plus Upload for
//     binary assets.
//  2. RESTClient, the HTTP implementation. It attaches the bearer token held
//     by the shared *session.Session, unwraps the {success, data, pagination,
//     message} envelope and maps failures to sentinel errors.
//  3. Collection[T], a typed view of one collection returning models.Page[T].
//
// # Error Handling
//
// Failures are returned as *APIError values wrapping one sentinel, matched
// with errors.Is: ErrUnauthorized (sign in again), ErrValidation (server
// rejected the body, Message is shown verbatim), ErrNotFound, ErrUnavailable
// (transport failure, retry later). A response with success=false is treated
// exactly like a non-2xx status. Nothing is retried.
//
// # Concurrency
//
// RESTClient is safe for concurrent use; uploads for one save run in parallel.
package client
