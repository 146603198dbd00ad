// Package store keeps the sandbox API's records in memory.
//
// Records are JSON objects (map[string]any) grouped by collection. Every
// record carries a string "_id" and RFC 3339 "createdAt"/"updatedAt"
// timestamps assigned by the store. Callers always receive deep copies.
package store
