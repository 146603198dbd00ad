// Package form holds the editable state of one record.
//
// Load seeds a mutable Draft and a frozen Snapshot from a fetched record,
// filling every field the Schema declares with its default. Draft values are
// kept as form strings; Body is the single parse step that turns them into the
// typed JSON body sent to the API. Files picked for upload are tracked by
// Assets until a save consumes them.
package form
