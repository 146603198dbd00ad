// Package save runs the two-phase save of an edited record: describe the
// changes, get confirmation, upload pending files, then submit the record
// body referencing the uploaded URLs.
//
// A save either submits the whole record or nothing: when any upload fails
// the body is never sent, and on any failure the draft and snapshot are left
// exactly as they were so the user can retry.
package save
