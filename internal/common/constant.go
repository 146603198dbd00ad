// Package common contains constants and sentinel errors shared by the admin
// client and the sandbox API.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on API requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header value.
	BearerPrefix = "Bearer "

	// UploadFieldName is the multipart form field holding an uploaded file.
	UploadFieldName = "file"
)
