// Package httpapi serves the sandbox pharmacy API over HTTP.
//
// Every response is a JSON envelope:
//
//	{"success": true, "data": ..., "pagination": {...}}
//	{"success": false, "message": "..."}
//
// Routes live under /api: auth/login, auth/me, dashboard/stats, upload and
// CRUD for products, categories, orders, customers and banners. All routes
// except auth/login require an administrator's bearer token.
package httpapi
