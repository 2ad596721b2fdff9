// Package server exposes the render pipeline over HTTP.
//
// # Routes
//
//	POST /render?format=svg   render the data view in the request body
//	GET  /history             list recent renders, newest first
//	GET  /history/{id}        fetch one render
//	GET  /healthz             liveness probe
//	GET  /version             build information
//
// The request body of /render is a data view document. Its format is taken
// from the Content-Type header (text/csv, application/json, application/yaml)
// and sniffed from the body when the header is absent or generic. Query
// parameters width, height, seed, static and scale override the server's
// render defaults for one request.
//
// Every response carries an X-Request-ID header; a client-supplied ID is
// echoed, otherwise a UUID is generated. Render responses also carry
// X-Render-ID, X-Frame-Hash and X-Cache (hit or miss).
//
// Errors are JSON objects with "error" and "code" fields. The status code is
// derived from the error code, see [errors.HTTPStatus].
package server
