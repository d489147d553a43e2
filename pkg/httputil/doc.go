// Package httputil provides HTTP response helpers for the label sheet
// service.
//
// # Overview
//
// Handlers produce three kinds of responses:
//
//   - [WriteJSON]: a JSON document with a status code
//   - [WriteError]: a coded error mapped to its HTTP status
//   - [WriteAttachment]: a downloadable artifact
//
// # Errors
//
// Errors carrying a [errors.Code] from pkg/errors are rendered as
//
//	{"code": "INVALID_COUNT", "message": "count must be at least 1, got 0"}
//
// INVALID_* codes map to 400 Bad Request. Oversized request bodies map to
// 413. Everything else is a 500 whose message is not shown to the client.
//
// # Body limits
//
// [LimitBody] wraps request bodies with [http.MaxBytesReader] and rejects
// requests whose declared Content-Length already exceeds the limit.
package httputil
