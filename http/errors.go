package http

import "github.com/indigo-web/smol/http/status"

// Parsing errors are all answered with 400 Bad Request.
var (
	ErrMalformedRequestLine  = status.NewError(status.BadRequest, "malformed request line")
	ErrMalformedHeaderLine   = status.NewError(status.BadRequest, "malformed header line")
	ErrConnectionClosedEarly = status.NewError(status.BadRequest, "connection closed before the headers were complete")
	ErrHeaderFieldsTooLarge  = status.NewError(status.BadRequest, "header section is too large")
)

// ErrResponseState marks an attempt to send a response more than once, or a response
// whose declared length disagrees with its body.
var ErrResponseState = status.NewError(status.InternalServerError, "invalid response state")
