package status

import "strconv"

type (
	Code   uint16
	Status string
)

// Codes the server emits on its own. Any other code may still be set on a response; its
// reason phrase falls back to "Unknown Status Code" unless a custom Status is given.
const (
	Continue Code = 100 // RFC 9110, 15.2.1

	OK Code = 200 // RFC 9110, 15.3.1

	BadRequest       Code = 400 // RFC 9110, 15.5.1
	Forbidden        Code = 403 // RFC 9110, 15.5.4
	NotFound         Code = 404 // RFC 9110, 15.5.5
	MethodNotAllowed Code = 405 // RFC 9110, 15.5.6

	InternalServerError Code = 500 // RFC 9110, 15.6.1
	NotImplemented      Code = 501 // RFC 9110, 15.6.2
)

// KnownCodes lists every code Text has a reason phrase for.
var KnownCodes = []Code{
	Continue, OK, BadRequest, Forbidden, NotFound, MethodNotAllowed,
	InternalServerError, NotImplemented,
}

// Text returns the reason phrase for the code.
func Text(code Code) Status {
	switch code {
	case Continue:
		return "Continue"
	case OK:
		return "OK"
	case BadRequest:
		return "Bad Request"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "Not Found"
	case MethodNotAllowed:
		return "Method Not Allowed"
	case InternalServerError:
		return "Internal Server Error"
	case NotImplemented:
		return "Not Implemented"
	default:
		return "Unknown Status Code"
	}
}

// StringCode returns the decimal representation of the code.
func StringCode(code Code) string {
	return strconv.FormatUint(uint64(code), 10)
}

// Line renders the status part of a response line, e.g. "404 Not Found". A non-empty
// custom status overrides the registered reason phrase.
func Line(code Code, custom Status) string {
	if len(custom) == 0 {
		custom = Text(code)
	}

	return StringCode(code) + " " + string(custom)
}
