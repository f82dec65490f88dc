package router

import (
	"github.com/indigo-web/smol/http"
)

// Router decides what every request is answered with.
type Router interface {
	// OnRequest is called for every successfully parsed request. A nil response is
	// treated as an empty 200 OK.
	OnRequest(request *http.Request) *http.Response
	// OnError is called when a request could not be parsed. The request is nil in that
	// case. A nil response is treated as the default error response.
	OnError(request *http.Request, err error) *http.Response
}
