package simple

import (
	"github.com/indigo-web/smol/http"
	"github.com/indigo-web/smol/router"
)

type (
	Handler      func(*http.Request) *http.Response
	ErrorHandler func(*http.Request, error) *http.Response
)

var _ router.Router = simpleRouter{}

type simpleRouter struct {
	handler    Handler
	errHandler ErrorHandler
}

// New returns a router passing everything to the handlers. Nil errHandler answers
// errors with http.Response.Error.
func New(handler Handler, errHandler ErrorHandler) router.Router {
	if errHandler == nil {
		errHandler = defaultErrHandler
	}

	return simpleRouter{
		handler:    handler,
		errHandler: errHandler,
	}
}

func (r simpleRouter) OnRequest(request *http.Request) *http.Response {
	return r.handler(request)
}

func (r simpleRouter) OnError(request *http.Request, err error) *http.Response {
	return r.errHandler(request, err)
}

func defaultErrHandler(_ *http.Request, err error) *http.Response {
	return http.NewResponse().Error(err)
}
