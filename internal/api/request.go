package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"
)

// Request describes a single HTTP call against the platform API.
// It carries no transport state; the dispatcher in internal/client turns it into a real request.
type Request struct {
	Endpoint EndpointID
	Method   string
	Path     string
	Query    url.Values
	Body     any
}

// URL joins the request path and encoded query onto baseURL
func (r Request) URL(baseURL string) string {
	u := strings.TrimRight(baseURL, "/") + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u
}

// WithQuery returns a copy of the request with params encoded as its query string.
// params is a struct tagged with `url:"..."`; a nil params leaves the query empty.
func (r Request) WithQuery(params any) Request {
	if params == nil {
		return r
	}
	values, err := query.Values(params)
	if err != nil {
		// Only non-struct params can fail here, which is a programming error in this package.
		panic(fmt.Sprintf("api: encode query for %s: %v", r.Endpoint, err))
	}
	if len(values) == 0 {
		return r
	}
	r.Query = values
	return r
}

// WithBody returns a copy of the request carrying body as its JSON payload
func (r Request) WithBody(body any) Request {
	r.Body = body
	return r
}

// String renders the request the way it would appear in an access log
func (r Request) String() string {
	return r.Method + " " + r.URL("")
}

// fillPath substitutes {id}-style placeholders left to right
func fillPath(pattern string, ids []int64) string {
	path := pattern
	for _, id := range ids {
		start := strings.Index(path, "{")
		if start < 0 {
			break
		}
		end := strings.Index(path[start:], "}")
		if end < 0 {
			break
		}
		path = path[:start] + strconv.FormatInt(id, 10) + path[start+end+1:]
	}
	return path
}
