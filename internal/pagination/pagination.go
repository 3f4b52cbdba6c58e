// Package pagination implements limit/offset paging over an already-fetched
// slice, with a count/next/previous envelope. Limits come from explicit
// configuration, never from package state.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"
)

// Config bounds the page size.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// Params is the resolved limit/offset of one request.
type Params struct {
	Limit  int
	Offset int
}

// Page is the response envelope.
type Page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// ParseParams reads limit/offset query parameters, falling back to the
// configured default and clamping to the configured maximum. Malformed or
// negative values fall back rather than erroring.
func ParseParams(query url.Values, cfg Config) Params {
	p := Params{Limit: cfg.DefaultLimit}

	if raw := query.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if p.Limit > cfg.MaxLimit {
		p.Limit = cfg.MaxLimit
	}

	if raw := query.Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Offset = n
		}
	}
	return p
}

// Paginate slices items according to the request's limit/offset parameters
// and builds the envelope, including absolute next/previous links.
func Paginate[T any](r *http.Request, cfg Config, items []T) Page {
	p := ParseParams(r.URL.Query(), cfg)

	start := p.Offset
	if start > len(items) {
		start = len(items)
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Count:    len(items),
		Next:     nextLink(r, p, len(items)),
		Previous: previousLink(r, p),
		Results:  items[start:end],
	}
}

func nextLink(r *http.Request, p Params, count int) *string {
	if p.Offset+p.Limit >= count {
		return nil
	}
	return pageLink(r, p.Limit, p.Offset+p.Limit)
}

func previousLink(r *http.Request, p Params) *string {
	if p.Offset <= 0 {
		return nil
	}
	offset := p.Offset - p.Limit
	if offset < 0 {
		offset = 0
	}
	return pageLink(r, p.Limit, offset)
}

func pageLink(r *http.Request, limit, offset int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}
	u.RawQuery = q.Encode()

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	link := scheme + "://" + r.Host + u.RequestURI()
	return &link
}
