package source

import (
	"math/rand"
	"net/http"
)

type requestKind int

const (
	feedRequest requestKind = iota
	pageRequest
)

var acceptByKind = map[requestKind]string{
	feedRequest: "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5",
	pageRequest: "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8",
}

var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,de;q=0.8",
}

// setHeaders makes the request look like it comes from a regular reader, some sources reject bare clients
func setHeaders(req *http.Request, userAgent string, kind requestKind) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptByKind[kind])
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // header variation only
	if kind == feedRequest {
		req.Header.Set("Cache-Control", "no-cache")
	}
}
