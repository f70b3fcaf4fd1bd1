package transport

import (
	"net/http"
	"net/url"
)

// requestOptions collects per-call overrides applied on top of the client
// defaults.
type requestOptions struct {
	header http.Header
	query  url.Values
}

// RequestOption customizes a single request issued through Do.
type RequestOption func(*requestOptions)

// WithHeader adds a header to the request, overriding any default of the
// same name.
func WithHeader(key, value string) RequestOption {
	return func(ro *requestOptions) {
		ro.header.Set(key, value)
	}
}

// WithContentType overrides the default application/json content type,
// e.g. for multipart uploads.
func WithContentType(contentType string) RequestOption {
	return func(ro *requestOptions) {
		ro.header.Set("Content-Type", contentType)
	}
}

// WithQuery appends query parameters to the request URL.
func WithQuery(values url.Values) RequestOption {
	return func(ro *requestOptions) {
		for key, vs := range values {
			for _, v := range vs {
				ro.query.Add(key, v)
			}
		}
	}
}
