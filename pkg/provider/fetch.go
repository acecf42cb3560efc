/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/planfeed/planfeed/pkg/defaults"
	"github.com/planfeed/planfeed/pkg/errors"
)

const fetcherUserAgent = "planfeed/1.0"

// Auth configures request authentication before a fetch is issued.
type Auth func(*http.Request)

// NoAuth leaves the request unauthenticated.
func NoAuth() Auth {
	return func(*http.Request) {}
}

// BearerAuth sets an Authorization: Bearer header.
func BearerAuth(token string) Auth {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

// BasicAuth sets an Authorization: Basic header.
func BasicAuth(username, password string) Auth {
	return func(r *http.Request) {
		r.SetBasicAuth(username, password)
	}
}

// HeaderAuth sets a provider-specific token header (e.g. X-Auth-Token).
func HeaderAuth(header, value string) Auth {
	return func(r *http.Request) {
		r.Header.Set(header, value)
	}
}

// Fetcher issues JSON GET requests against provider APIs with tuned
// transport defaults. The zero value is not usable; use NewFetcher.
type Fetcher struct {
	UserAgent string
	Client    *http.Client
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent overrides the default User-Agent.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.UserAgent = ua
	}
}

// WithTotalTimeout overrides the total per-request timeout.
func WithTotalTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.Client.Timeout = d
	}
}

// WithClient supplies a custom *http.Client. Transport-related defaults are
// not applied to a caller-provided client.
func WithClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.Client = client
	}
}

// NewFetcher creates a Fetcher with pooled transport and timeout defaults.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		UserAgent: fetcherUserAgent,
		Client: &http.Client{
			Timeout: defaults.HTTPClientTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   defaults.HTTPConnectTimeout,
					KeepAlive: defaults.HTTPKeepAlive,
				}).DialContext,
				TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
				ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
				IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
			},
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var defaultFetcher = NewFetcher()

// GetJSON fetches url and decodes the response body into v. The resource
// name identifies which provider resource failed in error messages
// (e.g. "sizes", "regions").
//
// Non-2xx responses produce an UPSTREAM_STATUS error carrying the resource
// and status; transport failures produce TRANSPORT; undecodable bodies
// produce DECODE.
func (f *Fetcher) GetJSON(ctx context.Context, resource, url string, auth Auth, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("building %s request", resource), err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.UserAgent)
	if auth != nil {
		auth(req)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTransport, fmt.Sprintf("fetching %s", resource), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewWithStatus(resource, resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeDecode, fmt.Sprintf("decoding %s response", resource), err)
	}
	return nil
}
