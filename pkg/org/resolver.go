package org

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Resolver extracts an organization identifier from an HTTP request.
type Resolver interface {
	// Resolve extracts the organization identifier from the request.
	// Returns empty string when the request carries no identifier.
	Resolve(r *http.Request) (string, error)
}

// SubdomainResolver extracts the identifier from the request subdomain,
// e.g. "acme" from acme.example.com.
type SubdomainResolver struct {
	// Suffix is the base domain to strip, including the leading dot
	// (e.g. ".example.com"). When empty the first host label is used.
	Suffix string
}

// NewSubdomainResolver creates a subdomain resolver.
func NewSubdomainResolver(suffix string) *SubdomainResolver {
	return &SubdomainResolver{Suffix: suffix}
}

func (r *SubdomainResolver) Resolve(req *http.Request) (string, error) {
	host := req.Host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	// A bare domain.tld has no subdomain to resolve.
	if strings.Count(host, ".") < 2 {
		return "", nil
	}

	if r.Suffix != "" {
		if !strings.HasSuffix(host, r.Suffix) {
			return "", nil
		}
		host = strings.TrimSuffix(host, r.Suffix)
	}

	label := strings.Split(host, ".")[0]
	if label == "www" || label == "" {
		return "", nil
	}
	return label, nil
}

// HeaderResolver extracts the identifier from an HTTP header.
type HeaderResolver struct {
	HeaderName string
}

// NewHeaderResolver creates a header resolver. An empty header name
// defaults to "X-Organization-ID".
func NewHeaderResolver(headerName string) *HeaderResolver {
	if headerName == "" {
		headerName = "X-Organization-ID"
	}
	return &HeaderResolver{HeaderName: headerName}
}

func (r *HeaderResolver) Resolve(req *http.Request) (string, error) {
	return req.Header.Get(r.HeaderName), nil
}

// PathResolver extracts the identifier from a URL path segment,
// e.g. position 2 for /orgs/{slug}/....
type PathResolver struct {
	// Position is the 1-based path segment index.
	Position int
}

// NewPathResolver creates a path resolver.
func NewPathResolver(position int) *PathResolver {
	return &PathResolver{Position: position}
}

func (r *PathResolver) Resolve(req *http.Request) (string, error) {
	if r.Position < 1 {
		return "", errors.New("path resolver: position must be >= 1")
	}

	path := strings.Trim(req.URL.Path, "/")
	if path == "" {
		return "", nil
	}

	parts := strings.Split(path, "/")
	if r.Position > len(parts) {
		return "", nil
	}
	return parts[r.Position-1], nil
}

// CompositeResolver tries resolvers in order and returns the first
// non-empty identifier.
type CompositeResolver struct {
	Resolvers []Resolver
}

// NewCompositeResolver creates a composite resolver.
func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{Resolvers: resolvers}
}

func (c *CompositeResolver) Resolve(req *http.Request) (string, error) {
	var errs []error
	for _, resolver := range c.Resolvers {
		id, err := resolver.Resolve(req)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id != "" {
			return id, nil
		}
	}
	if len(errs) > 0 {
		return "", fmt.Errorf("composite resolver: %w", errors.Join(errs...))
	}
	return "", nil
}
