// Package slug generates URL-safe organization slugs.
//
// An organization slug is the lowercase, hyphen-separated identifier used in
// subdomains and URLs (e.g. "acme-corp" in acme-corp.example.com). The
// generator normalizes common Latin diacritics to ASCII, collapses every
// other non-alphanumeric run into a single separator, and can append a
// random suffix to avoid collisions between organizations with the same
// display name.
//
//	slug.Make("Acme Corp.")                  // "acme-corp"
//	slug.Make("Café Müller")                 // "cafe-muller"
//	slug.Make("Acme", slug.WithSuffix(6))    // "acme-x7g3k2"
//
// Validate reports whether a string is already in canonical slug form, which
// the storage layer uses to reject malformed slugs before hitting the
// database's uniqueness constraint.
package slug
