// Package ident parses and formats the structured string identifiers used in
// Reforger server configuration: scenario resource references of the form
// "{16-hex-id}relative/path" and workshop mod references given either as a
// bare 16-hex ID or as a workshop URL.
package ident

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedIdentifier is returned when a resource reference string does not
// match the canonical "{16-hex}path" form. Callers can test for it with
// errors.Is regardless of the wrapped detail.
var ErrMalformedIdentifier = errors.New("malformed identifier")

var (
	resourceRefPattern = regexp.MustCompile(`^\{([0-9A-Fa-f]{16})\}(.+)$`)
	modIDPattern       = regexp.MustCompile(`^[0-9A-Fa-f]{16}$`)
)

// ResourceRef identifies a mission/scenario resource as the engine addresses
// it: a 16-character hexadecimal resource ID plus a relative path inside that
// resource. The ID is stored canonically upper-cased; the path is
// case-preserving.
type ResourceRef struct {
	ResourceID string
	Path       string
}

// NewResourceRef builds a ResourceRef from its parts, canonicalizing the ID.
func NewResourceRef(resourceID, path string) (ResourceRef, error) {
	if !modIDPattern.MatchString(resourceID) {
		return ResourceRef{}, fmt.Errorf("%w: resource ID %q is not 16 hex characters", ErrMalformedIdentifier, resourceID)
	}
	if path == "" {
		return ResourceRef{}, fmt.Errorf("%w: empty resource path", ErrMalformedIdentifier)
	}
	return ResourceRef{ResourceID: strings.ToUpper(resourceID), Path: path}, nil
}

// ParseResourceRef parses the canonical "{16-hex}path" string form.
// The hex ID is matched case-insensitively and canonicalized upper-case.
func ParseResourceRef(s string) (ResourceRef, error) {
	m := resourceRefPattern.FindStringSubmatch(s)
	if m == nil {
		return ResourceRef{}, fmt.Errorf("%w: %q does not match {16-hex}path", ErrMalformedIdentifier, s)
	}
	return ResourceRef{ResourceID: strings.ToUpper(m[1]), Path: m[2]}, nil
}

// String renders the canonical form. ParseResourceRef(r.String()) round-trips
// for every valid ResourceRef.
func (r ResourceRef) String() string {
	return "{" + r.ResourceID + "}" + r.Path
}

// IsValidModID reports whether s is exactly 16 hexadecimal characters.
func IsValidModID(s string) bool {
	return modIDPattern.MatchString(s)
}

// ParseModReference extracts a workshop mod ID from either a bare 16-hex token
// or a URL whose final path segment is "modID" or "modID-anySuffix" (the
// suffix is a display slug and is discarded without validation). The returned
// ID is upper-cased. ok is false for any other shape; that is not an error,
// so bulk importers can skip invalid entries and continue.
func ParseModReference(s string) (modID string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if IsValidModID(s) {
		return strings.ToUpper(s), true
	}
	if !strings.Contains(s, "/") {
		return "", false
	}
	seg := lastSegment(s)
	if candidate, _, found := strings.Cut(seg, "-"); found {
		seg = candidate
	}
	if IsValidModID(seg) {
		return strings.ToUpper(seg), true
	}
	return "", false
}

// lastSegment returns the final non-empty path segment of a URL-ish string,
// with any query or fragment stripped.
func lastSegment(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}
