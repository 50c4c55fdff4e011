package warctext

import (
	"regexp"
	"strings"
)

// mimeTypeRE validates the type/subtype part of a MIME content type.
// A single slash, non-empty segments on both sides.
var mimeTypeRE = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9+\-_.]*/[a-zA-Z0-9][a-zA-Z0-9+\-_.]*$`)

// ContentType represents a validated MIME content type.
//
// Equality considers only the main type and subtype; parameters such as
// charset are ignored, so "text/html;charset=utf-8" equals "text/html".
type ContentType struct {
	raw        string
	mainType   string
	subType    string
	parameters map[string]string
}

// ParseContentType parses and validates a MIME content type string of the
// form "type/subtype[;param=value]*". It returns EINVALID when the string is
// empty, lacks a slash, has an empty segment, or contains a second slash.
func ParseContentType(s string) (ContentType, error) {
	if s == "" {
		return ContentType{}, Errorf(EINVALID, "content type cannot be empty")
	}

	parts := strings.SplitN(s, ";", 2)
	mime := strings.TrimSpace(parts[0])
	if !mimeTypeRE.MatchString(mime) {
		return ContentType{}, Errorf(EINVALID, "invalid content type format: %q", s)
	}

	segments := strings.SplitN(mime, "/", 2)

	ct := ContentType{
		raw:      s,
		mainType: strings.ToLower(segments[0]),
		subType:  strings.ToLower(segments[1]),
	}

	if len(parts) > 1 {
		ct.parameters = make(map[string]string)
		for _, param := range strings.Split(parts[1], ";") {
			key, value, ok := strings.Cut(param, "=")
			if !ok {
				continue
			}
			ct.parameters[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
		}
	}

	return ct, nil
}

// MainType returns the lower-cased main type (e.g., "text" in "text/html").
func (ct ContentType) MainType() string { return ct.mainType }

// SubType returns the lower-cased subtype (e.g., "html" in "text/html").
func (ct ContentType) SubType() string { return ct.subType }

// Parameter returns the value of a parameter by lower-cased key, or "" if
// the parameter is not present.
func (ct ContentType) Parameter(key string) string {
	return ct.parameters[strings.ToLower(key)]
}

// IsZero reports whether ct is the zero value (never produced by a
// successful ParseContentType).
func (ct ContentType) IsZero() bool {
	return ct.mainType == "" && ct.subType == ""
}

// String returns the original content type string.
func (ct ContentType) String() string { return ct.raw }

// Equal reports whether two content types have the same main type and
// subtype. Parameters are excluded from the comparison.
func (ct ContentType) Equal(other ContentType) bool {
	return ct.mainType == other.mainType && ct.subType == other.subType
}

// IsHTML reports whether the content type carries an HTML payload, covering
// text/html and the XHTML application types.
func (ct ContentType) IsHTML() bool {
	return ct.Matches("text/html") ||
		ct.Matches("application/xhtml+xml") ||
		strings.Contains(ct.subType, "html")
}

// Matches reports whether the content type matches a two-segment wildcard
// pattern. Either segment may be "*", so "*/*" matches everything and
// "text/*" matches any text type. A pattern without a slash never matches.
func (ct ContentType) Matches(pattern string) bool {
	main, sub, ok := strings.Cut(strings.ToLower(pattern), "/")
	if !ok {
		return false
	}

	if main != "*" && main != ct.mainType {
		return false
	}
	return sub == "*" || sub == ct.subType
}
