package warctext

import "net/url"

// RecordID is an opaque, validated WARC record identifier such as
// "<urn:uuid:...>". Two identifiers are equal when their strings are equal.
type RecordID string

// ParseRecordID validates and returns a RecordID.
func ParseRecordID(s string) (RecordID, error) {
	if s == "" {
		return "", Errorf(EINVALID, "record ID cannot be empty")
	}
	return RecordID(s), nil
}

// String returns the identifier string.
func (id RecordID) String() string { return string(id) }

// TargetURI is the validated target URI of a captured exchange. It must be
// absolute: a scheme and a host are both required.
type TargetURI string

// ParseTargetURI validates and returns a TargetURI.
func ParseTargetURI(s string) (TargetURI, error) {
	if s == "" {
		return "", Errorf(EINVALID, "target URI cannot be empty")
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", Errorf(EINVALID, "invalid target URI %q: %v", s, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "target URI must be absolute: %q", s)
	}

	return TargetURI(s), nil
}

// String returns the URI string.
func (u TargetURI) String() string { return string(u) }

// PayloadDigest is an opaque, validated payload digest value such as
// "sha1:3I42H3S6NNFQ2MSVX7XZKYAYSCX5QBYJ".
type PayloadDigest string

// ParsePayloadDigest validates and returns a PayloadDigest.
func ParsePayloadDigest(s string) (PayloadDigest, error) {
	if s == "" {
		return "", Errorf(EINVALID, "payload digest cannot be empty")
	}
	return PayloadDigest(s), nil
}

// String returns the digest string.
func (d PayloadDigest) String() string { return string(d) }
