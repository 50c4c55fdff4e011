// Package warctext extracts readable text from the HTML payloads of WARC
// (Web ARChive) container files. It parses raw archive entries into validated
// records, runs them through an ordered fallback chain of HTML-to-text
// back-ends, and streams the results to an output writer that preserves the
// original record metadata.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., trafilatura/, goquery/, fs/).
package warctext
