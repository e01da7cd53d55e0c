// Package spancheck validates span annotations against the documents they
// were authored on. Each page exists as a markup rendition and a plain-text
// rendition; annotations address both by (line, offset) coordinates and carry
// the text they claim to cover.
//
// This package contains domain types, interfaces and the dependency-free
// algorithms (position index, overlap detection) following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., html/, sqlite/, goquery/).
package spancheck
