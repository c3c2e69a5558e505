// Package transcript parses APOGEE transcript exports into structured records.
//
// A document is segmented in two passes: pass one locates every student block
// anchor (family name, given name, and the "N° Etudiant" line), pass two slices
// the document between consecutive anchors. Each block is then reduced to
// identity fields plus a notes section, and the notes section is expanded into
// a flat grade list where teaching-unit (UE) rows precede the course rows they
// own.
//
// Parsing is deliberately forgiving: an unmatched document header falls back
// to placeholder values, a malformed student block is reported as a skip, and
// an unparsable score is coerced to zero. Only the caller decides whether any
// of those outcomes should abort an import.
package transcript
