// Package entitykey derives canonical comparison keys from venue name and
// place strings.
//
// Keys are used purely for equality checks, never for display. Normalization
// is deterministic and insensitive to case, punctuation, and incidental
// whitespace; it does not attempt fuzzy matching. Two raw strings that differ
// beyond those dimensions are distinct keys on purpose.
package entitykey
