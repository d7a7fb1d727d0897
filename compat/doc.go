// Package compat adapts the mnemo scheduler to the legacy card schema.
//
// The legacy schema predates card versioning and the short/long-term
// memory factors; this package strips those fields from the exposed card
// shape and adds the coarse progress and memory-prediction helpers the
// legacy API carried.
package compat
