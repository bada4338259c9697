// Package capitalisation provides lint rules for the casing of SQL words.
// These rules follow SQLFluff's CP (Capitalisation) rule category.
//
// Rules in this package:
//   - CP01: Keyword capitalisation
package capitalisation
