// Package layout provides lint rules for whitespace and line shape.
// These rules follow SQLFluff's LT (Layout) rule category and read the
// non-code leaves kept in the parse tree.
//
// Rules in this package:
//   - LT01: Trailing whitespace
//   - LT02: Indentation mixing tabs and spaces
//   - LT05: Line too long
package layout
