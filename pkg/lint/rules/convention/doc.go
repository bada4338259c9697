// Package convention provides lint rules for SQL conventions.
// These rules follow SQLFluff's CV (Convention) rule category.
//
// Rules in this package:
//   - CV01: Consistent not-equal operator
//   - CV08: Prefer LEFT JOIN over RIGHT JOIN
package convention
