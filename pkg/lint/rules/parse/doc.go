// Package parse reports input the dialect could not structure.
//
// Rules in this package:
//   - PRS: unparsable sections, lexical errors and abandoned input
package parse
