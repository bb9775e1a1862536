// Package report renders computed charts for people: JSON views with
// localized labels, a plain-text summary and, through a Narrator, a prose
// reading.
package report
