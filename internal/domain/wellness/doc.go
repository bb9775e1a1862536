// Package wellness turns a computed chart into the downstream readings the
// API serves: a constitution type, diet and exercise advice, and a daily
// balance score for a calendar date.
//
// Everything here is a pure function of its inputs. Charts are never
// modified.
package wellness
