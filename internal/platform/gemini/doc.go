// Package gemini narrates chart readings with Google's Gemini models. It
// implements report.Narrator; callers fall back to the template reading
// when it fails.
package gemini
