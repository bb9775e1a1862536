// Package bazi computes four-pillar (Heavenly Stem / Earthly Branch) charts
// and the Five-Element distribution derived from them.
//
// The calculation is a pure pipeline: ComputePillars derives the Year, Month,
// Day and Hour pillars from a Gregorian date and hour, AggregateElements turns
// the pillars into weighted per-element scores and normalized percentages, and
// Analyze derives the day master, season and strength classification. Engine
// ties the three steps together and returns an immutable Chart.
//
// All lookup tables are package-level arrays that are never written after
// initialization, so every function here is safe for concurrent use.
package bazi
