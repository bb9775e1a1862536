package bazi

import "fmt"

// Supported year range, in astronomical numbering (year 0 is 1 BCE) on the
// proleptic Gregorian calendar.
const (
	MinYear = -9999
	MaxYear = 9999
)

// Epoch offsets of the simplified calendar model.
const (
	// yearEpochOffset aligns year 4 CE with jia-zi, the first cycle pair.
	yearEpochOffset = 4

	// dayCycleOffset maps a Julian Day Number to its sexagenary day index.
	// JDN 2451545 (2000-01-01) is wu-wu, cycle index 54.
	dayCycleOffset = 49
)

// Pillar is a stem/branch pair for one temporal unit of a chart.
type Pillar struct {
	Stem   HeavenlyStem
	Branch EarthlyBranch
}

// String renders the pillar as its romanized names, e.g. "ren-chen".
func (p Pillar) String() string {
	return p.Stem.Name() + "-" + p.Branch.Name()
}

// Glyphs renders the pillar as its two written characters.
func (p Pillar) Glyphs() string {
	return p.Stem.Glyph() + p.Branch.Glyph()
}

// CycleIndex returns the pillar's position in the sexagenary cycle.
func (p Pillar) CycleIndex() int {
	i, _ := CycleIndex(p.Stem, p.Branch)
	return i
}

// FourPillars is the Year, Month, Day and Hour pillars of one chart.
type FourPillars struct {
	Year  Pillar
	Month Pillar
	Day   Pillar
	Hour  Pillar
}

// InOrder returns the pillars in the fixed Year, Month, Day, Hour order.
func (fp FourPillars) InOrder() [pillarCount]Pillar {
	return [pillarCount]Pillar{fp.Year, fp.Month, fp.Day, fp.Hour}
}

// String renders all four pillars.
func (fp FourPillars) String() string {
	return fmt.Sprintf("year=%s month=%s day=%s hour=%s", fp.Year, fp.Month, fp.Day, fp.Hour)
}

// Glyphs renders all four pillars in written form, space separated.
func (fp FourPillars) Glyphs() string {
	return fp.Year.Glyphs() + " " + fp.Month.Glyphs() + " " + fp.Day.Glyphs() + " " + fp.Hour.Glyphs()
}

// ComputePillars derives the four pillars for a birth date and hour.
// Out-of-range input fails with a *ValidationError naming the field; the
// calculator never clamps.
func ComputePillars(year, month, day, hour int) (FourPillars, error) {
	if err := validateDate(year, month, day); err != nil {
		return FourPillars{}, err
	}
	if hour < 0 || hour > 23 {
		return FourPillars{}, newValidationError(FieldHour, hour, "must be between 0 and 23")
	}

	yearPillar := YearPillar(year)
	dayPillar := dayPillarFromJDN(JulianDayNumber(year, month, day))

	return FourPillars{
		Year:  yearPillar,
		Month: monthPillar(yearPillar.Stem, month),
		Day:   dayPillar,
		Hour:  hourPillar(dayPillar.Stem, hour),
	}, nil
}

// DayPillar returns the day pillar of a calendar date.
func DayPillar(year, month, day int) (Pillar, error) {
	if err := validateDate(year, month, day); err != nil {
		return Pillar{}, err
	}
	return dayPillarFromJDN(JulianDayNumber(year, month, day)), nil
}

// YearPillar returns the year pillar of the simplified model, in which the
// pillar changes on 1 January.
func YearPillar(year int) Pillar {
	return Pillar{
		Stem:   Stem(year - yearEpochOffset),
		Branch: Branch(year - yearEpochOffset),
	}
}

// monthPillar applies the five-tiger rule: the year stem fixes the stem of
// the first month (jia/ji years start at bing, yi/geng at wu, and so on),
// which then advances one stem per month. The branch is month+1, so
// January is yin (tiger).
func monthPillar(yearStem HeavenlyStem, month int) Pillar {
	return Pillar{
		Stem:   Stem(2*int(yearStem) + month + 1),
		Branch: Branch(month + 1),
	}
}

// hourPillar applies the five-rat rule: the day stem fixes the stem of the
// zi hour, which then advances one stem per two-hour window.
func hourPillar(dayStem HeavenlyStem, hour int) Pillar {
	branch := HourBranch(hour)
	return Pillar{
		Stem:   Stem(2*int(dayStem) + int(branch)),
		Branch: branch,
	}
}

// HourBranch maps a civil hour (0..23) to its two-hour branch window.
// Windows start at odd hours: 23 and 0 are zi, 1 and 2 are chou.
func HourBranch(hour int) EarthlyBranch {
	return Branch((hour + 1) / 2)
}

func dayPillarFromJDN(jdn int) Pillar {
	idx := NormalizeMod(jdn+dayCycleOffset, CycleLength)
	return Pillar{Stem: Stem(idx), Branch: Branch(idx)}
}

// JulianDayNumber returns the Julian Day Number of a proleptic Gregorian
// date (astronomical year numbering). Division is floored so the result is
// continuous for years before the Julian epoch too.
func JulianDayNumber(year, month, day int) int {
	a := floorDiv(14-month, 12)
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + floorDiv(153*m+2, 5) + 365*y +
		floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of a month, accounting for leap years.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func validateDate(year, month, day int) error {
	if year < MinYear || year > MaxYear {
		return newValidationError(FieldYear, year,
			fmt.Sprintf("must be between %d and %d", MinYear, MaxYear))
	}
	if month < 1 || month > 12 {
		return newValidationError(FieldMonth, month, "must be between 1 and 12")
	}
	if day < 1 || day > 31 {
		return newValidationError(FieldDay, day, "must be between 1 and 31")
	}
	if limit := DaysInMonth(year, month); day > limit {
		return newValidationError(FieldDay, day,
			fmt.Sprintf("month %d of %d has only %d days", month, year, limit))
	}
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
