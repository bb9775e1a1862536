package bazi

import "fmt"

// Element is one of the Five Elements.
type Element int

// The Five Elements in generation order.
const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// ElementCount is the size of the closed element set.
const ElementCount = 5

// Elements lists every element in canonical order.
var Elements = [ElementCount]Element{Wood, Fire, Earth, Metal, Water}

var elementKeys = [ElementCount]string{"wood", "fire", "earth", "metal", "water"}

// String returns the stable element key used in JSON and storage.
func (e Element) String() string {
	if e < 0 || int(e) >= ElementCount {
		return "unknown"
	}
	return elementKeys[e]
}

// Valid reports whether e is one of the five elements.
func (e Element) Valid() bool {
	return e >= 0 && int(e) < ElementCount
}

// ParseElement maps a stable element key back to its Element.
func ParseElement(key string) (Element, bool) {
	for i, k := range elementKeys {
		if k == key {
			return Element(i), true
		}
	}
	return 0, false
}

// MarshalText encodes the element as its key.
func (e Element) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid element %d", int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText decodes an element key.
func (e *Element) UnmarshalText(text []byte) error {
	parsed, ok := ParseElement(string(text))
	if !ok {
		return fmt.Errorf("unknown element %q", text)
	}
	*e = parsed
	return nil
}

// Generates returns the element this one produces in the generation cycle
// (wood feeds fire, fire makes earth, earth bears metal, metal carries water,
// water nourishes wood).
func (e Element) Generates() Element {
	return Element(NormalizeMod(int(e)+1, ElementCount))
}

// GeneratedBy returns the element that produces this one.
func (e Element) GeneratedBy() Element {
	return Element(NormalizeMod(int(e)-1, ElementCount))
}

// Controls returns the element this one restrains in the control cycle
// (wood parts earth, earth dams water, water quenches fire, fire melts metal,
// metal cuts wood).
func (e Element) Controls() Element {
	return Element(NormalizeMod(int(e)+2, ElementCount))
}

// ControlledBy returns the element that restrains this one.
func (e Element) ControlledBy() Element {
	return Element(NormalizeMod(int(e)-2, ElementCount))
}

// Season returns the season associated with the element.
func (e Element) Season() Season {
	return elementSeasons[e]
}

// Polarity is the yin/yang attribute of a stem or branch.
type Polarity int

// Polarity values. Even stem and branch indices are yang.
const (
	Yang Polarity = iota
	Yin
)

// String returns "yang" or "yin".
func (p Polarity) String() string {
	if p == Yin {
		return "yin"
	}
	return "yang"
}

func polarityOf(index int) Polarity {
	if index%2 == 0 {
		return Yang
	}
	return Yin
}

// Season is the seasonal label attached to the month branch.
type Season string

// Seasons, one per element. LateSummer is the transitional earth season
// that gathers the four earth branches.
const (
	Spring     Season = "spring"
	Summer     Season = "summer"
	LateSummer Season = "late_summer"
	Autumn     Season = "autumn"
	Winter     Season = "winter"
)

var elementSeasons = [ElementCount]Season{Spring, Summer, LateSummer, Autumn, Winter}

// Cycle sizes.
const (
	StemCount   = 10
	BranchCount = 12
	CycleLength = 60
)

// HeavenlyStem is an index into the 10-stem cycle.
type HeavenlyStem int

type stemInfo struct {
	name    string
	glyph   string
	element Element
}

var stemTable = [StemCount]stemInfo{
	{"jia", "甲", Wood},
	{"yi", "乙", Wood},
	{"bing", "丙", Fire},
	{"ding", "丁", Fire},
	{"wu", "戊", Earth},
	{"ji", "己", Earth},
	{"geng", "庚", Metal},
	{"xin", "辛", Metal},
	{"ren", "壬", Water},
	{"gui", "癸", Water},
}

// Stem returns the stem at index i, wrapping any integer into 0..9.
func Stem(i int) HeavenlyStem {
	return HeavenlyStem(NormalizeMod(i, StemCount))
}

// Index returns the stem's position in the cycle.
func (s HeavenlyStem) Index() int { return int(s) }

// Name returns the romanized stem name.
func (s HeavenlyStem) Name() string { return stemTable[s].name }

// Glyph returns the stem's written character.
func (s HeavenlyStem) Glyph() string { return stemTable[s].glyph }

// Element returns the stem's fixed element.
func (s HeavenlyStem) Element() Element { return stemTable[s].element }

// Polarity returns the stem's fixed polarity.
func (s HeavenlyStem) Polarity() Polarity { return polarityOf(int(s)) }

// String returns the romanized stem name.
func (s HeavenlyStem) String() string { return s.Name() }

// EarthlyBranch is an index into the 12-branch cycle.
type EarthlyBranch int

type branchInfo struct {
	name    string
	glyph   string
	element Element
	season  Season
}

var branchTable = [BranchCount]branchInfo{
	{"zi", "子", Water, Winter},
	{"chou", "丑", Earth, LateSummer},
	{"yin", "寅", Wood, Spring},
	{"mao", "卯", Wood, Spring},
	{"chen", "辰", Earth, LateSummer},
	{"si", "巳", Fire, Summer},
	{"wu", "午", Fire, Summer},
	{"wei", "未", Earth, LateSummer},
	{"shen", "申", Metal, Autumn},
	{"you", "酉", Metal, Autumn},
	{"xu", "戌", Earth, LateSummer},
	{"hai", "亥", Water, Winter},
}

// Branch returns the branch at index i, wrapping any integer into 0..11.
func Branch(i int) EarthlyBranch {
	return EarthlyBranch(NormalizeMod(i, BranchCount))
}

// Index returns the branch's position in the cycle.
func (b EarthlyBranch) Index() int { return int(b) }

// Name returns the romanized branch name.
func (b EarthlyBranch) Name() string { return branchTable[b].name }

// Glyph returns the branch's written character.
func (b EarthlyBranch) Glyph() string { return branchTable[b].glyph }

// Element returns the branch's fixed element.
func (b EarthlyBranch) Element() Element { return branchTable[b].element }

// Polarity returns the branch's fixed polarity.
func (b EarthlyBranch) Polarity() Polarity { return polarityOf(int(b)) }

// Season returns the season the branch belongs to when it heads a month.
func (b EarthlyBranch) Season() Season { return branchTable[b].season }

// String returns the romanized branch name.
func (b EarthlyBranch) String() string { return b.Name() }

// HourWindow returns the civil hour range covered by the branch. The start
// hour is inclusive and the end hour exclusive, modulo 24: branch 0 covers
// 23:00 to 01:00.
func (b EarthlyBranch) HourWindow() (start, end int) {
	start = NormalizeMod(2*int(b)-1, 24)
	return start, NormalizeMod(start+2, 24)
}

// CycleIndex returns the position (0..59) of a stem/branch pair in the
// sexagenary cycle. Only pairs of equal parity occur in the cycle; ok is
// false for the others.
func CycleIndex(s HeavenlyStem, b EarthlyBranch) (index int, ok bool) {
	if int(s)%2 != int(b)%2 {
		return 0, false
	}
	// Solve index ≡ s (mod 10), index ≡ b (mod 12).
	for i := int(s); i < CycleLength; i += StemCount {
		if i%BranchCount == int(b) {
			return i, true
		}
	}
	return 0, false
}

// NormalizeMod returns x modulo n in the range [0, n) for any integer x,
// including negative values. n must be positive.
func NormalizeMod(x, n int) int {
	return ((x % n) + n) % n
}
