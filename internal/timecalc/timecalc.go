package timecalc

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// Hours is a non-negative amount of worked time in decimal hours. It is the
// canonical value every earnings calculation is based on.
type Hours float64

// TimeOfDay is a wall-clock time without date or zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses "H:MM" or "HH:MM" (an optional ":SS" suffix is
// accepted and ignored). It reports false for anything that is not a valid
// wall-clock time.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TimeOfDay{}, false
	}
	h, ok := parseDigits(parts[0], 1, 2)
	if !ok || h > 23 {
		return TimeOfDay{}, false
	}
	m, ok := parseDigits(parts[1], 2, 2)
	if !ok || m > 59 {
		return TimeOfDay{}, false
	}
	if len(parts) == 3 {
		if sec, ok := parseDigits(parts[2], 2, 2); !ok || sec > 59 {
			return TimeOfDay{}, false
		}
	}
	return TimeOfDay{Hour: h, Minute: m}, true
}

// parseDigits parses an unsigned decimal of minLen..maxLen ASCII digits.
func parseDigits(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// ElapsedHours returns the time between start and end. An end that lies
// before start is taken to be on the next day (overnight shift).
func ElapsedHours(start, end TimeOfDay) Hours {
	diff := end.Minutes() - start.Minutes()
	if diff < 0 {
		diff += minutesPerDay
	}
	return Hours(float64(diff) / 60)
}

// ParseClockText parses "H:MM" duration text. Each part is read up to its
// first non-digit; missing or non-numeric parts count as zero. There is no
// upper bound on H.
func ParseClockText(s string) Hours {
	parts := strings.Split(s, ":")
	h := LeadingInt(parts[0])
	m := 0
	if len(parts) > 1 {
		m = LeadingInt(parts[1])
	}
	return Hours(float64(h) + float64(m)/60)
}

// LeadingInt reads the integer at the start of s, so "1.5" is 1 and "30min"
// is 30. Input without leading digits, or a negative value, yields 0.
func LeadingInt(s string) int {
	m := leadingInt.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

var (
	leadingInt   = regexp.MustCompile(`^\s*[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// LeadingNumber reads the number at the start of s and ignores whatever
// follows it, so "7.5h" is 7.5 and "25/hr" is 25. Input without a leading
// number, or a negative or non-finite one, yields 0.
func LeadingNumber(s string) float64 {
	m := leadingFloat.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseDecimalText parses decimal hours such as "7.25" or "7.5h".
func ParseDecimalText(s string) Hours {
	return Hours(LeadingNumber(s))
}

// ParseDurationText accepts either clock text ("8:30") or decimal text ("8.5").
func ParseDurationText(s string) Hours {
	if strings.Contains(s, ":") {
		return ParseClockText(s)
	}
	return ParseDecimalText(s)
}

// FormatClock renders hours as "H:MM". Minutes that round up to 60 are
// carried into the hour, so MM is always within 0..59.
func FormatClock(h Hours) string {
	f := float64(h)
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return "0:00"
	}
	whole := math.Floor(f)
	hh := int64(whole)
	mm := int64(math.Round((f - whole) * 60))
	if mm == 60 {
		hh++
		mm = 0
	}
	return fmt.Sprintf("%d:%02d", hh, mm)
}

// FormatDecimal renders hours with at most two fractional digits, e.g. "8.5".
func FormatDecimal(h Hours) string {
	f := float64(h)
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// FormatHuman formats hours as a human-readable string like "8h 30m" or "45m".
func FormatHuman(h Hours) string {
	f := float64(h)
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return "0m"
	}
	total := int64(math.Round(f * 60))
	hh := total / 60
	mm := total % 60
	if hh > 0 {
		return fmt.Sprintf("%dh %dm", hh, mm)
	}
	return fmt.Sprintf("%dm", mm)
}

// ResolveInput carries the raw worked-time fields as the user typed them.
type ResolveInput struct {
	Start        string
	End          string
	DurationText string
}

// Resolution is the outcome of resolving worked time.
type Resolution struct {
	Hours Hours
	// DurationText is the value the duration field should hold afterwards.
	DurationText string
	// Rewritten is true when DurationText differs from the input text.
	Rewritten bool
	// FromClock is true when the start/end pair took precedence.
	FromClock bool
}

// Resolve computes the canonical hours. A complete start/end pair always
// wins over the typed duration and rewrites the duration text to its clock
// form; otherwise the duration text is parsed and left as is.
func Resolve(in ResolveInput) Resolution {
	start, okStart := ParseTimeOfDay(in.Start)
	end, okEnd := ParseTimeOfDay(in.End)
	if okStart && okEnd {
		hours := ElapsedHours(start, end)
		res := Resolution{Hours: hours, DurationText: in.DurationText, FromClock: true}
		if text := FormatClock(hours); text != in.DurationText {
			res.DurationText = text
			res.Rewritten = true
		}
		return res
	}
	return Resolution{
		Hours:        ParseDurationText(in.DurationText),
		DurationText: in.DurationText,
	}
}
