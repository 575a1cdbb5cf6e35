package answer

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidFormat is matched by every *ParseError via errors.Is.
var ErrInvalidFormat = errors.New("invalid answer format")

// ParseError reports input that cannot be read as the expected answer shape.
// It is a format problem, not a wrong answer.
type ParseError struct {
	Kind   Kind
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s answer %q: %s", e.Kind, e.Input, e.Reason)
}

func (e *ParseError) Is(target error) bool { return target == ErrInvalidFormat }

// maxDecimalPlaces bounds decimal input so the implied denominator fits in int64.
const maxDecimalPlaces = 12

var (
	groupedIntPattern = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+$`)
	decimalPattern    = regexp.MustCompile(`^([+-]?)(\d*)(?:\.(\d*))?$`)
	compositeToken    = regexp.MustCompile(`-?\d+|[A-Za-z]+|[:,|]|\s+|.`)
)

// unitWords may appear between the numbers of a composite answer.
var unitWords = map[string]bool{
	"h": true, "hr": true, "hrs": true, "hour": true, "hours": true,
	"m": true, "min": true, "mins": true, "minute": true, "minutes": true,
	"s": true, "sec": true, "secs": true, "second": true, "seconds": true,
	"ft": true, "foot": true, "feet": true,
	"in": true, "inch": true, "inches": true,
	"yd": true, "yard": true, "yards": true,
	"lb": true, "lbs": true, "pound": true, "pounds": true,
	"oz": true, "ounce": true, "ounces": true,
	"d": true, "day": true, "days": true,
	"wk": true, "week": true, "weeks": true,
	"and": true,
}

// Parse reads raw learner input into the same shape as expected.
// It returns a *ParseError when the input cannot be coerced.
func Parse(expected Answer, raw string) (Answer, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Answer{}, &ParseError{Kind: expected.Kind, Input: raw, Reason: "empty answer"}
	}

	var (
		a   Answer
		err error
	)
	switch expected.Kind {
	case KindInt:
		a, err = parseInt(s)
	case KindFraction:
		a, err = parseFraction(s)
	case KindMoney:
		a, err = parseMoney(s)
	case KindComposite:
		a, err = parseComposite(s, expected)
	case KindChoice:
		a, err = parseChoice(s, expected)
	default:
		err = fmt.Errorf("unsupported answer kind %q", expected.Kind)
	}
	if err != nil {
		return Answer{}, &ParseError{Kind: expected.Kind, Input: raw, Reason: err.Error()}
	}
	return a, nil
}

func parseInt(s string) (Answer, error) {
	if groupedIntPattern.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Answer{}, errors.New("not a whole number")
	}
	return Int(n), nil
}

// parseFraction accepts "n/d", a mixed number "w n/d", a decimal "0.5"
// or a percentage "50%".
func parseFraction(s string) (Answer, error) {
	if strings.Contains(s, "/") {
		fields := strings.Fields(s)
		switch len(fields) {
		case 1:
			num, den, err := splitFraction(s)
			if err != nil {
				return Answer{}, err
			}
			return Frac(num, den), nil
		case 2:
			whole, err := strconv.ParseInt(fields[0], 10, 64)
			if err != nil {
				return Answer{}, errors.New("invalid whole part")
			}
			num, den, err := splitFraction(fields[1])
			if err != nil {
				return Answer{}, err
			}
			if num < 0 || den < 0 {
				return Answer{}, errors.New("sign belongs on the whole part")
			}
			n, ok := mixedNumerator(whole, num, den)
			if !ok {
				return Answer{}, errors.New("number too large")
			}
			return Frac(n, den), nil
		default:
			// "1 / 2" with spaces around the slash.
			num, den, err := splitFraction(strings.Join(fields, ""))
			if err != nil {
				return Answer{}, err
			}
			return Frac(num, den), nil
		}
	}

	if pct, ok := strings.CutSuffix(s, "%"); ok {
		num, den, err := parseDecimal(strings.TrimSpace(pct))
		if err != nil {
			return Answer{}, err
		}
		return Frac(num, den*100), nil
	}

	num, den, err := parseDecimal(s)
	if err != nil {
		return Answer{}, err
	}
	return Frac(num, den), nil
}

func splitFraction(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid fraction %q", s)
	}
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, errors.New("invalid numerator")
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, errors.New("invalid denominator")
	}
	if den == 0 {
		return 0, 0, errors.New("zero denominator")
	}
	return num, den, nil
}

// parseDecimal converts a decimal string to an exact num/den pair.
func parseDecimal(s string) (int64, int64, error) {
	m := decimalPattern.FindStringSubmatch(s)
	if m == nil || (m[2] == "" && m[3] == "") {
		return 0, 0, errors.New("not a number")
	}
	sign, whole, frac := m[1], m[2], m[3]
	if len(frac) > maxDecimalPlaces {
		return 0, 0, errors.New("too many decimal places")
	}
	digits := strings.TrimLeft(whole+frac, "0")
	if digits == "" {
		digits = "0"
	}
	num, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, 0, errors.New("number too large")
	}
	den := int64(1)
	for range len(frac) {
		den *= 10
	}
	if sign == "-" {
		num = -num
	}
	return num, den, nil
}

// mixedNumerator returns the numerator of whole num/den over den, with the
// sign of whole. ok is false when it does not fit in an int64.
func mixedNumerator(whole, num, den int64) (n int64, ok bool) {
	if whole == math.MinInt64 {
		return 0, false
	}
	abs := whole
	if abs < 0 {
		abs = -abs
	}
	if abs > (math.MaxInt64-num)/den {
		return 0, false
	}
	n = abs*den + num
	if whole < 0 {
		n = -n
	}
	return n, true
}

// parseMoney accepts an optional sign and leading "$" and rounds to cents.
func parseMoney(s string) (Answer, error) {
	neg := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		neg, s = true, rest
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	if rest, ok := strings.CutPrefix(s, "-"); ok && !neg {
		neg, s = true, rest
	}

	whole, frac, _ := strings.Cut(s, ".")
	if groupedIntPattern.MatchString(whole) {
		whole = strings.ReplaceAll(whole, ",", "")
	}
	if whole == "" && frac == "" {
		return Answer{}, errors.New("not an amount")
	}
	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return Answer{}, errors.New("not an amount")
			}
		}
	}

	var dollars int64
	if whole != "" {
		d, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return Answer{}, errors.New("amount too large")
		}
		dollars = d
	}

	// Round half up to two decimal places.
	padded := frac + "00"
	cents := int64(padded[0]-'0')*10 + int64(padded[1]-'0')
	if len(frac) > 2 && frac[2] >= '5' {
		cents++
	}

	if dollars > (math.MaxInt64-cents)/100 {
		return Answer{}, errors.New("amount too large")
	}
	total := dollars*100 + cents
	if neg {
		total = -total
	}
	return Money(total), nil
}

// parseComposite reads the integers of a mixed-unit answer such as
// "2:35", "2 35", "2h 35m" or "2 hours and 35 minutes".
func parseComposite(s string, expected Answer) (Answer, error) {
	var parts []int64
	for _, tok := range compositeToken.FindAllString(s, -1) {
		switch {
		case strings.TrimSpace(tok) == "":
		case tok == ":" || tok == "," || tok == "|":
		case isLetters(tok):
			w := strings.ToLower(tok)
			if !unitWords[w] && !hasUnit(expected.Units, w) {
				return Answer{}, fmt.Errorf("unexpected word %q", tok)
			}
		default:
			n, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return Answer{}, fmt.Errorf("unexpected %q", tok)
			}
			parts = append(parts, n)
		}
	}
	if len(parts) != len(expected.Parts) {
		return Answer{}, fmt.Errorf("expected %d numbers, got %d", len(expected.Parts), len(parts))
	}
	return Composite(expected.Units, parts...), nil
}

// parseChoice accepts a 1-based option index or the option text.
func parseChoice(s string, expected Answer) (Answer, error) {
	if len(expected.Options) == 0 {
		return Choice(s), nil
	}
	if idx, err := strconv.Atoi(s); err == nil && idx >= 1 && idx <= len(expected.Options) {
		return Choice(expected.Options[idx-1], expected.Options...), nil
	}
	for _, opt := range expected.Options {
		if strings.EqualFold(strings.TrimSpace(opt), s) {
			return Choice(opt, expected.Options...), nil
		}
	}
	return Answer{}, fmt.Errorf("not one of %d options", len(expected.Options))
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}

func hasUnit(units []string, w string) bool {
	for _, u := range units {
		if strings.EqualFold(u, w) {
			return true
		}
	}
	return false
}
