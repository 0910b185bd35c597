// Package cstrconv parses integers out of byte strings the way the C strtol family does: leading
// whitespace and an optional sign are skipped, the base may be detected from a prefix, and parsing
// stops silently at the first byte that is not a digit. Callers learn how many bytes were consumed
// so the parser composes with wider ones.
package cstrconv

import (
	"math"
	"math/bits"

	"github.com/cockroachdb/errors"
	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrRange is returned when the digits describe a value that does not fit in the result type.
	// The value returned alongside it is saturated.
	ErrRange = pkgerrors.New("value out of range")
	// ErrInvalidBase is returned when the base is neither 0 nor in the range 2 through 36
	ErrInvalidBase = pkgerrors.New("invalid base")
)

const (
	// BaseAuto detects the base from the prefix of the text: 0x for 16, 0b for 2, a leading 0 for 8,
	// otherwise 10
	BaseAuto = 0

	minBase = 2
	maxBase = 36
)

type parsed struct {
	negative  bool
	magnitude uint64
	overflow  bool
	consumed  int
}

// isSpace matches the C locale's isspace
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return maxBase
}

// hasPrefix reports whether text[i:] starts with '0' followed by either case of letter and then a
// digit that is valid in base
func hasPrefix(text []byte, i int, letter byte, base int) bool {
	return i+2 < len(text) &&
		text[i] == '0' &&
		(text[i+1]|0x20) == letter &&
		digitValue(text[i+2]) < base
}

func parse(text []byte, base int) (parsed, error) {
	if base != BaseAuto && (base < minBase || base > maxBase) {
		return parsed{}, errors.Wrapf(ErrInvalidBase, "base %d", base)
	}

	var result parsed
	i := 0
	for i < len(text) && isSpace(text[i]) {
		i++
	}

	if i < len(text) && (text[i] == '-' || text[i] == '+') {
		result.negative = text[i] == '-'
		i++
	}

	// A prefix is only consumed when a digit follows it; "0x" alone parses as the number 0
	// followed by an 'x'
	switch {
	case base == BaseAuto && hasPrefix(text, i, 'x', 16):
		base = 16
		i += 2
	case base == BaseAuto && hasPrefix(text, i, 'b', 2):
		base = 2
		i += 2
	case base == BaseAuto && i < len(text) && text[i] == '0':
		base = 8
	case base == BaseAuto:
		base = 10
	case base == 16 && hasPrefix(text, i, 'x', 16):
		i += 2
	}

	start := i
	for i < len(text) {
		digit := digitValue(text[i])
		if digit >= base {
			break
		}

		if !result.overflow {
			hi, product := bits.Mul64(result.magnitude, uint64(base))
			sum := product + uint64(digit)
			if hi != 0 || sum < product {
				result.overflow = true
				result.magnitude = math.MaxUint64
			} else {
				result.magnitude = sum
			}
		}
		i++
	}

	if i == start {
		// No digits: nothing was consumed, not even whitespace or a sign
		return parsed{}, nil
	}

	result.consumed = i
	return result, nil
}

// ParseInt parses a signed integer from the front of text in the given base (0 or 2 through 36)
// and returns its value along with the number of bytes consumed. Text with no digits yields 0 with
// nothing consumed. A value outside the int64 range saturates to math.MinInt64 or math.MaxInt64
// and returns ErrRange, though every digit is still consumed.
func ParseInt(text []byte, base int) (int64, int, error) {
	result, err := parse(text, base)
	if err != nil {
		return 0, 0, err
	}

	if result.negative {
		if result.overflow || result.magnitude > uint64(math.MaxInt64)+1 {
			return math.MinInt64, result.consumed, errors.Wrapf(ErrRange, "%q", text[:result.consumed])
		}
		return -int64(result.magnitude), result.consumed, nil
	}

	if result.overflow || result.magnitude > math.MaxInt64 {
		return math.MaxInt64, result.consumed, errors.Wrapf(ErrRange, "%q", text[:result.consumed])
	}
	return int64(result.magnitude), result.consumed, nil
}

// ParseUint parses an unsigned integer the way strtoul does. A leading '-' negates the value in
// unsigned arithmetic, so "-1" yields math.MaxUint64. Values that do not fit in 64 bits saturate
// to math.MaxUint64 and return ErrRange.
func ParseUint(text []byte, base int) (uint64, int, error) {
	result, err := parse(text, base)
	if err != nil {
		return 0, 0, err
	}

	if result.overflow {
		return math.MaxUint64, result.consumed, errors.Wrapf(ErrRange, "%q", text[:result.consumed])
	}

	if result.negative {
		return -result.magnitude, result.consumed, nil
	}
	return result.magnitude, result.consumed, nil
}
