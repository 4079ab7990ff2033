package hexdump

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Range selects the half-open interval [Start, End) of a stream. Without
// HasEnd the range runs to the end of the input.
type Range struct {
	Start  int64
	End    int64
	HasEnd bool
}

// WholeStream selects every byte.
var WholeStream = Range{}

func (r Range) Validate() error {
	if r.Start < 0 || (r.HasEnd && (r.End < 0 || r.Start > r.End)) {
		return errors.Wrapf(ErrorInvalidRange, "start %d, end %d", r.Start, r.End)
	}
	return nil
}

// Len returns the number of bytes selected, or -1 when the range is open.
func (r Range) Len() int64 {
	if !r.HasEnd {
		return -1
	}
	return r.End - r.Start
}

type OptionalOffset struct {
	Value int64
	Set   bool
}

func Offset(v int64) OptionalOffset {
	return OptionalOffset{Value: v, Set: true}
}

// ParseOffset accepts a decimal number or a 0x-prefixed hexadecimal one.
func ParseOffset(s string) (int64, error) {
	digits, base := s, 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits, base = s[2:], 16
	}

	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, errors.Wrapf(ErrorInvalidOffset, "%q", s)
	}

	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrorInvalidOffset, "%q", s)
	}
	return v, nil
}

// NormalizeRange turns any two of start, end and num into a Range. A single
// value is completed with defaults, none selects the whole stream.
func NormalizeRange(start, end, num OptionalOffset) (Range, error) {
	if start.Set && end.Set && num.Set {
		return Range{}, ErrorRangeConflict
	}

	for _, o := range []OptionalOffset{start, end, num} {
		if o.Set && o.Value < 0 {
			return Range{}, errors.Wrapf(ErrorInvalidRange, "negative offset %d", o.Value)
		}
	}

	var r Range
	switch {
	case start.Set && num.Set:
		if start.Value > math.MaxInt64-num.Value {
			return Range{}, errors.Wrap(ErrorInvalidRange, "start + num overflows")
		}
		r = Range{Start: start.Value, End: start.Value + num.Value, HasEnd: true}

	case end.Set && num.Set:
		if num.Value > end.Value {
			return Range{}, errors.Wrapf(ErrorInvalidRange, "num %d is larger than end %d", num.Value, end.Value)
		}
		r = Range{Start: end.Value - num.Value, End: end.Value, HasEnd: true}

	case num.Set:
		r = Range{End: num.Value, HasEnd: true}

	default:
		r = Range{Start: start.Value, End: end.Value, HasEnd: end.Set}
	}

	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}
