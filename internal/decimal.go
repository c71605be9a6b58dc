package internal

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// statisticsScale is the number of fractional digits kept in SUM and AVG results.
const statisticsScale = 2

type Decimal struct {
	value apd.Decimal
}

func NewDecimal(s string) (Decimal, error) {
	var d apd.Decimal
	_, _, err := d.SetString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal: %w", err)
	}
	if d.Form != apd.Finite {
		return Decimal{}, fmt.Errorf("invalid decimal: %q is not a finite number", s)
	}
	return Decimal{value: d}, nil
}

func NewDecimalFromInt64(i int64) Decimal {
	var d apd.Decimal
	d.SetInt64(i)
	return Decimal{value: d}
}

// NewDecimalFromValue converts an extracted record value into a Decimal.
// Strings are parsed as decimal literals, integers are taken exactly and floats
// through their shortest round-trip representation.
func NewDecimalFromValue(v any) (Decimal, error) {
	switch x := v.(type) {
	case Decimal:
		return x, nil
	case *Decimal:
		if x == nil {
			return Decimal{}, fmt.Errorf("%w: nil decimal", ErrArithmetic)
		}
		return *x, nil
	case apd.Decimal:
		return checkFinite(Decimal{value: x})
	case *apd.Decimal:
		if x == nil {
			return Decimal{}, fmt.Errorf("%w: nil decimal", ErrArithmetic)
		}
		return checkFinite(Decimal{value: *x})
	case string:
		d, err := NewDecimal(x)
		if err != nil {
			return Decimal{}, fmt.Errorf("%w: cannot interpret %q as a decimal", ErrArithmetic, x)
		}
		return d, nil
	case int:
		return NewDecimalFromInt64(int64(x)), nil
	case int8:
		return NewDecimalFromInt64(int64(x)), nil
	case int16:
		return NewDecimalFromInt64(int64(x)), nil
	case int32:
		return NewDecimalFromInt64(int64(x)), nil
	case int64:
		return NewDecimalFromInt64(x), nil
	case uint:
		return fromLiteral(strconv.FormatUint(uint64(x), 10))
	case uint8:
		return NewDecimalFromInt64(int64(x)), nil
	case uint16:
		return NewDecimalFromInt64(int64(x)), nil
	case uint32:
		return NewDecimalFromInt64(int64(x)), nil
	case uint64:
		return fromLiteral(strconv.FormatUint(x, 10))
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return Decimal{}, fmt.Errorf("%w: %v is not a finite number", ErrArithmetic, x)
		}
		return fromLiteral(strconv.FormatFloat(float64(x), 'f', -1, 32))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Decimal{}, fmt.Errorf("%w: %v is not a finite number", ErrArithmetic, x)
		}
		return fromLiteral(strconv.FormatFloat(x, 'f', -1, 64))
	case nil:
		return Decimal{}, fmt.Errorf("%w: missing value", ErrArithmetic)
	default:
		return Decimal{}, fmt.Errorf("%w: unsupported value type %T", ErrArithmetic, v)
	}
}

func fromLiteral(s string) (Decimal, error) {
	d, err := NewDecimal(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("%w: %v", ErrArithmetic, err)
	}
	return d, nil
}

func checkFinite(d Decimal) (Decimal, error) {
	if d.value.Form != apd.Finite {
		return Decimal{}, fmt.Errorf("%w: %s is not a finite number", ErrArithmetic, d.value.String())
	}
	return d, nil
}

func (d Decimal) String() string {
	return d.value.String()
}

func (d Decimal) IsZero() bool {
	return d.value.IsZero()
}

func (d Decimal) Cmp(other Decimal) int {
	return d.value.Cmp(&other.value)
}

// minPrecision is the smallest working precision of arithmetic contexts.
const minPrecision = 34

// Add returns the exact sum of d and other.
func (d Decimal) Add(other Decimal) Decimal {
	var result apd.Decimal
	ctx := exactContext(span(&d.value, &other.value) + 1)
	ctx.Add(&result, &d.value, &other.value)
	return Decimal{value: result}
}

// RoundHalfUp returns d rounded half-up to the given number of fractional digits.
func (d Decimal) RoundHalfUp(places int32) (Decimal, error) {
	var result apd.Decimal
	ctx := exactContext(high(&d.value) + int64(places) + 1)
	ctx.Rounding = apd.RoundHalfUp
	if _, err := ctx.Quantize(&result, &d.value, -places); err != nil {
		return Decimal{}, fmt.Errorf("%w: cannot round %s to %d places: %v", ErrArithmetic, d.value.String(), places, err)
	}
	return Decimal{value: result}, nil
}

// DivRoundHalfUp divides d by other and rounds the quotient half-up to places
// fractional digits. A zero dividend yields zero without inspecting the divisor.
//
// The quotient is computed as an integer division of d scaled by 10^places, so
// the rounding sees the exact remainder.
func (d Decimal) DivRoundHalfUp(other Decimal, places int32) (Decimal, error) {
	if d.IsZero() {
		return NewDecimalFromInt64(0), nil
	}
	if other.IsZero() {
		return Decimal{}, fmt.Errorf("%w: division by zero", ErrArithmetic)
	}

	var scaled apd.Decimal
	scaled.Set(&d.value)
	scaled.Exponent += places

	ctx := exactContext(span(&scaled, &other.value) + 2)
	var quotient, remainder apd.Decimal
	if _, err := ctx.QuoInteger(&quotient, &scaled, &other.value); err != nil {
		return Decimal{}, fmt.Errorf("%w: cannot divide %s by %s: %v", ErrArithmetic, d.value.String(), other.value.String(), err)
	}
	if _, err := ctx.Rem(&remainder, &scaled, &other.value); err != nil {
		return Decimal{}, fmt.Errorf("%w: cannot divide %s by %s: %v", ErrArithmetic, d.value.String(), other.value.String(), err)
	}

	var twice, divisor apd.Decimal
	remainder.Negative = false
	divisor.Abs(&other.value)
	ctx.Add(&twice, &remainder, &remainder)
	if twice.Cmp(&divisor) >= 0 {
		step := apd.New(1, 0)
		if d.value.Negative != other.value.Negative {
			step.Negative = true
		}
		ctx.Add(&quotient, &quotient, step)
	}

	quotient.Exponent -= places
	return Decimal{value: quotient}, nil
}

// exactContext returns a context wide enough to hold precision digits.
func exactContext(precision int64) *apd.Context {
	if precision < minPrecision {
		precision = minPrecision
	}
	return apd.BaseContext.WithPrecision(uint32(precision))
}

// high is the decimal position just above the most significant digit of x.
func high(x *apd.Decimal) int64 {
	return x.NumDigits() + int64(x.Exponent)
}

// span is the number of digit positions covering every digit of xs and the units
// position.
func span(xs ...*apd.Decimal) int64 {
	var top, bottom int64
	for _, x := range xs {
		top = max(top, high(x))
		bottom = min(bottom, int64(x.Exponent))
	}
	return top - bottom
}

// PlainString renders d without an exponent and without trailing fractional zeros.
func (d Decimal) PlainString() string {
	var reduced apd.Decimal
	reduced.Reduce(&d.value)
	if reduced.IsZero() {
		reduced.Negative = false
	}
	return reduced.Text('f')
}
