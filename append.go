package bytekit

import (
	"math"
	"strconv"
)

// ASCII numeric rendering at the write cursor.

// AppendInt64 renders v in decimal. Digits are extracted right-to-left
// into a fixed scratch buffer and copied out in one write; the minimum
// value is handled by taking the magnitude in unsigned arithmetic, where
// it does not overflow.
func (b *Bytes) AppendInt64(v int64) error {
	var scratch [20]byte // len("-9223372036854775808")
	i := len(scratch)

	neg := v < 0
	u := uint64(v)
	if neg {
		u = -u
	}
	for u >= 10 {
		i--
		scratch[i] = byte('0' + u%10)
		u /= 10
	}
	i--
	scratch[i] = byte('0' + u)
	if neg {
		i--
		scratch[i] = '-'
	}
	return b.WriteSlice(scratch[i:])
}

// AppendUint64 renders v in decimal.
func (b *Bytes) AppendUint64(v uint64) error {
	var scratch [20]byte
	i := len(scratch)
	for v >= 10 {
		i--
		scratch[i] = byte('0' + v%10)
		v /= 10
	}
	i--
	scratch[i] = byte('0' + v)
	return b.WriteSlice(scratch[i:])
}

const hexDigits = "0123456789abcdef"

// AppendUint64Hex renders v in lowercase base-16.
func (b *Bytes) AppendUint64Hex(v uint64) error {
	var scratch [16]byte
	i := len(scratch)
	for v >= 16 {
		i--
		scratch[i] = hexDigits[v&0xF]
		v >>= 4
	}
	i--
	scratch[i] = hexDigits[v]
	return b.WriteSlice(scratch[i:])
}

// AppendFloat64 renders d as the shortest decimal string that re-parses to
// the same bits. The common path splits the IEEE-754 mantissa at the
// binary point and generates fractional digits by repeated multiplication
// by five (a decimal shift with the power of two folded into the binary
// shift), stopping as soon as the digits so far, or those digits with the
// last one rounded up, reproduce d exactly. Special values render as NaN,
// Infinity and -Infinity.
func (b *Bytes) AppendFloat64(d float64) error {
	switch {
	case math.IsNaN(d):
		return b.WriteString("NaN")
	case math.IsInf(d, 1):
		return b.WriteString("Infinity")
	case math.IsInf(d, -1):
		return b.WriteString("-Infinity")
	}

	bits := math.Float64bits(d)
	neg := bits>>63 != 0
	if d == 0 {
		if neg {
			return b.WriteString("-0.0")
		}
		return b.WriteString("0.0")
	}

	abs := math.Abs(d)
	if abs == math.Trunc(abs) && abs < 1<<53 {
		if err := b.AppendInt64(int64(d)); err != nil {
			return err
		}
		return b.WriteString(".0")
	}

	exponent := int(bits >> 52 & 0x7FF)
	mantissa := bits & (1<<52 - 1)
	if exponent > 0 {
		mantissa |= 1 << 52
	} else {
		exponent = 1 // subnormal
	}

	// shift is the number of fractional binary digits. The exact path
	// needs the whole fraction walk inside 64-bit arithmetic (frac*5 must
	// not overflow), so very small magnitudes take the fallback; values
	// at or above 2^53 were integral and never reach here.
	if exponent >= 1076 || exponent <= 1013 {
		return b.appendFloatFallback(d)
	}
	shift := uint(1075 - exponent)
	intPart := mantissa >> shift
	frac := mantissa & (1<<shift - 1)

	// Fold trailing zero bits into the shift to widen the overflow window.
	for frac != 0 && frac&1 == 0 {
		frac >>= 1
		shift--
	}

	cand := make([]byte, 0, 32)
	if neg {
		cand = append(cand, '-')
	}
	cand = strconv.AppendUint(cand, intPart, 10)
	cand = append(cand, '.')

	for frac != 0 {
		frac *= 5
		shift--
		digit := frac >> shift
		frac &= 1<<shift - 1
		cand = append(cand, byte('0'+digit))

		if parsesTo(cand, bits) {
			return b.WriteSlice(cand)
		}
		if rounded, ok := incrementDecimal(cand); ok && parsesTo(rounded, bits) {
			return b.WriteSlice(rounded)
		}
		if frac != 0 && frac > math.MaxUint64/5 {
			// Next step would overflow; hand the shortest search the rest.
			return b.appendFloatFallback(d)
		}
	}
	return b.WriteSlice(cand)
}

// parsesTo reports whether cand re-parses to exactly the bit pattern want.
func parsesTo(cand []byte, want uint64) bool {
	v, err := strconv.ParseFloat(string(cand), 64)
	return err == nil && math.Float64bits(v) == want
}

// incrementDecimal returns a copy of cand with its final digit rounded up,
// carrying through earlier digits. ok is false when the carry would run
// past the integer part's first digit (the caller just keeps generating).
func incrementDecimal(cand []byte) ([]byte, bool) {
	out := append([]byte(nil), cand...)
	for i := len(out) - 1; i >= 0; i-- {
		switch c := out[i]; {
		case c == '.':
			continue
		case c == '-':
			return nil, false
		case c < '9':
			out[i] = c + 1
			return out, true
		default:
			out[i] = '0'
		}
	}
	return nil, false
}

// appendFloatFallback finds the shortest round-tripping form by probing
// increasing precision. Used for magnitudes outside the exact fraction
// walk (see DESIGN notes on extreme exponents).
func (b *Bytes) appendFloatFallback(d float64) error {
	for prec := 1; prec <= 17; prec++ {
		s := strconv.FormatFloat(d, 'g', prec, 64)
		if v, err := strconv.ParseFloat(s, 64); err == nil && math.Float64bits(v) == math.Float64bits(d) {
			return b.WriteString(s)
		}
	}
	return b.WriteString(strconv.FormatFloat(d, 'g', -1, 64))
}
