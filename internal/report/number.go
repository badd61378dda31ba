package report

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Blank is printed in place of a number when a cell has no samples
const Blank = "       "

// values outside these bounds no longer fit the cell in fixed notation
const (
	maxFixed = 9999999.5
	minFixed = -999999.5
)

// Number renders v in a seven character cell: two decimals below 10000,
// one decimal below 100000, an integer beyond. Integers are right aligned and
// a zero fraction is replaced with spaces. Negative values lose one magnitude
// to make room for the sign. Larger magnitudes use exponent notation and
// NaN or infinite values print as Blank.
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Blank
	}
	if v >= maxFixed || v <= minFixed {
		e := strconv.FormatFloat(v, 'e', 0, 64)
		return strings.Repeat(" ", len(Blank)-len(e)) + e
	}

	var b strings.Builder
	if v < 0 {
		writeNegative(&b, -v)
	} else {
		writePositive(&b, v)
	}
	return b.String()
}

func writePositive(b *strings.Builder, v float64) {
	v += 0.005
	i := int64(math.Floor(v))
	switch {
	case i >= 100000:
		v += 0.495
		i = int64(math.Floor(v))
		b.WriteString(strconv.FormatInt(i, 10))
		if i < 1000000 {
			b.WriteByte(' ')
		}
	case i >= 10000:
		v += 0.045
		i = int64(math.Floor(v))
		b.WriteString(strconv.FormatInt(i, 10))
		writeTenths(b, int(math.Floor((v-float64(i))*10)))
	default:
		pad(b, i, 1000)
		b.WriteString(strconv.FormatInt(i, 10))
		writeHundredths(b, int(math.Floor((v-float64(i))*100)))
	}
}

func writeNegative(b *strings.Builder, v float64) {
	v += 0.005
	i := int64(math.Floor(v))
	switch {
	case i >= 10000:
		v += 0.495
		i = int64(math.Floor(v))
		b.WriteByte('-')
		b.WriteString(strconv.FormatInt(i, 10))
		if i < 100000 {
			b.WriteByte(' ')
		}
	case i >= 1000:
		v += 0.045
		i = int64(math.Floor(v))
		b.WriteByte('-')
		b.WriteString(strconv.FormatInt(i, 10))
		writeTenths(b, int(math.Floor((v-float64(i))*10)))
	default:
		pad(b, i, 100)
		b.WriteByte('-')
		b.WriteString(strconv.FormatInt(i, 10))
		writeHundredths(b, int(math.Floor((v-float64(i))*100)))
	}
}

// pad writes one space per missing digit of i below magnitude m
func pad(b *strings.Builder, i, m int64) {
	for i < m && m > 1 {
		b.WriteByte(' ')
		m /= 10
	}
}

func writeTenths(b *strings.Builder, dec int) {
	if dec == 0 {
		b.WriteString("  ")
		return
	}
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(dec))
}

func writeHundredths(b *strings.Builder, dec int) {
	switch {
	case dec == 0:
		b.WriteString("   ")
	case dec < 10:
		b.WriteString(".0")
		b.WriteString(strconv.Itoa(dec))
	default:
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(dec))
	}
}

// PerIteration renders v/n, or Blank when n is zero
func PerIteration(v float64, n int) string {
	if n == 0 {
		return Blank
	}
	return Number(v / float64(n))
}

// Millis renders a duration in milliseconds
func Millis(d time.Duration) string {
	return Number(float64(d) / float64(time.Millisecond))
}

// MillisPer renders a nanosecond quantity divided by n, in milliseconds
func MillisPer(ns float64, n int) string {
	if n == 0 {
		return Blank
	}
	return Number(ns / float64(n) / float64(time.Millisecond))
}
