package transcript

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// maxSeconds bounds provider durations; anything larger is not a real offset.
const maxSeconds = float64(math.MaxInt64 / 2)

var sixty = big.NewInt(60)

// FormatTimestamp renders seconds as "M:SS". Fractions are truncated.
func FormatTimestamp(sec float64) string {
	if sec < 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		sec = 0
	}
	if sec < maxSeconds {
		total := int64(math.Floor(sec))
		return fmt.Sprintf("%d:%02d", total/60, total%60)
	}
	total, _ := big.NewFloat(math.Floor(sec)).Int(nil)
	m, s := new(big.Int).QuoRem(total, sixty, new(big.Int))
	return fmt.Sprintf("%s:%02d", m.String(), s.Int64())
}

// ParseSeconds parses provider durations such as "12.5s".
func ParseSeconds(v string) (float64, error) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "s")
	if v == "" {
		return 0, fmt.Errorf("empty duration")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", v, err)
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	if f > maxSeconds {
		return 0, fmt.Errorf("duration %q out of range", v)
	}
	return f, nil
}

// Round2 rounds to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
