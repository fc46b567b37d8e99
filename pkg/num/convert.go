package num

import (
	"math"
	"strconv"
	"strings"
)

// ToFloat64 converts a raw cell value to float64, returning 0 when the
// value is empty or not a number. Thousands separators and surrounding
// whitespace are tolerated.
func ToFloat64(val string) float64 {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// ToInt converts a raw cell value to int, returning 0 on failure.
func ToInt(val string) int {
	return int(math.Round(ToFloat64(val)))
}
