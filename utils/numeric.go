package utils

import (
	"strconv"
	"strings"
)

// CoerceFloat converts loosely typed numeric values coming back from the
// AI service into a float64. It accepts plain numbers, numeric strings,
// ranges like "250-300" (averaged) and values with trailing units like
// "12 g" or "250 kcal". Anything unparseable yields 0.
func CoerceFloat(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return parseLooseFloat(n)
	default:
		return 0
	}
}

func parseLooseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// range like "250-300" or "250 - 300": average the two ends
	if i := strings.Index(s[1:], "-"); i >= 0 {
		lo := parseLeadingNumber(s[:i+1])
		hi := parseLeadingNumber(s[i+2:])
		if lo > 0 || hi > 0 {
			return (lo + hi) / 2
		}
	}

	return parseLeadingNumber(s)
}

// parseLeadingNumber reads the leading numeric portion, dropping unit
// suffixes like "g", "kcal" or "~".
func parseLeadingNumber(s string) float64 {
	s = strings.TrimSpace(strings.TrimLeft(s, "~≈ "))
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}
