package render

import (
	"fmt"
	"strconv"
)

// Percentage is consumed as a share of required, in percent. It is 0 when
// required is not positive and is not clamped.
func Percentage(consumed, required float64) float64 {
	if required <= 0 {
		return 0
	}
	return consumed / required * 100
}

// ClampPercentage limits p to [0,100] for bar widths.
func ClampPercentage(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// FormatPercentage renders p to one decimal with a percent sign.
func FormatPercentage(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func formatWidth(p float64) string {
	return strconv.FormatFloat(ClampPercentage(p), 'f', -1, 64)
}
