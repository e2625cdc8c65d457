package timer

import (
	"fmt"
	"math"
)

// Format renders seconds as "MM:SS".
func Format(sec float64) string {
	if sec < 0 || math.IsNaN(sec) {
		sec = 0
	}
	total := int(sec)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatDetailed renders seconds as "MM:SS:cc" with hundredths.
func FormatDetailed(sec float64) string {
	if sec < 0 || math.IsNaN(sec) {
		sec = 0
	}
	total := int(sec)
	cs := int((sec - math.Floor(sec)) * 100)
	return fmt.Sprintf("%02d:%02d:%02d", total/60, total%60, cs)
}
