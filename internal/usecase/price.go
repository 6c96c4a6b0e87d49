package usecase

import "strconv"

// PKR表記（en-PK、小数なし）。例: 1200 → "Rs 1,200"
func FormatPrice(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatInt(v, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}

	if neg {
		return "Rs -" + s
	}
	return "Rs " + s
}
