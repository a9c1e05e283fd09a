package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TenorDays converts a tenor label ("1D", "2W", "3M", "10Y") into calendar
// days. Month and year tenors are resolved against the reference date so a
// "1M" quote on Jan 31 and on Feb 1 cover different day counts.
func TenorDays(tenor string, ref time.Time) (int, error) {
	n, unit, err := splitTenor(tenor)
	if err != nil {
		return 0, err
	}
	switch unit {
	case 'D':
		return n, nil
	case 'W':
		return n * 7, nil
	case 'M':
		return int(ref.AddDate(0, n, 0).Sub(ref).Hours() / 24), nil
	case 'Y':
		return int(ref.AddDate(n, 0, 0).Sub(ref).Hours() / 24), nil
	}
	return 0, fmt.Errorf("unknown tenor unit %q", tenor)
}

// TenorYears converts a tenor label into approximate years, matching the
// convention used for curve plotting (365d years, 52w years, 12m years).
func TenorYears(tenor string) (float64, error) {
	n, unit, err := splitTenor(tenor)
	if err != nil {
		return 0, err
	}
	switch unit {
	case 'D':
		return float64(n) / 365, nil
	case 'W':
		return float64(n) / 52, nil
	case 'M':
		return float64(n) / 12, nil
	case 'Y':
		return float64(n), nil
	}
	return 0, fmt.Errorf("unknown tenor unit %q", tenor)
}

func splitTenor(tenor string) (int, byte, error) {
	s := strings.ToUpper(strings.TrimSpace(tenor))
	if len(s) < 2 {
		return 0, 0, fmt.Errorf("malformed tenor %q", tenor)
	}
	unit := s[len(s)-1]
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 {
		return 0, 0, fmt.Errorf("malformed tenor %q", tenor)
	}
	return n, unit, nil
}
