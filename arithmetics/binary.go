package arithmetics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotBinary      = errors.New("not a binary number")
	ErrNegativeResult = errors.New("negative result")
)

func checkBinary(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrNotBinary)
	}
	if strings.Trim(s, "01") != "" {
		return fmt.Errorf("%w: %q", ErrNotBinary, s)
	}
	return nil
}

// normalize strips leading zeros, keeping at least one digit.
func normalize(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}

func ToBinary(n uint64) string {
	return strconv.FormatUint(n, 2)
}

func FromBinary(s string) (uint64, error) {
	if err := checkBinary(s); err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotBinary, err)
	}
	return n, nil
}
