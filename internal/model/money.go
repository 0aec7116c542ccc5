package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cents is a dollar amount held as a whole number of cents.
type Cents int64

// ErrInvalidPrice is returned for prices that are not a non-negative
// dollar amount with at most two decimal places.
var ErrInvalidPrice = errors.New("invalid price")

// ParseCents reads a decimal dollar amount such as "18.5" or "7.00"
// without going through a float.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" || (hasDot && frac == "") || len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	for _, part := range []string{whole, frac} {
		for i := 0; i < len(part); i++ {
			if part[i] < '0' || part[i] > '9' {
				return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
			}
		}
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	frac += strings.Repeat("0", 2-len(frac))
	cents, _ := strconv.ParseInt(frac, 10, 64)
	return Cents(dollars*100 + cents), nil
}

// String renders the amount as "$12.50".
func (c Cents) String() string {
	return "$" + c.decimal()
}

func (c Cents) decimal() string {
	return fmt.Sprintf("%d.%02d", int64(c)/100, int64(c)%100)
}

// MarshalJSON writes the amount as a dollar number with two decimals.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.decimal()), nil
}

func (c *Cents) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseCents(node.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
