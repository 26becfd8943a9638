// Package money holds monetary values as integer cents.
//
// Amounts travel over JSON as decimal numbers (12.5) or decimal strings
// ("12.50"). Parsing applies half-up rounding on the third decimal so that
// floating point input never leaks into storage; a sub-cent value such as
// 0.004 therefore parses to zero. Magnitudes above MaxAmount are rejected.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a monetary value in cents.
type Amount int64

// MaxAmount is the largest magnitude Parse accepts, 999,999,999,999.99.
// Sums of two amounts stay far below the int64 range.
const MaxAmount Amount = 99_999_999_999_999

const maxUnits = int64(MaxAmount) / 100

// Parse converts a decimal string to an Amount.
//
//	Parse("12.34")  -> 1234
//	Parse("12,34")  -> 1234
//	Parse("12.345") -> 1235
//	Parse("-3")     -> -300
//
// Sign is preserved so callers can report "must be positive" instead of a
// parse failure.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return 0, ErrInvalidAmount
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || units > maxUnits {
		return 0, ErrInvalidAmount
	}

	var cents int64
	if len(fracPart) > 0 {
		cents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			cents += int64(fracPart[1] - '0')
		}
		if len(fracPart) > 2 && fracPart[2] >= '5' {
			cents++
		}
	}

	total := units*100 + cents
	if total > int64(MaxAmount) {
		return 0, ErrInvalidAmount
	}
	if negative {
		total = -total
	}
	return Amount(total), nil
}

// digitsOnly accepts ASCII digits only; the cent arithmetic is byte based.
func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FromCents builds an Amount from a cent value.
func FromCents(c int64) Amount { return Amount(c) }

func (a Amount) Cents() int64 { return int64(a) }

func (a Amount) IsPositive() bool { return a > 0 }

// String renders the amount with two decimals, e.g. "12.50".
func (a Amount) String() string {
	c := int64(a)
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// Float returns the value for display purposes only.
func (a Amount) Float() float64 {
	return float64(a) / 100.0
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a decimal string. null leaves the
// value untouched.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return ErrInvalidAmount
		}
		raw = unquoted
	}
	if strings.ContainsAny(raw, "eE") {
		return ErrInvalidAmount
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value stores the amount as an integer cent column.
func (a Amount) Value() (driver.Value, error) {
	return int64(a), nil
}

func (a *Amount) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*a = Amount(v)
	case int32:
		*a = Amount(v)
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("scan amount: %w", err)
		}
		*a = Amount(n)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("scan amount: %w", err)
		}
		*a = Amount(n)
	case nil:
		*a = 0
	default:
		return fmt.Errorf("scan amount: unsupported type %T", src)
	}
	return nil
}
