package money

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	pkgerrors "sports-scheduler/pkg/errors"
)

// Cents is a currency amount in hundredths. It marshals as a JSON decimal.
type Cents int64

// MaxFee is the largest accepted fee, 999,999.99.
const MaxFee Cents = 99999999

var (
	ErrInvalidAmount  = pkgerrors.New(pkgerrors.ErrValidation, "amount is not a decimal number")
	ErrNegativeAmount = pkgerrors.New(pkgerrors.ErrValidation, "amount must be non-negative")
	ErrAmountTooLarge = pkgerrors.New(pkgerrors.ErrValidation, "amount exceeds maximum allowed value")
	ErrTooManyDecimal = pkgerrors.New(pkgerrors.ErrValidation, "amount can have at most 2 decimal places")
)

// Parse reads a decimal amount such as "50", "50.5" or "75.00". It never
// rounds: more than two fractional digits is an error.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
	if s == "" {
		return 0, ErrInvalidAmount
	}
	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}
	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && (!hasDot || frac == "") {
		return 0, ErrInvalidAmount
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, ErrInvalidAmount
	}
	// trailing zeros beyond two places do not add precision
	frac = strings.TrimRight(frac, "0")
	if len(frac) > 2 {
		return 0, ErrTooManyDecimal
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}
	whole = strings.TrimLeft(whole, "0")
	if len(whole) > 12 {
		return 0, ErrAmountTooLarge
	}
	var units int64
	if whole != "" {
		n, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		units = n
	}
	f, _ := strconv.ParseInt(frac, 10, 64)
	c := Cents(units*100 + f)
	if neg && c != 0 {
		return 0, ErrNegativeAmount
	}
	return c, nil
}

// ParseFee parses and enforces the 0..999,999.99 fee range.
func ParseFee(s string) (Cents, error) {
	c, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if c > MaxFee {
		return 0, ErrAmountTooLarge
	}
	return c, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String formats the amount with exactly two decimals.
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Float is for display only, e.g. spreadsheet cells.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// MarshalJSON writes the amount as a bare decimal number.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (c *Cents) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	v, err := ParseFee(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Value stores cents as BIGINT.
func (c Cents) Value() (driver.Value, error) {
	return int64(c), nil
}

// Scan reads a BIGINT column.
func (c *Cents) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*c = Cents(v)
	case int32:
		*c = Cents(v)
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return errors.Wrap(err, "money: scan")
		}
		*c = Cents(n)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "money: scan")
		}
		*c = Cents(n)
	case nil:
		*c = 0
	default:
		return errors.Newf("money: unsupported scan type %T", src)
	}
	return nil
}

// Ptr returns a pointer to c.
func Ptr(c Cents) *Cents { return &c }
