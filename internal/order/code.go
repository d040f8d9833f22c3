package order

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"time"
)

// CodePrefix is part of the customer-facing lookup contract; do not change.
const CodePrefix = "ORD-GH-"

var (
	ErrInvalidCode   = errors.New("invalid order code")
	ErrCodeTaken     = errors.New("order code already taken")
	ErrCodeExhausted = errors.New("could not allocate a unique order code")
)

var codeRe = regexp.MustCompile(`^ORD-GH-(\d{4})-(\d{5})$`)

// CodeGenerator returns a fresh order code for an order created at t.
type CodeGenerator func(t time.Time) string

// RandomCode draws the serial from 10000..99999.
func RandomCode(t time.Time) string {
	return FormatCode(t.Year(), 10000+rand.Intn(90000))
}

func FormatCode(year, serial int) string {
	return fmt.Sprintf("%s%04d-%05d", CodePrefix, year, serial)
}

// ParseCode validates a customer supplied code and returns its year and serial.
func ParseCode(code string) (year, serial int, err error) {
	m := codeRe.FindStringSubmatch(code)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	year, _ = strconv.Atoi(m[1])
	serial, _ = strconv.Atoi(m[2])
	return year, serial, nil
}
