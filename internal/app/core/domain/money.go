package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal 解析使用者輸入的金額或利率字串
func ParseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q", ErrInvalidNumber, s)
	}
	return d, nil
}

// ParseOptionalDecimal 空字串視為未指定
func ParseOptionalDecimal(s string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := ParseDecimal(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
