package domain

import (
	"fmt"
	"strings"
)

// Variant 帳戶類型
// 封閉集合，所有行為差異都由 Account 依 Variant 分派
type Variant uint8

const (
	// 一般帳戶
	VariantPlain Variant = 1
	// 儲蓄帳戶 (可計息)
	VariantSavings Variant = 2
	// 支票帳戶 (可透支)
	VariantChecking Variant = 3
)

func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	case VariantSavings:
		return "savings"
	case VariantChecking:
		return "checking"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// ParseVariant 解析帳戶類型字串 (不分大小寫)
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return VariantPlain, nil
	case "savings":
		return VariantSavings, nil
	case "checking":
		return VariantChecking, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}
