package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Capability 是所有帳戶類型共同的操作集合
type Capability interface {
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
	Balance() decimal.Decimal
	Info() string
}

// Account 銀行帳戶
//
// 結構:
//
//	id: 帳號，建立後不可變
//	holder: 戶名
//	variant: 帳戶類型，決定提款規則與 Info 內容
//	balance: 餘額
//	interestRate: 利率 (只有 Savings 使用)
//	overdraftLimit: 透支額度 (只有 Checking 使用)
type Account struct {
	id             string
	holder         string
	variant        Variant
	balance        decimal.Decimal
	interestRate   decimal.Decimal
	overdraftLimit decimal.Decimal
}

// Params 建立帳戶時的各類型參數
type Params struct {
	InitialBalance decimal.Decimal
	InterestRate   decimal.Decimal
	OverdraftLimit decimal.Decimal
}

// DefaultParams 回傳預設參數：餘額 0、利率 2%、透支額度 500
func DefaultParams() Params {
	return Params{
		InitialBalance: decimal.Zero,
		InterestRate:   decimal.RequireFromString("0.02"),
		OverdraftLimit: decimal.NewFromInt(500),
	}
}

// New 依類型建立帳戶並檢查初始狀態是否符合該類型的餘額下限
//
// 參數:
//
//	variant: 帳戶類型
//	id: 帳號
//	holder: 戶名
//	params: 初始餘額與類型參數，與類型無關的欄位會被忽略
//
// 回傳:
//
//	*Account: 帳戶實例
//	error: 參數錯誤
func New(variant Variant, id, holder string, params Params) (*Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidID
	}
	a := &Account{
		id:      id,
		holder:  holder,
		variant: variant,
		balance: params.InitialBalance,
	}
	switch variant {
	case VariantPlain:
	case VariantSavings:
		if params.InterestRate.IsNegative() || params.InterestRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRate, params.InterestRate)
		}
		a.interestRate = params.InterestRate
	case VariantChecking:
		if params.OverdraftLimit.IsNegative() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidOverdraftLimit, params.OverdraftLimit)
		}
		a.overdraftLimit = params.OverdraftLimit
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
	if a.balance.LessThan(a.floor()) {
		if variant == VariantChecking {
			return nil, fmt.Errorf("%w: initial balance %s", ErrOverdraftExceeded, a.balance.StringFixed(2))
		}
		return nil, fmt.Errorf("%w: initial balance %s", ErrInvalidAmount, a.balance.StringFixed(2))
	}
	return a, nil
}

// NewPlain 建立一般帳戶
func NewPlain(id, holder string, balance decimal.Decimal) (*Account, error) {
	return New(VariantPlain, id, holder, Params{InitialBalance: balance})
}

// NewSavings 建立儲蓄帳戶
func NewSavings(id, holder string, balance, interestRate decimal.Decimal) (*Account, error) {
	return New(VariantSavings, id, holder, Params{InitialBalance: balance, InterestRate: interestRate})
}

// NewChecking 建立支票帳戶
func NewChecking(id, holder string, balance, overdraftLimit decimal.Decimal) (*Account, error) {
	return New(VariantChecking, id, holder, Params{InitialBalance: balance, OverdraftLimit: overdraftLimit})
}

func (a *Account) ID() string {
	return a.id
}

func (a *Account) Holder() string {
	return a.holder
}

func (a *Account) Variant() Variant {
	return a.variant
}

// Balance 目前餘額
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// Deposit 存款
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// Withdraw 提款
// Checking 可以透支到 -overdraftLimit，其餘類型餘額不可為負
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.available()) {
		if a.variant == VariantChecking {
			return ErrOverdraftExceeded
		}
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// ApplyInterest 計息：balance += balance × interestRate
func (a *Account) ApplyInterest() error {
	if a.variant != VariantSavings {
		return ErrInterestNotSupported
	}
	a.balance = a.balance.Add(a.balance.Mul(a.interestRate))
	return nil
}

// Info 帳戶摘要，各類型在共同欄位後面附加自己的欄位
func (a *Account) Info() string {
	info := fmt.Sprintf("Account Number: %s, Holder: %s, Balance: %s", a.id, a.holder, a.balance.StringFixed(2))
	switch a.variant {
	case VariantSavings:
		info += fmt.Sprintf(", Interest Rate: %s%%", a.interestRate.Mul(hundred).StringFixed(2))
	case VariantChecking:
		info += fmt.Sprintf(", Overdraft Limit: %s", a.overdraftLimit.StringFixed(2))
	}
	return info
}

// Snapshot 回傳帳戶狀態的值拷貝
func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		ID:             a.id,
		Holder:         a.holder,
		Variant:        a.variant,
		Balance:        a.balance,
		InterestRate:   a.interestRate,
		OverdraftLimit: a.overdraftLimit,
	}
}

// available 可提領金額 (餘額 + 透支額度)
func (a *Account) available() decimal.Decimal {
	return a.balance.Add(a.overdraftLimit)
}

// floor 餘額下限
func (a *Account) floor() decimal.Decimal {
	return a.overdraftLimit.Neg()
}

// Snapshot 帳戶的唯讀快照，提供給紀錄檔、RPC 回應與列表使用
type Snapshot struct {
	ID             string
	Holder         string
	Variant        Variant
	Balance        decimal.Decimal
	InterestRate   decimal.Decimal
	OverdraftLimit decimal.Decimal
}

var _ Capability = (*Account)(nil)
