package domain

import "errors"

var (
	// ErrInvalidAmount 金額必須為正數 (或初始餘額違反帳戶下限)
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds 餘額不足 (Plain / Savings)
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrOverdraftExceeded 超過透支額度 (Checking)
	ErrOverdraftExceeded = errors.New("overdraft limit exceeded")

	// ErrNotFound 找不到帳戶
	ErrNotFound = errors.New("account not found")

	// ErrDuplicateID 帳戶已存在
	ErrDuplicateID = errors.New("account already exists")

	// ErrInvalidID 帳號不可為空
	ErrInvalidID = errors.New("account number must not be empty")

	// ErrInvalidRate 利率必須介於 [0, 1)
	ErrInvalidRate = errors.New("interest rate must be in [0, 1)")

	// ErrInvalidOverdraftLimit 透支額度不可為負
	ErrInvalidOverdraftLimit = errors.New("overdraft limit must not be negative")

	// ErrUnknownVariant 未知的帳戶類型
	ErrUnknownVariant = errors.New("unknown account type")

	// ErrInterestNotSupported 只有儲蓄帳戶可以計息
	ErrInterestNotSupported = errors.New("interest only applies to savings accounts")

	// ErrInvalidNumber 無法解析的數字
	ErrInvalidNumber = errors.New("invalid number")

	// ErrIO 帳戶紀錄檔讀寫失敗
	ErrIO = errors.New("account log i/o failed")
)
