package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-account-desk/internal/app/core/domain"
)

// CreateRequest 建立帳戶的請求
//
// ID 為空時自動產生 UUID；InterestRate / OverdraftLimit 未指定時使用 CoreUseCase 的預設值
type CreateRequest struct {
	Variant        domain.Variant
	ID             string
	Holder         string
	InitialBalance decimal.Decimal
	InterestRate   decimal.NullDecimal
	OverdraftLimit decimal.NullDecimal
}

// CoreUseCase 是核心業務邏輯層
// 所有指令介面 (console、gRPC) 都只透過它操作帳戶
type CoreUseCase struct {
	directory Directory
	log       AccountLog
	defaults  domain.Params
	logger    *slog.Logger
	newID     func() string
}

// Option 設定 CoreUseCase 的選項
type Option func(*CoreUseCase)

// WithLogger 設定 logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *CoreUseCase) {
		c.logger = logger
	}
}

// WithDefaults 設定未指定時使用的利率與透支額度
func WithDefaults(params domain.Params) Option {
	return func(c *CoreUseCase) {
		c.defaults = params
	}
}

// WithIDGenerator 替換帳號產生器 (測試用)
func WithIDGenerator(newID func() string) Option {
	return func(c *CoreUseCase) {
		c.newID = newID
	}
}

func NewCoreUseCase(directory Directory, accountLog AccountLog, opts ...Option) *CoreUseCase {
	c := &CoreUseCase{
		directory: directory,
		log:       accountLog,
		defaults:  domain.DefaultParams(),
		logger:    slog.Default(),
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create 建立帳戶
//
// 參數:
//
//	ctx: 上下文
//	req: 建立請求
//
// 回傳:
//
//	domain.Snapshot: 新帳戶快照
//	error: 帳號重複或參數錯誤
func (c *CoreUseCase) Create(ctx context.Context, req CreateRequest) (domain.Snapshot, error) {
	id := req.ID
	if id == "" {
		id = c.newID()
	}
	params := domain.Params{
		InitialBalance: req.InitialBalance,
		InterestRate:   c.defaults.InterestRate,
		OverdraftLimit: c.defaults.OverdraftLimit,
	}
	if req.InterestRate.Valid {
		params.InterestRate = req.InterestRate.Decimal
	}
	if req.OverdraftLimit.Valid {
		params.OverdraftLimit = req.OverdraftLimit.Decimal
	}

	account, err := domain.New(req.Variant, id, req.Holder, params)
	if err != nil {
		c.logger.InfoContext(ctx, "create account rejected", slog.String("id", id), slog.Any("error", err))
		return domain.Snapshot{}, err
	}
	if err := c.directory.Insert(account); err != nil {
		c.logger.InfoContext(ctx, "create account rejected", slog.String("id", id), slog.Any("error", err))
		return domain.Snapshot{}, err
	}
	c.logger.DebugContext(ctx, "account created",
		slog.String("id", id),
		slog.String("variant", req.Variant.String()),
		slog.String("balance", account.Balance().String()),
	)
	return account.Snapshot(), nil
}

// Lookup 取得帳戶快照
func (c *CoreUseCase) Lookup(ctx context.Context, id string) (domain.Snapshot, error) {
	account, err := c.directory.Lookup(id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return account.Snapshot(), nil
}

// Deposit 存款，回傳新餘額
func (c *CoreUseCase) Deposit(ctx context.Context, id string, amount decimal.Decimal) (decimal.Decimal, error) {
	return c.mutate(ctx, "deposit", id, func(a *domain.Account) error {
		return a.Deposit(amount)
	}, slog.String("amount", amount.String()))
}

// Withdraw 提款，回傳新餘額
func (c *CoreUseCase) Withdraw(ctx context.Context, id string, amount decimal.Decimal) (decimal.Decimal, error) {
	return c.mutate(ctx, "withdraw", id, func(a *domain.Account) error {
		return a.Withdraw(amount)
	}, slog.String("amount", amount.String()))
}

// ApplyInterest 對儲蓄帳戶計息，回傳新餘額
func (c *CoreUseCase) ApplyInterest(ctx context.Context, id string) (decimal.Decimal, error) {
	return c.mutate(ctx, "apply interest", id, func(a *domain.Account) error {
		return a.ApplyInterest()
	})
}

// BalanceOf 查詢餘額
func (c *CoreUseCase) BalanceOf(ctx context.Context, id string) (decimal.Decimal, error) {
	account, err := c.directory.Lookup(id)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance(), nil
}

// InfoOf 查詢帳戶摘要
func (c *CoreUseCase) InfoOf(ctx context.Context, id string) (string, error) {
	account, err := c.directory.Lookup(id)
	if err != nil {
		return "", err
	}
	return account.Info(), nil
}

// List 依建立順序回傳所有帳戶快照
func (c *CoreUseCase) List(ctx context.Context) []domain.Snapshot {
	accounts := c.directory.List()
	out := make([]domain.Snapshot, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Snapshot())
	}
	return out
}

// Save 將單一帳戶寫入紀錄檔
func (c *CoreUseCase) Save(ctx context.Context, id string) error {
	account, err := c.directory.Lookup(id)
	if err != nil {
		return err
	}
	return c.appendLog(ctx, account.Snapshot())
}

// SaveAll 將所有帳戶寫入紀錄檔，回傳寫入筆數
func (c *CoreUseCase) SaveAll(ctx context.Context) (int, error) {
	snaps := c.List(ctx)
	if len(snaps) == 0 {
		return 0, nil
	}
	if err := c.appendLog(ctx, snaps...); err != nil {
		return 0, err
	}
	return len(snaps), nil
}

func (c *CoreUseCase) appendLog(ctx context.Context, snaps ...domain.Snapshot) error {
	if c.log == nil {
		return fmt.Errorf("%w: no account log configured", domain.ErrIO)
	}
	if err := c.log.Append(snaps...); err != nil {
		c.logger.ErrorContext(ctx, "append account log failed", slog.Any("error", err))
		return err
	}
	c.logger.DebugContext(ctx, "accounts saved", slog.Int("count", len(snaps)))
	return nil
}

// mutate 查帳戶 → 執行操作 → 記錄結果
// 操作失敗時帳戶狀態不變 (由 domain 保證)
func (c *CoreUseCase) mutate(ctx context.Context, op, id string, apply func(*domain.Account) error, attrs ...any) (decimal.Decimal, error) {
	account, err := c.directory.Lookup(id)
	if err != nil {
		return decimal.Zero, err
	}
	attrs = append(attrs, slog.String("op", op), slog.String("id", id))
	if err := apply(account); err != nil {
		c.logger.InfoContext(ctx, "operation rejected", append(attrs, slog.Any("error", err))...)
		return account.Balance(), err
	}
	c.logger.DebugContext(ctx, "operation applied", append(attrs, slog.String("balance", account.Balance().String()))...)
	return account.Balance(), nil
}
