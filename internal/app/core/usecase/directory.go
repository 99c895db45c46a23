package usecase

import (
	"github.com/JoeShih716/go-account-desk/internal/app/core/domain"
)

// Directory 是帳戶索引表的介面 (帳號 → 帳戶)
// Directory 獨佔所有帳戶實例，外部只會拿到 Snapshot
type Directory interface {
	// Insert 新增帳戶，帳號重複時回傳 domain.ErrDuplicateID
	Insert(account *domain.Account) error
	// Lookup 依帳號取得帳戶，不存在時回傳 domain.ErrNotFound
	Lookup(id string) (*domain.Account, error)
	// List 依建立順序回傳所有帳戶
	List() []*domain.Account
}

// AccountLog 帳戶紀錄檔 (append-only)
type AccountLog interface {
	Append(snapshots ...domain.Snapshot) error
}
