package memory

import (
	"github.com/JoeShih716/go-account-desk/internal/app/core/domain"
	"github.com/JoeShih716/go-account-desk/internal/app/core/usecase"
)

// Directory 是一個記憶體內的帳戶索引表
//
// 結構:
//
//	accounts: 帳號 → 帳戶
//	order: 建立順序，List 依此輸出
//
// 不加鎖：單執行緒使用，或由 usecase.Dispatcher 序列化
type Directory struct {
	accounts map[string]*domain.Account
	order    []string
}

// NewDirectory 建立一個空的 Directory
func NewDirectory() *Directory {
	return &Directory{
		accounts: make(map[string]*domain.Account),
	}
}

// Insert 新增帳戶
//
// 參數:
//
//	account: 帳戶實例，之後由 Directory 獨佔
//
// 回傳:
//
//	error: 帳號重複時回傳 domain.ErrDuplicateID
func (d *Directory) Insert(account *domain.Account) error {
	if _, ok := d.accounts[account.ID()]; ok {
		return domain.ErrDuplicateID
	}
	d.accounts[account.ID()] = account
	d.order = append(d.order, account.ID())
	return nil
}

// Lookup 依帳號取得帳戶
func (d *Directory) Lookup(id string) (*domain.Account, error) {
	account, ok := d.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return account, nil
}

// List 依建立順序回傳所有帳戶
func (d *Directory) List() []*domain.Account {
	out := make([]*domain.Account, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.accounts[id])
	}
	return out
}

// Len 帳戶數量
func (d *Directory) Len() int {
	return len(d.accounts)
}

var _ usecase.Directory = (*Directory)(nil)
