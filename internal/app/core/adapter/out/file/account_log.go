package file

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-account-desk/internal/app/core/domain"
	"github.com/JoeShih716/go-account-desk/internal/app/core/usecase"
	"github.com/JoeShih716/go-account-desk/pkg/csvlog"
)

// Entry 紀錄檔中的一行：id,holder,balance
type Entry struct {
	ID      string
	Holder  string
	Balance decimal.Decimal
}

// AccountLog 以 CSV 檔案實作 usecase.AccountLog
type AccountLog struct {
	path string
}

func NewAccountLog(path string) *AccountLog {
	return &AccountLog{path: path}
}

// Path 紀錄檔路徑
func (l *AccountLog) Path() string {
	return l.path
}

// Append 將帳戶快照寫入紀錄檔，失敗時包裝成 domain.ErrIO
func (l *AccountLog) Append(snapshots ...domain.Snapshot) error {
	records := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		records = append(records, []string{s.ID, s.Holder, s.Balance.String()})
	}
	if err := csvlog.Append(l.path, records...); err != nil {
		return fmt.Errorf("%w: append %s: %w", domain.ErrIO, l.path, err)
	}
	return nil
}

// Entries 讀回紀錄檔的所有資料
func (l *AccountLog) Entries() ([]Entry, error) {
	var entries []Entry
	line := 0
	err := csvlog.ReadAll(l.path, func(record []string) error {
		line++
		if len(record) != 3 {
			return fmt.Errorf("line %d: want 3 fields, got %d", line, len(record))
		}
		balance, err := decimal.NewFromString(record[2])
		if err != nil {
			return fmt.Errorf("line %d: balance: %w", line, err)
		}
		entries = append(entries, Entry{ID: record[0], Holder: record[1], Balance: balance})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrIO, l.path, err)
	}
	return entries, nil
}

var _ usecase.AccountLog = (*AccountLog)(nil)
