package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-account-desk/internal/app/core/domain"
	"github.com/JoeShih716/go-account-desk/internal/app/core/usecase"
)

const menuText = `
===== Bank Account Management System =====
1. Create Account
2. Deposit Money
3. Withdraw Money
4. Check Balance
5. View Account Details
6. Exit
7. Apply Interest
8. Save Account to Log
==========================================
`

// Menu 以數字選單驅動 CoreUseCase 的 console 介面
type Menu struct {
	core *usecase.CoreUseCase
	in   *bufio.Scanner
	out  io.Writer
}

// NewMenu 建立選單，in/out 通常是 os.Stdin / os.Stdout
func NewMenu(core *usecase.CoreUseCase, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		core: core,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run 執行選單迴圈，選擇 Exit 或輸入結束 (EOF) 時回傳 nil
// 指令失敗只顯示訊息，不會中斷迴圈
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(m.out, menuText)
		choice, ok := m.prompt("Enter your choice (1-8): ")
		if !ok {
			return m.in.Err()
		}

		var err error
		switch choice {
		case "1":
			err = m.createAccount(ctx)
		case "2":
			err = m.depositMoney(ctx)
		case "3":
			err = m.withdrawMoney(ctx)
		case "4":
			err = m.checkBalance(ctx)
		case "5":
			err = m.viewAccountDetails(ctx)
		case "6":
			m.println("Exiting the program. Goodbye!")
			return nil
		case "7":
			err = m.applyInterest(ctx)
		case "8":
			err = m.saveAccount(ctx)
		default:
			m.println("Invalid choice. Please select a valid option.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return m.in.Err()
		}
		if err != nil {
			m.printError(err)
		}
	}
}

func (m *Menu) createAccount(ctx context.Context) error {
	kind, ok := m.prompt("Enter account type (Savings/Checking/Plain): ")
	if !ok {
		return io.EOF
	}
	variant, err := domain.ParseVariant(kind)
	if err != nil {
		m.println("Invalid account type. Please choose either 'Savings', 'Checking' or 'Plain'.")
		return nil
	}
	id, ok := m.prompt("Enter account number (blank to generate): ")
	if !ok {
		return io.EOF
	}
	holder, ok := m.prompt("Enter account holder name: ")
	if !ok {
		return io.EOF
	}
	req := usecase.CreateRequest{Variant: variant, ID: id, Holder: holder}

	switch variant {
	case domain.VariantSavings:
		req.InterestRate, err = m.promptOptionalDecimal("Enter interest rate (e.g., 0.03 for 3%, blank for default): ")
	case domain.VariantChecking:
		req.OverdraftLimit, err = m.promptOptionalDecimal("Enter overdraft limit (blank for default): ")
	}
	if err != nil {
		return err
	}
	initial, err := m.promptOptionalDecimal("Enter initial balance (blank for 0): ")
	if err != nil {
		return err
	}
	if initial.Valid {
		req.InitialBalance = initial.Decimal
	}

	snap, err := m.core.Create(ctx, req)
	if err != nil {
		return err
	}
	m.printf("Account created successfully for %s!\n", snap.Holder)
	m.printf("Account number: %s\n", snap.ID)
	return nil
}

func (m *Menu) depositMoney(ctx context.Context) error {
	id, amount, ok, err := m.promptAccountAmount(ctx, "Enter amount to deposit: ")
	if !ok || err != nil {
		return err
	}
	if _, err := m.core.Deposit(ctx, id, amount); err != nil {
		return err
	}
	m.printf("Deposited %s to account %s\n", amount.StringFixed(2), id)
	return nil
}

func (m *Menu) withdrawMoney(ctx context.Context) error {
	id, amount, ok, err := m.promptAccountAmount(ctx, "Enter amount to withdraw: ")
	if !ok || err != nil {
		return err
	}
	if _, err := m.core.Withdraw(ctx, id, amount); err != nil {
		return err
	}
	m.printf("Withdrew %s from account %s\n", amount.StringFixed(2), id)
	return nil
}

func (m *Menu) checkBalance(ctx context.Context) error {
	id, ok := m.prompt("Enter account number: ")
	if !ok {
		return io.EOF
	}
	balance, err := m.core.BalanceOf(ctx, id)
	if err != nil {
		return err
	}
	m.printf("Balance for account %s is %s\n", id, balance.StringFixed(2))
	return nil
}

func (m *Menu) viewAccountDetails(ctx context.Context) error {
	id, ok := m.prompt("Enter account number: ")
	if !ok {
		return io.EOF
	}
	info, err := m.core.InfoOf(ctx, id)
	if err != nil {
		return err
	}
	m.println(info)
	return nil
}

func (m *Menu) applyInterest(ctx context.Context) error {
	id, ok := m.prompt("Enter account number: ")
	if !ok {
		return io.EOF
	}
	balance, err := m.core.ApplyInterest(ctx, id)
	if err != nil {
		return err
	}
	m.printf("Interest applied to account %s, new balance %s\n", id, balance.StringFixed(2))
	return nil
}

func (m *Menu) saveAccount(ctx context.Context) error {
	id, ok := m.prompt("Enter account number: ")
	if !ok {
		return io.EOF
	}
	if err := m.core.Save(ctx, id); err != nil {
		return err
	}
	m.printf("Account %s saved to log\n", id)
	return nil
}

// promptAccountAmount 先確認帳戶存在才詢問金額
// ok 為 false 代表已顯示訊息，不需要再處理
func (m *Menu) promptAccountAmount(ctx context.Context, label string) (string, decimal.Decimal, bool, error) {
	id, ok := m.prompt("Enter account number: ")
	if !ok {
		return "", decimal.Zero, false, io.EOF
	}
	if _, err := m.core.Lookup(ctx, id); err != nil {
		return "", decimal.Zero, false, err
	}
	raw, ok := m.prompt(label)
	if !ok {
		return "", decimal.Zero, false, io.EOF
	}
	amount, err := domain.ParseDecimal(raw)
	if err != nil {
		return "", decimal.Zero, false, err
	}
	return id, amount, true, nil
}

func (m *Menu) promptOptionalDecimal(label string) (decimal.NullDecimal, error) {
	raw, ok := m.prompt(label)
	if !ok {
		return decimal.NullDecimal{}, io.EOF
	}
	return domain.ParseOptionalDecimal(raw)
}

// prompt 顯示提示並讀一行，EOF 時 ok 為 false
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		fmt.Fprintln(m.out)
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) printError(err error) {
	if errors.Is(err, domain.ErrNotFound) {
		m.println("Account not found!")
		return
	}
	m.printf("Error: %v\n", err)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
