package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/JoeShih716/go-account-desk/internal/app/classroom"
	"github.com/JoeShih716/go-account-desk/internal/app/core/domain"
	"github.com/JoeShih716/go-account-desk/internal/app/core/usecase"
	"github.com/JoeShih716/go-account-desk/internal/app/library"
)

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the bundled example scenarios",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "accounts",
			Short: "Savings and checking scenario, saved to the account log",
			RunE: func(cmd *cobra.Command, args []string) error {
				return demoAccounts(cmd.Context(), appCtx.core, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "library",
			Short: "Book catalogue scenario",
			RunE: func(cmd *cobra.Command, args []string) error {
				demoLibrary(cmd.OutOrStdout())
				return nil
			},
		},
		&cobra.Command{
			Use:   "classroom",
			Short: "Student grades scenario",
			RunE: func(cmd *cobra.Command, args []string) error {
				demoClassroom(cmd.OutOrStdout())
				return nil
			},
		},
	)
	return cmd
}

// demoAccounts Alice 的儲蓄帳戶存款計息，Bob 的支票帳戶透支，兩者寫入紀錄檔後印出摘要
func demoAccounts(ctx context.Context, core *usecase.CoreUseCase, out io.Writer) error {
	savings, err := core.Create(ctx, usecase.CreateRequest{
		Variant:        domain.VariantSavings,
		ID:             "SA12345",
		Holder:         "Alice",
		InitialBalance: decimal.NewFromInt(1000),
		InterestRate:   decimal.NewNullDecimal(decimal.RequireFromString("0.03")),
	})
	if err != nil {
		return err
	}
	checking, err := core.Create(ctx, usecase.CreateRequest{
		Variant:        domain.VariantChecking,
		ID:             "CA54321",
		Holder:         "Bob",
		InitialBalance: decimal.NewFromInt(500),
		OverdraftLimit: decimal.NewNullDecimal(decimal.NewFromInt(300)),
	})
	if err != nil {
		return err
	}

	if _, err := core.Deposit(ctx, savings.ID, decimal.NewFromInt(200)); err != nil {
		return err
	}
	if _, err := core.ApplyInterest(ctx, savings.ID); err != nil {
		return err
	}
	if _, err := core.Withdraw(ctx, checking.ID, decimal.NewFromInt(600)); err != nil {
		return err
	}

	for _, id := range []string{savings.ID, checking.ID} {
		if err := core.Save(ctx, id); err != nil {
			return err
		}
	}
	for _, id := range []string{savings.ID, checking.ID} {
		info, err := core.InfoOf(ctx, id)
		if err != nil {
			return err
		}
		fprintln(out, info)
	}
	return nil
}

func demoLibrary(out io.Writer) {
	lib := library.New()
	lib.Add(library.NewBook("1984", "George Orwell", 1949))
	lib.Add(library.NewDigitalBook("Python Programming", "John Doe", 2020, decimal.RequireFromString("2.5")))

	info, err := lib.Find("1984")
	printFound(out, info, err)
	printList(out, lib.List())

	lib.Remove("1984")
	printList(out, lib.List())
}

func demoClassroom(out io.Writer) {
	students := []struct {
		name   string
		id     int
		grades []int64
	}{
		{"Alice", 101, []int64{85, 90}},
		{"Bob", 102, []int64{78, 82}},
		{"Charlie", 103, []int64{95, 88}},
	}
	room := classroom.New()
	for _, s := range students {
		student := classroom.NewStudent(s.name, s.id)
		for _, g := range s.grades {
			student.AddGrade(decimal.NewFromInt(g))
		}
		room.Add(student)
	}

	info, err := room.Find(101)
	printFound(out, info, err)
	printList(out, room.List())

	room.Remove(102)
	printList(out, room.List())
}

func printFound(out io.Writer, info string, err error) {
	if err != nil {
		fprintln(out, fmt.Sprintf("%s.", capitalize(err.Error())))
		return
	}
	fprintln(out, info)
}

func printList(out io.Writer, items []string) {
	for _, item := range items {
		fprintln(out, "  "+item)
	}
	if len(items) == 0 {
		fprintln(out, "  (empty)")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
