package console

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-account-desk/internal/app/core/adapter/out/file"
	"github.com/JoeShih716/go-account-desk/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-account-desk/internal/app/core/usecase"
)

// runScript 把每個元素當成一行輸入執行選單，回傳所有輸出
func runScript(t *testing.T, core *usecase.CoreUseCase, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, NewMenu(core, in, &out).Run(context.Background()))
	return out.String()
}

func newCore(t *testing.T) (*usecase.CoreUseCase, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.txt")
	return usecase.NewCoreUseCase(memory.NewDirectory(), file.NewAccountLog(path)), path
}

func TestMenu_SavingsSession(t *testing.T) {
	core, path := newCore(t)

	out := runScript(t, core,
		"1", "savings", "SA12345", "Alice", "0.03", "1000",
		"2", "SA12345", "200",
		"7", "SA12345",
		"4", "SA12345",
		"5", "SA12345",
		"8", "SA12345",
		"6",
	)

	assert.Contains(t, out, "Account created successfully for Alice!")
	assert.Contains(t, out, "Deposited 200.00 to account SA12345")
	assert.Contains(t, out, "Interest applied to account SA12345, new balance 1236.00")
	assert.Contains(t, out, "Balance for account SA12345 is 1236.00")
	assert.Contains(t, out, "Account Number: SA12345, Holder: Alice, Balance: 1236.00, Interest Rate: 3.00%")
	assert.Contains(t, out, "Account SA12345 saved to log")
	assert.True(t, strings.HasSuffix(out, "Exiting the program. Goodbye!\n"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SA12345,Alice,1236\n", string(raw))
}

func TestMenu_CheckingOverdraft(t *testing.T) {
	core, _ := newCore(t)

	out := runScript(t, core,
		"1", "Checking", "CA54321", "Bob", "300", "500",
		"3", "CA54321", "600",
		"3", "CA54321", "250",
		"5", "CA54321",
		"6",
	)

	assert.Contains(t, out, "Withdrew 600.00 from account CA54321")
	assert.Contains(t, out, "Error: overdraft limit exceeded")
	assert.Contains(t, out, "Account Number: CA54321, Holder: Bob, Balance: -100.00, Overdraft Limit: 300.00")
}

func TestMenu_ErrorsDoNotStopLoop(t *testing.T) {
	core, _ := newCore(t)

	out := runScript(t, core,
		"9",
		"1", "gold",
		"1", "plain", "P1", "Carol", "",
		"1", "plain", "P1", "Mallory", "",
		"2", "missing",
		"2", "P1", "abc",
		"2", "P1", "-5",
		"3", "P1", "1",
		"7", "P1",
		"4", "P1",
		"6",
	)

	assert.Contains(t, out, "Invalid choice. Please select a valid option.")
	assert.Contains(t, out, "Invalid account type.")
	assert.Contains(t, out, "Error: account already exists")
	assert.Contains(t, out, "Account not found!")
	assert.Contains(t, out, `Error: invalid number "abc"`)
	assert.Contains(t, out, "Error: amount must be positive")
	assert.Contains(t, out, "Error: insufficient funds")
	assert.Contains(t, out, "Error: interest only applies to savings accounts")
	assert.Contains(t, out, "Balance for account P1 is 0.00")
}

func TestMenu_DefaultsAndGeneratedID(t *testing.T) {
	core, _ := newCore(t)

	out := runScript(t, core,
		"1", "savings", "", "Dana", "", "",
		"6",
	)

	assert.Contains(t, out, "Account created successfully for Dana!")
	list := core.List(context.Background())
	require.Len(t, list, 1)
	assert.Contains(t, out, "Account number: "+list[0].ID)
	assert.Equal(t, "0.02", list[0].InterestRate.String())
}

func TestMenu_EOFEndsLoop(t *testing.T) {
	core, _ := newCore(t)

	var out bytes.Buffer
	err := NewMenu(core, strings.NewReader("1\nsavings\n"), &out).Run(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, core.List(context.Background()))
}

func TestMenu_SaveFailureReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "accounts.txt")
	core := usecase.NewCoreUseCase(memory.NewDirectory(), file.NewAccountLog(path))

	out := runScript(t, core,
		"1", "plain", "P1", "Carol", "",
		"8", "P1",
		"6",
	)

	assert.Contains(t, out, "Error: account log i/o failed")
}
