package grpc

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JoeShih716/go-account-desk/internal/app/core/adapter/out/file"
	"github.com/JoeShih716/go-account-desk/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-account-desk/internal/app/core/domain"
	"github.com/JoeShih716/go-account-desk/internal/app/core/usecase"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// startServer 啟動 in-process gRPC server，回傳客戶端與紀錄檔路徑
func startServer(t *testing.T) (*Client, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	logPath := filepath.Join(t.TempDir(), "accounts.txt")
	core := usecase.NewCoreUseCase(memory.NewDirectory(), file.NewAccountLog(logPath))
	dispatcher := usecase.NewDispatcher(core, 64)
	dispatcher.Start(ctx)

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	RegisterAccountServiceServer(s, NewGrpcServer(dispatcher))
	go func() {
		_ = s.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		s.Stop()
		cancel()
	})
	return NewClient(conn), logPath
}

func requireCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, status.Code(err), err.Error())
}

func TestGrpc_SavingsAndCheckingScenario(t *testing.T) {
	client, logPath := startServer(t)
	ctx := context.Background()

	savings, err := client.Create(ctx, usecase.CreateRequest{
		Variant:        domain.VariantSavings,
		ID:             "SA12345",
		Holder:         "Alice",
		InitialBalance: d("1000"),
		InterestRate:   decimal.NewNullDecimal(d("0.03")),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VariantSavings, savings.Variant)
	assert.True(t, savings.InterestRate.Equal(d("0.03")))

	_, err = client.Create(ctx, usecase.CreateRequest{
		Variant:        domain.VariantChecking,
		ID:             "CA54321",
		Holder:         "Bob, Jr",
		InitialBalance: d("500"),
		OverdraftLimit: decimal.NewNullDecimal(d("300")),
	})
	require.NoError(t, err)

	bal, err := client.Deposit(ctx, "SA12345", d("200"))
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("1200")))

	bal, err = client.ApplyInterest(ctx, "SA12345")
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("1236")))

	bal, err = client.Withdraw(ctx, "CA54321", d("600"))
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("-100")))

	_, err = client.Withdraw(ctx, "CA54321", d("250"))
	requireCode(t, err, codes.FailedPrecondition)

	bal, err = client.Balance(ctx, "CA54321")
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("-100")))

	info, err := client.Info(ctx, "SA12345")
	require.NoError(t, err)
	assert.Equal(t, "Account Number: SA12345, Holder: Alice, Balance: 1236.00, Interest Rate: 3.00%", info)

	list, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "CA54321", list[1].ID)
	assert.True(t, list[1].OverdraftLimit.Equal(d("300")))

	n, err := client.Save(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	raw, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, "SA12345,Alice,1236\nCA54321,\"Bob, Jr\",-100\n", string(raw))
}

func TestGrpc_ErrorCodes(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	_, err := client.Create(ctx, usecase.CreateRequest{Variant: domain.VariantPlain, ID: "P1", Holder: "Carol"})
	require.NoError(t, err)

	_, err = client.Create(ctx, usecase.CreateRequest{Variant: domain.VariantPlain, ID: "P1", Holder: "Carol"})
	requireCode(t, err, codes.AlreadyExists)

	_, err = client.Deposit(ctx, "missing", d("1"))
	requireCode(t, err, codes.NotFound)

	_, err = client.Info(ctx, "missing")
	requireCode(t, err, codes.NotFound)

	_, err = client.Deposit(ctx, "P1", d("0"))
	requireCode(t, err, codes.InvalidArgument)

	_, err = client.Withdraw(ctx, "P1", d("1"))
	requireCode(t, err, codes.FailedPrecondition)

	_, err = client.ApplyInterest(ctx, "P1")
	requireCode(t, err, codes.FailedPrecondition)

	_, err = client.Create(ctx, usecase.CreateRequest{
		Variant:      domain.VariantSavings,
		ID:           "S1",
		InterestRate: decimal.NewNullDecimal(d("1.5")),
	})
	requireCode(t, err, codes.InvalidArgument)
}

func TestGrpc_MalformedRequest(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	_, err := client.Create(ctx, usecase.CreateRequest{Variant: domain.VariantPlain, ID: "P1", Holder: "Carol"})
	require.NoError(t, err)

	in := amountRequest("P1", d("1"))
	in.Fields[fieldAmount] = structpb.NewStringValue("ten")
	_, err = client.invoke(ctx, "Deposit", in)
	requireCode(t, err, codes.InvalidArgument)

	_, err = client.invoke(ctx, "Create", &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldVariant: structpb.NewStringValue("gold"),
		fieldID:      structpb.NewStringValue("G1"),
	}})
	requireCode(t, err, codes.InvalidArgument)

	// 金額以 number 傳送不可被當成未指定
	_, err = client.invoke(ctx, "Create", &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldVariant:        structpb.NewStringValue("Plain"),
		fieldID:             structpb.NewStringValue("P2"),
		fieldInitialBalance: structpb.NewNumberValue(100),
	}})
	requireCode(t, err, codes.InvalidArgument)
	_, err = client.Balance(ctx, "P2")
	requireCode(t, err, codes.NotFound)

	bal, err := client.Balance(ctx, "P1")
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestGrpc_ConcurrentDeposits(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	_, err := client.Create(ctx, usecase.CreateRequest{Variant: domain.VariantPlain, ID: "P1", Holder: "Carol"})
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := client.Deposit(ctx, "P1", d("2"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	bal, err := client.Balance(ctx, "P1")
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("100")))
}
