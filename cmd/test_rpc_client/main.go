package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	grpc_adapter "github.com/JoeShih716/go-account-desk/internal/app/core/adapter/in/grpc"
	"github.com/JoeShih716/go-account-desk/internal/app/core/domain"
	"github.com/JoeShih716/go-account-desk/internal/app/core/usecase"
	"github.com/JoeShih716/go-account-desk/pkg/config"
	grpcpkg "github.com/JoeShih716/go-account-desk/pkg/grpc"
)

const (
	TotalCount  = 10000
	Concurrency = 100
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file (optional)")
	addr := flag.String("addr", "", "bankctl serve address (default from config)")
	total := flag.Int("n", TotalCount, "number of concurrent deposits")
	concurrency := flag.Int("c", Concurrency, "max in-flight requests")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr == "" {
		*addr = cfg.GRPC.Addr
		if strings.HasPrefix(*addr, ":") {
			*addr = "localhost" + *addr
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pool := grpcpkg.NewPool(
		grpcpkg.WithLogger(logger),
		grpcpkg.WithInterceptor(grpcpkg.UnaryClientLogging(logger)),
		grpcpkg.WithKeepalive(keepalive.ClientParameters{
			Time:                cfg.GRPC.KeepaliveTime,
			Timeout:             grpcpkg.DefaultKeepalive.Timeout,
			PermitWithoutStream: true,
		}),
	)
	defer pool.Close()

	conn, err := pool.GetConnection(*addr)
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	c := grpc_adapter.NewClient(conn)

	// 0. 等待服務就緒
	readyCtx, readyCancel := context.WithTimeout(context.Background(), cfg.GRPC.DialTimeout)
	_, err = healthpb.NewHealthClient(conn).Check(readyCtx,
		&healthpb.HealthCheckRequest{Service: grpc_adapter.ServiceName}, grpc.WaitForReady(true))
	readyCancel()
	if err != nil {
		log.Fatalf("server not ready at %s: %v", *addr, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	// 1. 儲蓄與支票帳戶的範例流程，帳號加上 uuid 避免與既有帳戶衝突
	suffix := uuid.New().String()[:8]
	savings, err := c.Create(ctx, usecase.CreateRequest{
		Variant:        domain.VariantSavings,
		ID:             "SA-" + suffix,
		Holder:         "Alice",
		InitialBalance: decimal.NewFromInt(1000),
		InterestRate:   decimal.NewNullDecimal(decimal.RequireFromString("0.03")),
	})
	if err != nil {
		log.Fatalf("create savings: %v", err)
	}
	checking, err := c.Create(ctx, usecase.CreateRequest{
		Variant:        domain.VariantChecking,
		ID:             "CA-" + suffix,
		Holder:         "Bob",
		InitialBalance: decimal.NewFromInt(500),
		OverdraftLimit: decimal.NewNullDecimal(decimal.NewFromInt(300)),
	})
	if err != nil {
		log.Fatalf("create checking: %v", err)
	}

	must(c.Deposit(ctx, savings.ID, decimal.NewFromInt(200)))
	must(c.ApplyInterest(ctx, savings.ID))
	must(c.Withdraw(ctx, checking.ID, decimal.NewFromInt(600)))
	if _, err := c.Withdraw(ctx, checking.ID, decimal.NewFromInt(250)); err == nil {
		log.Fatalf("withdraw past overdraft limit should fail")
	}
	for _, id := range []string{savings.ID, checking.ID} {
		info, err := c.Info(ctx, id)
		if err != nil {
			log.Fatalf("info %s: %v", id, err)
		}
		fmt.Println(info)
	}

	// 2. 併發存款後驗證餘額
	target, err := c.Create(ctx, usecase.CreateRequest{Variant: domain.VariantPlain, Holder: "Load"})
	if err != nil {
		log.Fatalf("create plain: %v", err)
	}

	var wg sync.WaitGroup
	var failed atomic.Int64
	sem := make(chan struct{}, *concurrency)
	amount := decimal.RequireFromString("0.01")
	startTime := time.Now()

	wg.Add(*total)
	for i := 0; i < *total; i++ {
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			if _, err := c.Deposit(ctx, target.ID, amount); err != nil {
				failed.Add(1)
				if idx%1000 == 0 {
					log.Printf("deposit %d failed: %v", idx, err)
				}
			}
		}(i)
	}
	wg.Wait()

	elapsed := time.Since(startTime)
	fmt.Printf("Completed %d deposits in %v (%d failed)\n", *total, elapsed, failed.Load())
	fmt.Printf("TPS: %.2f\n", float64(*total)/elapsed.Seconds())

	balance, err := c.Balance(ctx, target.ID)
	if err != nil {
		log.Fatalf("balance: %v", err)
	}
	want := amount.Mul(decimal.NewFromInt(int64(*total) - failed.Load()))
	if !balance.Equal(want) {
		log.Fatalf("balance mismatch: got %s want %s", balance, want)
	}
	fmt.Printf("Balance for account %s is %s\n", target.ID, balance.StringFixed(2))
}

func must(_ decimal.Decimal, err error) {
	if err != nil {
		log.Fatalf("rpc failed: %v", err)
	}
}
