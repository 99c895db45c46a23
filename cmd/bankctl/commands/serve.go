package commands

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_adapter "github.com/JoeShih716/go-account-desk/internal/app/core/adapter/in/grpc"
	"github.com/JoeShih716/go-account-desk/internal/app/core/usecase"
	grpcpkg "github.com/JoeShih716/go-account-desk/pkg/grpc"
)

func serveCmd() *cobra.Command {
	var addr string
	var buffer int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve AccountService over gRPC",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = appCtx.cfg.GRPC.Addr
			}
			lis, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, lis, buffer)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :50051)")
	cmd.Flags().IntVar(&buffer, "buffer", 1024, "dispatcher request buffer")
	return cmd
}

// serve 在 ctx 結束前持續提供服務，結束時 GracefulStop 並停止 Dispatcher
func serve(ctx context.Context, lis net.Listener, buffer int) error {
	logger := appCtx.logger

	coreCtx, cancelCore := context.WithCancel(context.Background())
	dispatcher := usecase.NewDispatcher(appCtx.core, buffer)
	dispatcher.Start(coreCtx)

	s := grpc.NewServer(grpc.UnaryInterceptor(grpcpkg.UnaryServerLogging(logger)))
	grpc_adapter.RegisterAccountServiceServer(s, grpc_adapter.NewGrpcServer(dispatcher))
	hs := health.NewServer()
	hs.SetServingStatus(grpc_adapter.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting grpc server", slog.String("addr", lis.Addr().String()))
		errCh <- s.Serve(lis)
	}()

	var err error
	select {
	case <-ctx.Done():
		logger.Info("shutting down grpc server")
		hs.Shutdown()
		s.GracefulStop()
		err = <-errCh
	case err = <-errCh:
	}

	cancelCore()
	<-dispatcher.Done()
	logger.Info("grpc server exited")

	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}
