package grpc_test

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	grpcpkg "github.com/JoeShih716/go-account-desk/pkg/grpc"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func startHealthServer(t *testing.T, logger *slog.Logger) *bufconn.Listener {
	t.Helper()
	lis := bufconn.Listen(1 << 16)
	s := grpc.NewServer(grpc.UnaryInterceptor(grpcpkg.UnaryServerLogging(logger)))
	hs := health.NewServer()
	hs.SetServingStatus("ok", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	go func() {
		_ = s.Serve(lis)
	}()
	t.Cleanup(s.Stop)
	return lis
}

func dialer(lis *bufconn.Listener) grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
}

func TestPool_ReusesConnectionPerTarget(t *testing.T) {
	pool := grpcpkg.NewPool()
	t.Cleanup(func() { _ = pool.Close() })

	a, err := pool.GetConnection("passthrough:///a")
	require.NoError(t, err)
	b, err := pool.GetConnection("passthrough:///a")
	require.NoError(t, err)
	c, err := pool.GetConnection("passthrough:///c")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestPool_ReplacesClosedConnection(t *testing.T) {
	pool := grpcpkg.NewPool()
	t.Cleanup(func() { _ = pool.Close() })

	first, err := pool.GetConnection("passthrough:///a")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := pool.GetConnection("passthrough:///a")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestLogging_ClientAndServerInterceptors(t *testing.T) {
	var serverLog, clientLog bytes.Buffer
	lis := startHealthServer(t, newLogger(&serverLog))

	pool := grpcpkg.NewPool(
		grpcpkg.WithInterceptor(grpcpkg.UnaryClientLogging(newLogger(&clientLog))),
		grpcpkg.WithLogger(newLogger(&clientLog)),
	)
	t.Cleanup(func() { _ = pool.Close() })

	conn, err := pool.GetConnection("passthrough:///bufnet", dialer(lis))
	require.NoError(t, err)
	client := healthpb.NewHealthClient(conn)

	_, err = client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "ok"})
	require.NoError(t, err)

	_, err = client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	assert.Contains(t, serverLog.String(), "method=/grpc.health.v1.Health/Check")
	assert.Contains(t, serverLog.String(), "code=NotFound")
	assert.Equal(t, 2, strings.Count(clientLog.String(), "grpc client call"))
	assert.Contains(t, clientLog.String(), "level=WARN")
}

func TestPool_WithKeepaliveDialsAndServes(t *testing.T) {
	var serverLog bytes.Buffer
	lis := startHealthServer(t, newLogger(&serverLog))

	pool := grpcpkg.NewPool(grpcpkg.WithKeepalive(keepalive.ClientParameters{
		Time:                30 * time.Second,
		Timeout:             2 * time.Second,
		PermitWithoutStream: false,
	}))
	t.Cleanup(func() { _ = pool.Close() })

	conn, err := pool.GetConnection("passthrough:///bufnet", dialer(lis))
	require.NoError(t, err)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: "ok"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
