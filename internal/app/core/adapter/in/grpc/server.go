package grpc

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JoeShih716/go-account-desk/internal/app/core/domain"
	"github.com/JoeShih716/go-account-desk/internal/app/core/usecase"
)

// GrpcServer 把 RPC 請求交給 Dispatcher，在單一核心迴圈內執行
type GrpcServer struct {
	dispatcher *usecase.Dispatcher
}

func NewGrpcServer(dispatcher *usecase.Dispatcher) *GrpcServer {
	return &GrpcServer{
		dispatcher: dispatcher,
	}
}

func (s *GrpcServer) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	create, err := decodeCreateRequest(req)
	if err != nil {
		return nil, toStatus(err)
	}
	var snap domain.Snapshot
	err = s.dispatcher.Do(ctx, func(core *usecase.CoreUseCase) error {
		var err error
		snap, err = core.Create(ctx, create)
		return err
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeSnapshot(snap)
}

func (s *GrpcServer) Deposit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.move(ctx, req, (*usecase.CoreUseCase).Deposit)
}

func (s *GrpcServer) Withdraw(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.move(ctx, req, (*usecase.CoreUseCase).Withdraw)
}

func (s *GrpcServer) Balance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, fieldID)
	var resp *structpb.Struct
	err := s.dispatcher.Do(ctx, func(core *usecase.CoreUseCase) error {
		balance, err := core.BalanceOf(ctx, id)
		if err != nil {
			return err
		}
		resp = balanceResponse(id, balance)
		return nil
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

func (s *GrpcServer) Info(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, fieldID)
	var info string
	err := s.dispatcher.Do(ctx, func(core *usecase.CoreUseCase) error {
		var err error
		info, err = core.InfoOf(ctx, id)
		return err
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldID:   structpb.NewStringValue(id),
		fieldInfo: structpb.NewStringValue(info),
	}}, nil
}

func (s *GrpcServer) ApplyInterest(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, fieldID)
	var resp *structpb.Struct
	err := s.dispatcher.Do(ctx, func(core *usecase.CoreUseCase) error {
		balance, err := core.ApplyInterest(ctx, id)
		if err != nil {
			return err
		}
		resp = balanceResponse(id, balance)
		return nil
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

func (s *GrpcServer) List(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	var snaps []domain.Snapshot
	err := s.dispatcher.Do(ctx, func(core *usecase.CoreUseCase) error {
		snaps = core.List(ctx)
		return nil
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeSnapshots(snaps)
}

// Save id 為空時寫入所有帳戶
func (s *GrpcServer) Save(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, fieldID)
	count := 0
	err := s.dispatcher.Do(ctx, func(core *usecase.CoreUseCase) error {
		if id == "" {
			var err error
			count, err = core.SaveAll(ctx)
			return err
		}
		count = 1
		return core.Save(ctx, id)
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldCount: structpb.NewNumberValue(float64(count)),
	}}, nil
}

type moveFunc func(*usecase.CoreUseCase, context.Context, string, decimal.Decimal) (decimal.Decimal, error)

// move 存款與提款共用流程
func (s *GrpcServer) move(ctx context.Context, req *structpb.Struct, op moveFunc) (*structpb.Struct, error) {
	id := stringField(req, fieldID)
	amount, err := decimalField(req, fieldAmount)
	if err != nil {
		return nil, toStatus(err)
	}
	var resp *structpb.Struct
	err = s.dispatcher.Do(ctx, func(core *usecase.CoreUseCase) error {
		balance, err := op(core, ctx, id, amount)
		if err != nil {
			return err
		}
		resp = balanceResponse(id, balance)
		return nil
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

// toStatus 將 domain 錯誤轉成 gRPC status
func toStatus(err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, domain.ErrDuplicateID):
		code = codes.AlreadyExists
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidRate),
		errors.Is(err, domain.ErrInvalidOverdraftLimit),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrUnknownVariant),
		errors.Is(err, domain.ErrInvalidNumber):
		code = codes.InvalidArgument
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrOverdraftExceeded),
		errors.Is(err, domain.ErrInterestNotSupported):
		code = codes.FailedPrecondition
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.Is(err, usecase.ErrDispatcherStopped):
		code = codes.Unavailable
	}
	return status.Error(code, err.Error())
}

var _ AccountServiceServer = (*GrpcServer)(nil)
