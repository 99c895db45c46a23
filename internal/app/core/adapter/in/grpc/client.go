package grpc

import (
	"context"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JoeShih716/go-account-desk/internal/app/core/domain"
	"github.com/JoeShih716/go-account-desk/internal/app/core/usecase"
)

// Client AccountService 的強型別客戶端
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Create 建立帳戶
func (c *Client) Create(ctx context.Context, req usecase.CreateRequest, opts ...grpc.CallOption) (domain.Snapshot, error) {
	in, err := encodeCreateRequest(req)
	if err != nil {
		return domain.Snapshot{}, err
	}
	out, err := c.invoke(ctx, "Create", in, opts...)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return decodeSnapshot(out)
}

// Deposit 存款，回傳新餘額
func (c *Client) Deposit(ctx context.Context, id string, amount decimal.Decimal, opts ...grpc.CallOption) (decimal.Decimal, error) {
	return c.balanceCall(ctx, "Deposit", amountRequest(id, amount), opts...)
}

// Withdraw 提款，回傳新餘額
func (c *Client) Withdraw(ctx context.Context, id string, amount decimal.Decimal, opts ...grpc.CallOption) (decimal.Decimal, error) {
	return c.balanceCall(ctx, "Withdraw", amountRequest(id, amount), opts...)
}

// Balance 查詢餘額
func (c *Client) Balance(ctx context.Context, id string, opts ...grpc.CallOption) (decimal.Decimal, error) {
	return c.balanceCall(ctx, "Balance", idRequest(id), opts...)
}

// ApplyInterest 計息，回傳新餘額
func (c *Client) ApplyInterest(ctx context.Context, id string, opts ...grpc.CallOption) (decimal.Decimal, error) {
	return c.balanceCall(ctx, "ApplyInterest", idRequest(id), opts...)
}

// Info 帳戶摘要
func (c *Client) Info(ctx context.Context, id string, opts ...grpc.CallOption) (string, error) {
	out, err := c.invoke(ctx, "Info", idRequest(id), opts...)
	if err != nil {
		return "", err
	}
	return stringField(out, fieldInfo), nil
}

// List 所有帳戶
func (c *Client) List(ctx context.Context, opts ...grpc.CallOption) ([]domain.Snapshot, error) {
	out, err := c.invoke(ctx, "List", &structpb.Struct{}, opts...)
	if err != nil {
		return nil, err
	}
	return decodeSnapshots(out)
}

// Save 寫入紀錄檔，id 為空時寫入所有帳戶，回傳寫入筆數
func (c *Client) Save(ctx context.Context, id string, opts ...grpc.CallOption) (int, error) {
	out, err := c.invoke(ctx, "Save", idRequest(id), opts...)
	if err != nil {
		return 0, err
	}
	return int(out.GetFields()[fieldCount].GetNumberValue()), nil
}

func (c *Client) balanceCall(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (decimal.Decimal, error) {
	out, err := c.invoke(ctx, method, in, opts...)
	if err != nil {
		return decimal.Zero, err
	}
	return decimalField(out, fieldBalance)
}
