package grpc

import (
	"fmt"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JoeShih716/go-account-desk/internal/app/core/domain"
	"github.com/JoeShih716/go-account-desk/internal/app/core/usecase"
)

// 欄位名稱，金額一律以字串傳遞避免浮點誤差
const (
	fieldID             = "id"
	fieldHolder         = "holder"
	fieldVariant        = "variant"
	fieldAmount         = "amount"
	fieldBalance        = "balance"
	fieldInitialBalance = "initial_balance"
	fieldInterestRate   = "interest_rate"
	fieldOverdraftLimit = "overdraft_limit"
	fieldInfo           = "info"
	fieldAccounts       = "accounts"
	fieldCount          = "count"
)

func stringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

// decimalText 取出金額欄位的字串，未設定或 null 視為空字串，其他型別 (例如 number) 一律拒絕
func decimalText(s *structpb.Struct, key string) (string, error) {
	switch v := s.GetFields()[key].GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return "", nil
	case *structpb.Value_StringValue:
		return v.StringValue, nil
	default:
		return "", fmt.Errorf("%s: %w: must be a string", key, domain.ErrInvalidNumber)
	}
}

func decimalField(s *structpb.Struct, key string) (decimal.Decimal, error) {
	text, err := decimalText(s, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := domain.ParseDecimal(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func optionalDecimalField(s *structpb.Struct, key string) (decimal.NullDecimal, error) {
	text, err := decimalText(s, key)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	d, err := domain.ParseOptionalDecimal(text)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func encodeCreateRequest(req usecase.CreateRequest) (*structpb.Struct, error) {
	fields := map[string]any{
		fieldVariant:        req.Variant.String(),
		fieldID:             req.ID,
		fieldHolder:         req.Holder,
		fieldInitialBalance: req.InitialBalance.String(),
	}
	if req.InterestRate.Valid {
		fields[fieldInterestRate] = req.InterestRate.Decimal.String()
	}
	if req.OverdraftLimit.Valid {
		fields[fieldOverdraftLimit] = req.OverdraftLimit.Decimal.String()
	}
	return structpb.NewStruct(fields)
}

func decodeCreateRequest(s *structpb.Struct) (usecase.CreateRequest, error) {
	variant, err := domain.ParseVariant(stringField(s, fieldVariant))
	if err != nil {
		return usecase.CreateRequest{}, err
	}
	req := usecase.CreateRequest{
		Variant: variant,
		ID:      stringField(s, fieldID),
		Holder:  stringField(s, fieldHolder),
	}
	initial, err := optionalDecimalField(s, fieldInitialBalance)
	if err != nil {
		return usecase.CreateRequest{}, err
	}
	req.InitialBalance = initial.Decimal
	if req.InterestRate, err = optionalDecimalField(s, fieldInterestRate); err != nil {
		return usecase.CreateRequest{}, err
	}
	if req.OverdraftLimit, err = optionalDecimalField(s, fieldOverdraftLimit); err != nil {
		return usecase.CreateRequest{}, err
	}
	return req, nil
}

func snapshotFields(snap domain.Snapshot) map[string]any {
	return map[string]any{
		fieldID:             snap.ID,
		fieldHolder:         snap.Holder,
		fieldVariant:        snap.Variant.String(),
		fieldBalance:        snap.Balance.String(),
		fieldInterestRate:   snap.InterestRate.String(),
		fieldOverdraftLimit: snap.OverdraftLimit.String(),
	}
}

func encodeSnapshot(snap domain.Snapshot) (*structpb.Struct, error) {
	return structpb.NewStruct(snapshotFields(snap))
}

func decodeSnapshot(s *structpb.Struct) (domain.Snapshot, error) {
	variant, err := domain.ParseVariant(stringField(s, fieldVariant))
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap := domain.Snapshot{
		ID:      stringField(s, fieldID),
		Holder:  stringField(s, fieldHolder),
		Variant: variant,
	}
	if snap.Balance, err = decimalField(s, fieldBalance); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.InterestRate, err = decimalField(s, fieldInterestRate); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.OverdraftLimit, err = decimalField(s, fieldOverdraftLimit); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

func encodeSnapshots(snaps []domain.Snapshot) (*structpb.Struct, error) {
	list := make([]any, 0, len(snaps))
	for _, snap := range snaps {
		list = append(list, snapshotFields(snap))
	}
	return structpb.NewStruct(map[string]any{fieldAccounts: list})
}

func decodeSnapshots(s *structpb.Struct) ([]domain.Snapshot, error) {
	values := s.GetFields()[fieldAccounts].GetListValue().GetValues()
	out := make([]domain.Snapshot, 0, len(values))
	for i, v := range values {
		snap, err := decodeSnapshot(v.GetStructValue())
		if err != nil {
			return nil, fmt.Errorf("accounts[%d]: %w", i, err)
		}
		out = append(out, snap)
	}
	return out, nil
}

func idRequest(id string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldID: structpb.NewStringValue(id),
	}}
}

func amountRequest(id string, amount decimal.Decimal) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldID:     structpb.NewStringValue(id),
		fieldAmount: structpb.NewStringValue(amount.String()),
	}}
}

func balanceResponse(id string, balance decimal.Decimal) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldID:      structpb.NewStringValue(id),
		fieldBalance: structpb.NewStringValue(balance.String()),
	}}
}
