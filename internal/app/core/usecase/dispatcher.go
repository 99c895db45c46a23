package usecase

import (
	"context"
	"errors"
	"sync"
)

// ErrDispatcherStopped 核心迴圈已停止
var ErrDispatcherStopped = errors.New("dispatcher stopped")

// request 請求包裝，讓 Do 可以等待結果
type request struct {
	fn     func(*CoreUseCase) error
	result chan error // Do 等這個 channel
}

// Dispatcher 把多個來源 (例如 gRPC 連線) 的請求排進同一條輸送帶，
// 由單一 goroutine 依序執行，CoreUseCase 與 Directory 因此不需要任何鎖
//
// Do(等待) -> Channel -> Run Loop -> CoreUseCase -> Result Channel -> Do(收到結果)
type Dispatcher struct {
	core     *CoreUseCase
	requests chan *request
	done     chan struct{}
	// Pool 減少 GC 壓力
	pool sync.Pool
}

// NewDispatcher 建立 Dispatcher，需呼叫 Start 才會開始處理
//
// 參數:
//
//	core: 核心業務邏輯
//	buffer: 輸送帶容量
func NewDispatcher(core *CoreUseCase, buffer int) *Dispatcher {
	return &Dispatcher{
		core:     core,
		requests: make(chan *request, buffer),
		done:     make(chan struct{}),
		pool: sync.Pool{
			New: func() any {
				return &request{result: make(chan error, 1)}
			},
		},
	}
}

// Start 啟動核心迴圈 (非同步)，ctx 結束時處理完剩下的請求後停止
func (d *Dispatcher) Start(ctx context.Context) {
	go d.run(ctx)
}

// Done 回傳核心迴圈停止時關閉的 channel
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

// Do 送出請求並等待 fn 在核心迴圈中執行完畢
//
// 請求排入輸送帶後 ctx 才被取消時，fn 仍會被執行，但 Do 回傳 ctx.Err()。
// 呼叫端無法得知操作是否已生效，不可把這種錯誤當成未執行而重試。
//
// 參數:
//
//	ctx: 上下文，排隊或等待結果時被取消會直接回傳 ctx.Err()
//	fn: 在核心迴圈內執行的操作
//
// 回傳:
//
//	error: fn 的錯誤、ctx 錯誤或 ErrDispatcherStopped
func (d *Dispatcher) Do(ctx context.Context, fn func(*CoreUseCase) error) error {
	// 已停止時不送出，避免請求留在 buffer 裡沒人處理
	select {
	case <-d.done:
		return ErrDispatcherStopped
	default:
	}

	req := d.pool.Get().(*request)
	req.fn = fn

	select {
	case d.requests <- req:
	case <-d.done:
		d.pool.Put(req)
		return ErrDispatcherStopped
	case <-ctx.Done():
		d.pool.Put(req)
		return ctx.Err()
	}

	select {
	case err := <-req.result:
		req.fn = nil
		d.pool.Put(req)
		return err
	case <-d.done:
		// run 先寫結果再關閉 done，所以這裡有結果代表 fn 已執行
		select {
		case err := <-req.result:
			return err
		default:
			return ErrDispatcherStopped
		}
	case <-ctx.Done():
		// req 仍在輸送帶上，結果會寫進 buffer 後被丟棄，不能放回 pool
		return ctx.Err()
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)
	for {
		select {
		case <-ctx.Done():
			// 收到關閉信號，把剩下的請求處理完
			d.drain()
			return
		case req := <-d.requests:
			req.result <- req.fn(d.core)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case req := <-d.requests:
			req.result <- req.fn(d.core)
		default:
			return
		}
	}
}
