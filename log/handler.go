package log

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/go-stack/stack"
)

// Handler 决定记录写到哪里、以什么格式写。Handler 可以互相包装组合。
type Handler interface {
	Log(r *Record) error
}

// FuncHandler 把一个函数适配为 Handler。
func FuncHandler(fn func(r *Record) error) Handler {
	return funcHandler(fn)
}

type funcHandler func(r *Record) error

func (h funcHandler) Log(r *Record) error { return h(r) }

// StreamHandler 用 fmtr 格式化记录后写入 wr。写入互斥进行，
// Lazy 值在格式化之前求值。
func StreamHandler(wr io.Writer, fmtr Format) Handler {
	var mu sync.Mutex
	return LazyHandler(FuncHandler(func(r *Record) error {
		mu.Lock()
		defer mu.Unlock()
		_, err := wr.Write(fmtr.Format(r))
		return err
	}))
}

// FileHandler 以追加方式打开 path (不存在则以 0644 创建)，
// 返回的 Handler 同时实现 io.Closer。
func FileHandler(path string, fmtr Format) (Handler, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &fileHandler{Handler: StreamHandler(f, fmtr), f: f}, nil
}

type fileHandler struct {
	Handler
	f *os.File
}

func (h *fileHandler) Close() error { return h.f.Close() }

// LvlFilterHandler 只放行级别不高于 maxLvl 的记录。
func LvlFilterHandler(maxLvl Lvl, h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		if r.Lvl > maxLvl {
			return nil
		}
		return h.Log(r)
	})
}

// MultiHandler 把每条记录交给所有 hs，例如同时写终端和文件。
// 单个 Handler 的错误不会影响其他 Handler。
func MultiHandler(hs ...Handler) Handler {
	return FuncHandler(func(r *Record) error {
		for _, h := range hs {
			h.Log(r)
		}
		return nil
	})
}

// DiscardHandler 丢弃所有记录。
func DiscardHandler() Handler {
	return FuncHandler(func(*Record) error { return nil })
}

// LazyHandler 在交给 h 之前把上下文中的 Lazy 值替换为求值结果。
// 求值失败的值替换为错误，并在记录末尾附加 errorKey。
func LazyHandler(h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		bad := false
		for i := 1; i < len(r.Ctx); i += 2 {
			lz, ok := r.Ctx[i].(Lazy)
			if !ok {
				continue
			}
			v, err := evaluateLazy(lz)
			if err != nil {
				r.Ctx[i], bad = err, true
				continue
			}
			if cs, ok := v.(stack.CallStack); ok {
				v = cs.TrimBelow(r.Call).TrimRuntime()
			}
			r.Ctx[i] = v
		}
		if bad {
			r.Ctx = append(r.Ctx, errorKey, "bad lazy")
		}
		return h.Log(r)
	})
}

func evaluateLazy(lz Lazy) (interface{}, error) {
	fn := reflect.ValueOf(lz.Fn)
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("INVALID_LAZY, not func: %+v", lz.Fn)
	}
	if t := fn.Type(); t.NumIn() > 0 || t.NumOut() == 0 {
		return nil, fmt.Errorf("INVALID_LAZY, want func() with results: %+v", lz.Fn)
	}
	results := fn.Call(nil)
	if len(results) == 1 {
		return results[0].Interface(), nil
	}
	values := make([]interface{}, len(results))
	for i, v := range results {
		values[i] = v.Interface()
	}
	return values, nil
}

// swapHandler 允许在运行时并发安全地替换底层 Handler。
type swapHandler struct {
	handler atomic.Value // holds handlerBox
}

type handlerBox struct{ Handler }

func (h *swapHandler) Log(r *Record) error { return h.Get().Log(r) }
func (h *swapHandler) Swap(next Handler)   { h.handler.Store(handlerBox{next}) }
func (h *swapHandler) Get() Handler        { return h.handler.Load().(handlerBox).Handler }
