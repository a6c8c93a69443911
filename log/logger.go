package log

import (
	"fmt"
	"os"
	"time"

	"github.com/go-stack/stack"
)

// 记录中固定字段的键名
const (
	timeKey  = "t"
	lvlKey   = "lvl"
	msgKey   = "msg"
	errorKey = "LOG15_ERROR"
)

// skipLevel 让 stack.Caller 跳过 write 和导出的日志方法，指向调用方。
const skipLevel = 2

// Lvl 是日志级别，数值越大越详细。
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

var lvlNames = [...]struct{ short, aligned string }{
	LvlCrit:  {"crit", "CRIT "},
	LvlError: {"eror", "ERROR"},
	LvlWarn:  {"warn", "WARN "},
	LvlInfo:  {"info", "INFO "},
	LvlDebug: {"dbug", "DEBUG"},
	LvlTrace: {"trce", "TRACE"},
}

func (l Lvl) names() (string, string) {
	if l < LvlCrit || l > LvlTrace {
		panic(fmt.Sprintf("log: bad level %d", int(l)))
	}
	return lvlNames[l].short, lvlNames[l].aligned
}

// String 返回四个字母的级别名，用于 logfmt 和 JSON 输出。
func (l Lvl) String() string {
	short, _ := l.names()
	return short
}

// AlignedString 返回五个字符宽的级别名，终端输出靠它对齐。
func (l Lvl) AlignedString() string {
	_, aligned := l.names()
	return aligned
}

// LvlFromString 解析命令行里的级别名，长短两种写法都接受。
func LvlFromString(name string) (Lvl, error) {
	for l, n := range lvlNames {
		if name == n.short || name == lvlLongNames[l] {
			return Lvl(l), nil
		}
	}
	return LvlDebug, fmt.Errorf("unknown level: %v", name)
}

var lvlLongNames = [...]string{"crit", "error", "warn", "info", "debug", "trace"}

// Record 是一条日志记录，由 Logger 交给 Handler。
type Record struct {
	Time time.Time
	Lvl  Lvl
	Msg  string
	Ctx  []interface{}
	Call stack.Call
}

// Logger 把带键值上下文的消息写给它的 Handler。
type Logger interface {
	// New 返回一个子记录器，它的上下文是当前上下文加上 ctx。
	New(ctx ...interface{}) Logger

	GetHandler() Handler
	SetHandler(h Handler)

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

type logger struct {
	ctx []interface{}
	h   *swapHandler
}

func (l *logger) write(msg string, lvl Lvl, ctx []interface{}, skip int) {
	l.h.Log(&Record{
		Time: time.Now(),
		Lvl:  lvl,
		Msg:  msg,
		Ctx:  newContext(l.ctx, ctx),
		Call: stack.Caller(skip),
	})
}

func (l *logger) New(ctx ...interface{}) Logger {
	child := &logger{ctx: newContext(l.ctx, ctx), h: new(swapHandler)}
	child.SetHandler(l.h)
	return child
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(msg, LvlTrace, ctx, skipLevel) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(msg, LvlDebug, ctx, skipLevel) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(msg, LvlInfo, ctx, skipLevel) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(msg, LvlWarn, ctx, skipLevel) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(msg, LvlError, ctx, skipLevel) }

func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.write(msg, LvlCrit, ctx, skipLevel)
	os.Exit(1)
}

func (l *logger) GetHandler() Handler  { return l.h.Get() }
func (l *logger) SetHandler(h Handler) { l.h.Swap(h) }

// newContext 拼接父子上下文，不与父记录器共享底层数组。
func newContext(prefix, suffix []interface{}) []interface{} {
	suffix = normalize(suffix)
	ctx := make([]interface{}, 0, len(prefix)+len(suffix))
	ctx = append(ctx, prefix...)
	return append(ctx, suffix...)
}

// normalize 展开单个 Ctx 参数，并把奇数长度的上下文补成键值对。
func normalize(ctx []interface{}) []interface{} {
	if len(ctx) == 1 {
		if m, ok := ctx[0].(Ctx); ok {
			ctx = m.toArray()
		}
	}
	if len(ctx)%2 != 0 {
		ctx = append(ctx, nil, errorKey, "Normalized odd number of arguments by adding nil")
	}
	return ctx
}

// Lazy 包装一个无参函数，只有记录真正被写出时才求值。
type Lazy struct {
	Fn interface{}
}

// Ctx 以 map 形式传入上下文。
type Ctx map[string]interface{}

func (c Ctx) toArray() []interface{} {
	arr := make([]interface{}, 0, len(c)*2)
	for k, v := range c {
		arr = append(arr, k, v)
	}
	return arr
}
