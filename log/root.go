package log

import "os"

var root = &logger{h: new(swapHandler)}

func init() {
	root.SetHandler(DiscardHandler())
}

// Root 返回根记录器。程序启动时它丢弃一切，由 main 设置 Handler。
func Root() Logger { return root }

// New 是 Root().New 的简写。
func New(ctx ...interface{}) Logger { return root.New(ctx...) }

// 包级函数直接调用 root.write 而不经过 root.Info 等方法，
// 这样调用深度与方法调用相同，记录的调用位置仍是使用方代码。

func Trace(msg string, ctx ...interface{}) { root.write(msg, LvlTrace, ctx, skipLevel) }
func Debug(msg string, ctx ...interface{}) { root.write(msg, LvlDebug, ctx, skipLevel) }
func Info(msg string, ctx ...interface{})  { root.write(msg, LvlInfo, ctx, skipLevel) }
func Warn(msg string, ctx ...interface{})  { root.write(msg, LvlWarn, ctx, skipLevel) }
func Error(msg string, ctx ...interface{}) { root.write(msg, LvlError, ctx, skipLevel) }

// Crit 记录后以状态 1 退出进程。
func Crit(msg string, ctx ...interface{}) {
	root.write(msg, LvlCrit, ctx, skipLevel)
	os.Exit(1)
}
