package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"
)

const (
	timeFormat     = "2006-01-02T15:04:05-0700"
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40 // 终端输出中消息列的最小宽度
)

// locationTrims 是打印调用位置时去掉的模块前缀。
var locationTrims = []string{
	"sha3sponge/",
}

// locationEnabled 非零时终端格式在级别和时间之后打印 file:line。
var locationEnabled uint32

// PrintOrigins 打开或关闭终端格式中的调用位置。
func PrintOrigins(print bool) {
	var v uint32
	if print {
		v = 1
	}
	atomic.StoreUint32(&locationEnabled, v)
}

// Format 把一条记录序列化为字节。
type Format interface {
	Format(r *Record) []byte
}

// FormatFunc 把函数适配为 Format。
func FormatFunc(f func(*Record) []byte) Format {
	return formatFunc(f)
}

type formatFunc func(*Record) []byte

func (f formatFunc) Format(r *Record) []byte { return f(r) }

// TerminalStringer 由需要在终端上使用简短表示的类型实现，
// 例如摘要只打印首尾几个字节。
type TerminalStringer interface {
	TerminalString() string
}

var lvlColors = [...]int{
	LvlCrit:  35,
	LvlError: 31,
	LvlWarn:  33,
	LvlInfo:  32,
	LvlDebug: 36,
	LvlTrace: 34,
}

// TerminalFormat 输出便于人阅读的单行记录：
//
//	INFO [10-16|12:00:00.000] Hashed file                  file=a.txt bytes=3
//
// usecolor 为 true 时级别和键名带 ANSI 颜色。
func TerminalFormat(usecolor bool) Format {
	return FormatFunc(func(r *Record) []byte {
		color := 0
		if usecolor {
			color = lvlColors[r.Lvl]
		}
		b := new(bytes.Buffer)
		if color > 0 {
			fmt.Fprintf(b, "\x1b[%dm%s\x1b[0m", color, r.Lvl.AlignedString())
		} else {
			b.WriteString(r.Lvl.AlignedString())
		}
		b.WriteByte('[')
		b.WriteString(r.Time.Format(termTimeFormat))
		if atomic.LoadUint32(&locationEnabled) != 0 {
			location := fmt.Sprintf("%+v", r.Call)
			for _, prefix := range locationTrims {
				location = strings.TrimPrefix(location, prefix)
			}
			b.WriteByte('|')
			b.WriteString(location)
		}
		b.WriteString("] ")

		msg := escapeMessage(r.Msg)
		b.WriteString(msg)
		if n := utf8.RuneCountInString(msg); len(r.Ctx) > 0 && n < termMsgJust {
			b.WriteString(strings.Repeat(" ", termMsgJust-n))
		}
		if len(r.Ctx) > 0 {
			b.WriteByte(' ')
		}
		writeLogfmt(b, r.Ctx, color, true)
		return b.Bytes()
	})
}

// LogfmtFormat 以 key=value 形式输出整条记录，便于机器解析。
func LogfmtFormat() Format {
	return FormatFunc(func(r *Record) []byte {
		fields := append([]interface{}{timeKey, r.Time, lvlKey, r.Lvl, msgKey, r.Msg}, r.Ctx...)
		b := new(bytes.Buffer)
		writeLogfmt(b, fields, 0, false)
		return b.Bytes()
	})
}

func writeLogfmt(b *bytes.Buffer, ctx []interface{}, color int, term bool) {
	for i := 0; i+1 < len(ctx); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		k, ok := ctx[i].(string)
		v := formatValue(ctx[i+1], term)
		if ok {
			k = escapeString(k)
		} else {
			k, v = errorKey, formatValue(ctx[i], term)
		}
		if color > 0 {
			fmt.Fprintf(b, "\x1b[%dm%s\x1b[0m=", color, k)
		} else {
			b.WriteString(k)
			b.WriteByte('=')
		}
		b.WriteString(v)
	}
	b.WriteByte('\n')
}

// JSONFormat 每条记录输出一个 JSON 对象并换行。
func JSONFormat() Format {
	return FormatFunc(func(r *Record) []byte {
		props := map[string]interface{}{
			timeKey: r.Time,
			lvlKey:  r.Lvl.String(),
			msgKey:  r.Msg,
		}
		for i := 0; i+1 < len(r.Ctx); i += 2 {
			k, ok := r.Ctx[i].(string)
			if !ok {
				props[errorKey] = fmt.Sprintf("%+v is not a string key", r.Ctx[i])
				continue
			}
			props[k] = jsonValue(r.Ctx[i+1])
		}
		b, err := json.Marshal(props)
		if err != nil {
			b, _ = json.Marshal(map[string]string{errorKey: err.Error()})
		}
		return append(b, '\n')
	})
}

func jsonValue(value interface{}) interface{} {
	switch v := stringify(value).(type) {
	case bool, string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return v
	default:
		return fmt.Sprintf("%+v", v)
	}
}

// stringify 把 time、error 和 Stringer 转成字符串，nil 指针接收者
// 导致的 panic 被转换为 "nil"。
func stringify(value interface{}) (result interface{}) {
	defer func() {
		if err := recover(); err != nil {
			if v := reflect.ValueOf(value); v.Kind() == reflect.Ptr && v.IsNil() {
				result = "nil"
				return
			}
			panic(err)
		}
	}()
	switch v := value.(type) {
	case time.Time:
		return v.Format(timeFormat)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}
	return value
}

func formatValue(value interface{}, term bool) string {
	if value == nil {
		return "nil"
	}
	if ts, ok := value.(TerminalStringer); ok && term {
		return escapeString(ts.TerminalString())
	}
	switch v := stringify(value).(type) {
	case string:
		return escapeString(v)
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', 3, 64)
	case float64:
		return strconv.FormatFloat(v, 'f', 3, 64)
	case int:
		return formatCount(int64(v))
	case int8, int16, int32, int64, uint8, uint16, uint32:
		return formatCount(reflect.ValueOf(v).Convert(reflect.TypeOf(int64(0))).Int())
	case uint, uint64:
		return groupDigits(fmt.Sprint(v))
	default:
		return escapeString(fmt.Sprintf("%+v", v))
	}
}

// formatCount 为不小于 100000 的整数加千位分隔符，字节数更易读。
func formatCount(n int64) string {
	return groupDigits(strconv.FormatInt(n, 10))
}

func groupDigits(s string) string {
	digits := strings.TrimPrefix(s, "-")
	if len(digits) < 6 {
		return s
	}
	var b strings.Builder
	if len(digits) < len(s) {
		b.WriteByte('-')
	}
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// escapeString 在值包含空白、引号、等号或非 ASCII 字符时加引号。
func escapeString(s string) string {
	return quoteIf(s, func(r rune) bool { return r <= '"' || r > '~' || r == '=' })
}

// escapeMessage 与 escapeString 相同，但允许空格和换行。
func escapeMessage(s string) string {
	return quoteIf(s, func(r rune) bool {
		return r != '\n' && r != '\r' && (r < ' ' || r > '~' || r == '=')
	})
}

func quoteIf(s string, needs func(rune) bool) string {
	if strings.IndexFunc(s, needs) < 0 {
		return s
	}
	return strconv.Quote(s)
}
