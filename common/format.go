package common

import (
	"strings"
	"time"
)

// PrettyDuration 打印时把小数部分截到三位，例如 1.234567ms 显示为 1.234ms。
type PrettyDuration time.Duration

func (d PrettyDuration) String() string {
	s := time.Duration(d).String()
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	end := dot + 1
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end-dot > 4 {
		s = s[:dot+4] + s[end:]
	}
	return s
}
