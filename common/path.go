package common

import (
	"errors"
	"io/fs"
	"os"
	"runtime"
	"strings"
)

// MakeName 返回 "名称/v版本/系统/Go版本" 形式的程序标识。
func MakeName(name, version string) string {
	return strings.Join([]string{name, "v" + version, runtime.GOOS, runtime.Version()}, "/")
}

// FileExist 报告 path 是否存在。权限等其他 Stat 错误按存在处理，
// 留给后续的 Open 报告。
func FileExist(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
