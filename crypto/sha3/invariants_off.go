//go:build !sha3debug
// +build !sha3debug

package sha3

// debugInvariants 打开待吸收缓冲区的运行时断言，使用 -tags sha3debug 构建。
const debugInvariants = false
