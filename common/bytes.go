// Package common 包含摘要类型和十六进制辅助函数。
package common

import (
	"encoding/hex"

	"sha3sponge/common/hexutil"
)

// FromHex 解码 s，容忍 0x 前缀和奇数长度 (左侧补 0)。
// 无效输入返回 nil。
func FromHex(s string) []byte {
	s = trim0x(s)
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

// ParseHex 严格解码一个可选带 0x 前缀的十六进制字符串。
// 校验文件里两种写法都会出现，错误值与 hexutil 相同。
func ParseHex(s string) ([]byte, error) {
	if s == "" {
		return nil, hexutil.ErrEmptyString
	}
	return hexutil.Decode("0x" + trim0x(s))
}

func trim0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
