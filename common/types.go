package common

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"sha3sponge/common/hexutil"
)

// HashLength 是 256 位摘要的字节长度。
const HashLength = 32

// Hash 是 32 字节的 Keccak-256 或 SHA3-256 摘要。
type Hash [HashLength]byte

// BytesToHash 把 b 右对齐放入 Hash，超过 32 字节时只保留末尾部分。
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash 解析十六进制的 s，非法输入得到零值。
func HexToHash(s string) Hash { return BytesToHash(FromHex(s)) }

func (h Hash) Bytes() []byte { return h[:] }

// Hex 返回带 0x 前缀的小写十六进制。
func (h Hash) Hex() string { return hexutil.Encode(h[:]) }

func (h Hash) String() string { return h.Hex() }

// TerminalString 实现 log.TerminalStringer，终端日志只显示首尾各三个字节。
func (h Hash) TerminalString() string {
	return hex.EncodeToString(h[:3]) + ".." + hex.EncodeToString(h[HashLength-3:])
}

// Format 实现 fmt.Formatter，支持 %v %s %q %x %X。
func (h Hash) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
		io.WriteString(s, h.Hex())
	case 'q':
		io.WriteString(s, `"`+h.Hex()+`"`)
	case 'x', 'X':
		digits := hex.EncodeToString(h[:])
		if s.Flag('#') {
			digits = "0x" + digits
		}
		if verb == 'X' {
			digits = strings.ToUpper(digits)
		}
		io.WriteString(s, digits)
	default:
		fmt.Fprintf(s, "%%!%c(hash=%x)", verb, h[:])
	}
}

// MarshalText 输出带 0x 前缀的十六进制，JSON 中即为字符串。
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText 要求 0x 前缀和正好 64 位十六进制数字。
func (h *Hash) UnmarshalText(input []byte) error {
	return hexutil.DecodeFixed(input, h[:])
}

// SetBytes 用 b 覆盖 h，规则同 BytesToHash。
func (h *Hash) SetBytes(b []byte) {
	if extra := len(b) - HashLength; extra > 0 {
		b = b[extra:]
	}
	*h = Hash{}
	copy(h[HashLength-len(b):], b)
}
