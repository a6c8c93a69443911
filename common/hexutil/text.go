package hexutil

import (
	"encoding/hex"
	"fmt"
)

// Bytes 以带 0x 前缀的十六进制文本编组，在 JSON 中表现为字符串。
// 空切片编组为 "0x"。
type Bytes []byte

// MarshalText 实现 encoding.TextMarshaler。
func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(Encode(b)), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler，空文本解码为空切片。
func (b *Bytes) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*b = Bytes{}
		return nil
	}
	dec, err := Decode(string(text))
	if err != nil {
		return err
	}
	*b = dec
	return nil
}

func (b Bytes) String() string {
	return Encode(b)
}

// DecodeFixed 把带 0x 前缀的 text 解码进 out，十六进制位数必须正好是
// 2*len(out)。出错时 out 保持不变。
func DecodeFixed(text, out []byte) error {
	if !has0xPrefix(string(text)) {
		return ErrMissingPrefix
	}
	digits := text[2:]
	if len(digits) != 2*len(out) {
		return fmt.Errorf("hex string has %d digits, want %d", len(digits), 2*len(out))
	}
	dec := make([]byte, len(out))
	if _, err := hex.Decode(dec, digits); err != nil {
		return mapError(err)
	}
	copy(out, dec)
	return nil
}
