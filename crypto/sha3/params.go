package sha3

import (
	"encoding/asn1"
	"errors"
	"fmt"
	"strings"
)

// 填充域分隔字节。Keccak 是 SHA-3 标准化之前的原始填充，
// 以太坊至今仍在使用；SHA-3 是 FIPS-202 规定的填充。
const (
	PadKeccak byte = 0x01
	PadSHA3   byte = 0x06
)

const (
	// stateBits 是 Keccak-f[1600] 置换的状态宽度。
	stateBits = 1600
	// stateBytes 是状态的字节大小 (25 * 8)。
	stateBytes = stateBits / 8
	// maxRate 是内置变体中最大的速率 (224 位输出时为 144 字节)，
	// 决定了待吸收缓冲区的大小。
	maxRate = (stateBits - 2*224) / 8
)

var (
	ErrInvalidOutputBits = errors.New("sha3: output length must be a positive multiple of 8 bits")
	ErrInvalidRate       = errors.New("sha3: derived rate out of range")
	ErrInvalidPadding    = errors.New("sha3: invalid padding byte")
	ErrUnknownVariant    = errors.New("sha3: unknown variant")
)

// Params 描述一个具体的海绵变体。速率总是由输出长度推导出来，
// 容量固定为输出长度的两倍。
type Params struct {
	Name       string
	OutputBits int
	Padding    byte
	OID        asn1.ObjectIdentifier // nil for the Keccak variants

	ident string // Go identifier of a built-in variant, empty for custom params
}

// NewParams 校验并返回一组海绵参数。
func NewParams(name string, outputBits int, pad byte) (Params, error) {
	p := Params{Name: name, OutputBits: outputBits, Padding: pad}
	if err := p.validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (p Params) validate() error {
	if p.OutputBits <= 0 || p.OutputBits%8 != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOutputBits, p.OutputBits)
	}
	rate := (stateBits - 2*p.OutputBits) / 8
	if rate < 1 || rate > stateBytes {
		return fmt.Errorf("%w: rate %d for %d-bit output", ErrInvalidRate, rate, p.OutputBits)
	}
	if rate > maxRate {
		return fmt.Errorf("%w: rate %d exceeds buffer of %d bytes", ErrInvalidRate, rate, maxRate)
	}
	if p.Size() > rate {
		return fmt.Errorf("%w: output of %d bytes exceeds rate %d", ErrInvalidRate, p.Size(), rate)
	}
	// 当 bufsz == rate-1 时填充字节与结束标记 0x80 落在同一个字节上。
	if p.Padding == 0 || p.Padding&0x80 != 0 {
		return fmt.Errorf("%w: %#02x", ErrInvalidPadding, p.Padding)
	}
	return nil
}

// Size 返回摘要的字节长度。
func (p Params) Size() int { return p.OutputBits / 8 }

// Rate 返回每次置换吸收或挤出的字节数，即块大小。
func (p Params) Rate() int { return (stateBits - 2*p.OutputBits) / 8 }

// Variant 是内置算法的封闭集合。
type Variant int

const (
	Keccak224 Variant = iota
	Keccak256
	Keccak384
	Keccak512
	SHA3_224
	SHA3_256
	SHA3_384
	SHA3_512
)

var variants = [...]Params{
	Keccak224: {ident: "Keccak224", Name: "Keccak-224", OutputBits: 224, Padding: PadKeccak},
	Keccak256: {ident: "Keccak256", Name: "Keccak-256", OutputBits: 256, Padding: PadKeccak},
	Keccak384: {ident: "Keccak384", Name: "Keccak-384", OutputBits: 384, Padding: PadKeccak},
	Keccak512: {ident: "Keccak512", Name: "Keccak-512", OutputBits: 512, Padding: PadKeccak},
	SHA3_224:  {ident: "SHA3_224", Name: "SHA-3-224", OutputBits: 224, Padding: PadSHA3, OID: asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 7}},
	SHA3_256:  {ident: "SHA3_256", Name: "SHA-3-256", OutputBits: 256, Padding: PadSHA3, OID: asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 8}},
	SHA3_384:  {ident: "SHA3_384", Name: "SHA-3-384", OutputBits: 384, Padding: PadSHA3, OID: asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 9}},
	SHA3_512:  {ident: "SHA3_512", Name: "SHA-3-512", OutputBits: 512, Padding: PadSHA3, OID: asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 10}},
}

func init() {
	for v, p := range variants {
		if err := p.validate(); err != nil {
			panic(fmt.Sprintf("sha3: built-in variant %d: %v", v, err))
		}
	}
}

// Variants 返回所有内置变体。
func Variants() []Variant {
	out := make([]Variant, len(variants))
	for i := range variants {
		out[i] = Variant(i)
	}
	return out
}

func (v Variant) valid() bool { return v >= 0 && int(v) < len(variants) }

// Params returns the parameters of a built-in variant. It panics on an
// out-of-range tag.
func (v Variant) Params() Params {
	if !v.valid() {
		panic(fmt.Sprintf("sha3: unknown variant %d", int(v)))
	}
	return variants[v]
}

func (v Variant) String() string {
	if !v.valid() {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variants[v].Name
}

// LookupVariant 按名称查找变体，忽略大小写以及 '-' 和 '_'，
// 因此 "keccak256"、"Keccak-256"、"sha3-256"、"SHA-3-256" 都可以。
func LookupVariant(name string) (Variant, error) {
	want := canonicalName(name)
	for v, p := range variants {
		if canonicalName(p.Name) == want {
			return Variant(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

func canonicalName(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
