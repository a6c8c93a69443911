package crypto

import (
	"hash"

	"sha3sponge/common"
	"sha3sponge/crypto/sha3"
)

// DigestLength 是 Keccak-256 摘要的字节长度。
const DigestLength = common.HashLength

// KeccakState 包装了 sha3.Hasher。除了通常的 hash 方法外，它还支持
// FinalizeInto 直接把摘要写入调用方的缓冲区，比 Sum 少一次复制。
type KeccakState interface {
	hash.Hash
	FinalizeInto(out []byte)
}

// NewKeccakState 创建一个新的 KeccakState
func NewKeccakState() KeccakState {
	return sha3.NewKeccak256()
}

// HashData 使用给定的 KeccakState 对提供的数据进行哈希处理，并返回一个 32 字节的哈希值。
// kh 必须是全新的或者已经 Reset 过的。
func HashData(kh KeccakState, data []byte) (h common.Hash) {
	kh.Reset()
	kh.Write(data)
	kh.FinalizeInto(h[:])
	return h
}

// Keccak256 计算并返回输入数据的 Keccak256 哈希值。
func Keccak256(data ...[]byte) []byte {
	b := make([]byte, DigestLength)
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.FinalizeInto(b)
	return b
}

// Keccak256Hash 计算并返回输入数据的 Keccak256 哈希值，
// 将其转换为内部 Hash 数据结构。
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.FinalizeInto(h[:])
	return h
}

// Keccak512 计算并返回输入数据的 Keccak512 哈希值。
func Keccak512(data ...[]byte) []byte {
	d := sha3.NewKeccak512()
	for _, b := range data {
		d.Write(b)
	}
	return d.Finalize()
}

// SHA3Sum256 计算输入数据的 FIPS-202 SHA3-256 哈希值。
func SHA3Sum256(data ...[]byte) (h common.Hash) {
	d := sha3.New256()
	for _, b := range data {
		d.Write(b)
	}
	d.FinalizeInto(h[:])
	return h
}
