package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	xsha3 "golang.org/x/crypto/sha3"

	"sha3sponge/common"
)

func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	exp, _ := common.ParseHex("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	checkhash(t, "Keccak256", func(in []byte) []byte { return Keccak256(in) }, msg, exp)
	checkhash(t, "Keccak256Hash", func(in []byte) []byte { h := Keccak256Hash(in); return h[:] }, msg, exp)
}

func TestKeccak256Variadic(t *testing.T) {
	whole := Keccak256([]byte("testFoo()"))
	parts := Keccak256([]byte("test"), []byte("Foo"), nil, []byte("()"))
	require.Equal(t, whole, parts)
	require.Equal(t, common.HexToHash("0x79adbd5094e60c1bc2b963678ff44695d1430b8ccff0b1cd57c03a7f63567822"), Keccak256Hash([]byte("test"), []byte("Foo()")))
}

func TestKeccak512(t *testing.T) {
	msg := bytes.Repeat([]byte{0x5a}, 300)
	ref := xsha3.NewLegacyKeccak512()
	ref.Write(msg)
	require.Equal(t, ref.Sum(nil), Keccak512(msg[:100], msg[100:]))
}

func TestHashData(t *testing.T) {
	kh := NewKeccakState()
	kh.Write([]byte("stale input"))
	require.Equal(t, Keccak256Hash([]byte("hello world")), HashData(kh, []byte("hello world")))
	// 同一个状态可以反复使用。
	require.Equal(t, Keccak256Hash(nil), HashData(kh, nil))
	require.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", HashData(kh, nil).Hex())
}

func checkhash(t *testing.T, name string, f func([]byte) []byte, msg, exp []byte) {
	sum := f(msg)
	if !bytes.Equal(exp, sum) {
		t.Fatalf("hash %s mismatch: want: %x have: %x", name, exp, sum)
	}
}

func TestSHA3Sum256(t *testing.T) {
	want := xsha3.Sum256([]byte("hello world"))
	require.Equal(t, common.Hash(want), SHA3Sum256([]byte("hello "), []byte("world")))
	require.NotEqual(t, Keccak256Hash([]byte("hello world")), SHA3Sum256([]byte("hello world")))
}
