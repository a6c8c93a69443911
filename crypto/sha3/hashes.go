package sha3

// New 返回使用纯 Go 置换的内置变体哈希器。
func New(v Variant) *Hasher { return newHasher(v.Params(), Portable) }

// NewWithPermutation 返回使用给定置换实现的内置变体哈希器，
// perm 为 nil 时使用 Portable。
func NewWithPermutation(v Variant, perm Permutation) *Hasher {
	return newHasher(v.Params(), perm)
}

// NewFromParams builds a hasher for a custom parameter set. The parameters
// are validated again, so a hand-built Params literal is safe to pass.
func NewFromParams(p Params, perm Permutation) (*Hasher, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return newHasher(p, perm), nil
}

// NewKeccakX 构造函数使用原始 Keccak 填充 (0x01)，
// 所有变体都设置 capacity=2*outputSize。
func NewKeccak224() *Hasher { return New(Keccak224) }
func NewKeccak256() *Hasher { return New(Keccak256) }
func NewKeccak384() *Hasher { return New(Keccak384) }
func NewKeccak512() *Hasher { return New(Keccak512) }

// NewX 构造函数使用 FIPS-202 SHA-3 填充 (0x06)。
func New224() *Hasher { return New(SHA3_224) }
func New256() *Hasher { return New(SHA3_256) }
func New384() *Hasher { return New(SHA3_384) }
func New512() *Hasher { return New(SHA3_512) }

func sum(v Variant, data []byte, out []byte) {
	h := newHasher(v.Params(), Portable)
	h.Write(data)
	h.FinalizeInto(out)
}

// Sum224 returns the SHA3-224 digest of the data.
func Sum224(data []byte) (digest [28]byte) {
	sum(SHA3_224, data, digest[:])
	return
}

// Sum256 returns the SHA3-256 digest of the data.
func Sum256(data []byte) (digest [32]byte) {
	sum(SHA3_256, data, digest[:])
	return
}

// Sum384 returns the SHA3-384 digest of the data.
func Sum384(data []byte) (digest [48]byte) {
	sum(SHA3_384, data, digest[:])
	return
}

// Sum512 returns the SHA3-512 digest of the data.
func Sum512(data []byte) (digest [64]byte) {
	sum(SHA3_512, data, digest[:])
	return
}

// SumKeccak224 returns the legacy Keccak-224 digest of the data.
func SumKeccak224(data []byte) (digest [28]byte) {
	sum(Keccak224, data, digest[:])
	return
}

// SumKeccak256 returns the legacy Keccak-256 digest of the data.
func SumKeccak256(data []byte) (digest [32]byte) {
	sum(Keccak256, data, digest[:])
	return
}

// SumKeccak384 returns the legacy Keccak-384 digest of the data.
func SumKeccak384(data []byte) (digest [48]byte) {
	sum(Keccak384, data, digest[:])
	return
}

// SumKeccak512 returns the legacy Keccak-512 digest of the data.
func SumKeccak512(data []byte) (digest [64]byte) {
	sum(Keccak512, data, digest[:])
	return
}
