package sha3

import "fmt"

// Hasher 是 Keccak/SHA-3 的增量哈希状态：海绵状态加上一个不足一块的
// 待吸收缓冲区。它实现了 hash.Hash。
//
// Hasher 不做任何同步，同一时间只能被一个 goroutine 使用。
type Hasher struct {
	a     State         // main state of the hash
	buf   [maxRate]byte // pending input, only buf[:rate] is used
	bufsz int           // valid bytes in buf, always < rate

	rate int  // bytes absorbed per permutation
	size int  // digest length in bytes
	pad  byte // domain separation byte

	params Params
	perm   Permutation
	spent  bool // set by Finalize, cleared by Reset
}

func newHasher(p Params, perm Permutation) *Hasher {
	if perm == nil {
		perm = Portable
	}
	return &Hasher{
		rate:   p.Rate(),
		size:   p.Size(),
		pad:    p.Padding,
		params: p,
		perm:   perm,
	}
}

// Write 吸收 p。凑满的块立即被吸收，待吸收缓冲区永远不会留下完整的一块。
// 它总是返回 len(p), nil。在 Finalize 之后、Reset 之前调用会 panic。
func (h *Hasher) Write(p []byte) (int, error) {
	if h.spent {
		panic("sha3: Write after Finalize")
	}
	written := len(p)
	if written == 0 {
		return 0, nil
	}
	if h.bufsz != 0 {
		room := h.rate - h.bufsz
		if len(p) < room {
			h.bufsz += copy(h.buf[h.bufsz:h.rate], p)
			h.checkBuffer()
			return written, nil
		}
		// 补满一块后吸收，剩余部分继续处理。
		copy(h.buf[h.bufsz:h.rate], p[:room])
		h.perm.Absorb(&h.a, h.buf[:h.rate], h.rate)
		h.bufsz = 0
		p = p[room:]
	}
	left := len(p)
	if left >= h.rate {
		left = h.perm.Absorb(&h.a, p, h.rate)
	}
	h.bufsz = copy(h.buf[:h.rate], p[len(p)-left:])
	h.checkBuffer()
	return written, nil
}

// FinalizeInto 填充最后一块、吸收并把摘要挤出到 out[:Size()]。
// 之后 Hasher 不可再用，直到调用 Reset。
func (h *Hasher) FinalizeInto(out []byte) {
	if h.spent {
		panic("sha3: Finalize after Finalize")
	}
	if len(out) < h.size {
		panic(fmt.Sprintf("sha3: output buffer of %d bytes, need %d", len(out), h.size))
	}
	h.checkBuffer()

	// 10*1 填充。bufsz 可能等于 rate-1，此时两次写入落在同一个字节上，
	// 所以结束标记必须用或运算。
	block := h.buf[:h.rate]
	for i := h.bufsz; i < h.rate; i++ {
		block[i] = 0
	}
	block[h.bufsz] = h.pad
	block[h.rate-1] |= 0x80

	if left := h.perm.Absorb(&h.a, block, h.rate); debugInvariants && left != 0 {
		panic(fmt.Sprintf("sha3: final block left %d bytes unabsorbed", left))
	}
	h.perm.Squeeze(&h.a, out[:h.size], h.rate)
	h.bufsz = 0
	h.spent = true
}

// Finalize returns the digest of everything written so far. The hasher is
// spent afterwards.
func (h *Hasher) Finalize() []byte {
	out := make([]byte, h.size)
	h.FinalizeInto(out)
	return out
}

// FinalizeReset 等价于 Finalize 后紧接着 Reset。
func (h *Hasher) FinalizeReset() []byte {
	out := h.Finalize()
	h.Reset()
	return out
}

// Reset 将状态和缓冲区恢复为全新状态，不重新分配内存。
func (h *Hasher) Reset() {
	h.a = State{}
	h.bufsz = 0
	h.spent = false
}

// Sum 把当前摘要追加到 b 后返回，不改变正在进行的状态，
// 调用者可以继续写入。
//
// Finalize 之后状态已经被填充吸收，不再对应任何前缀，此时 Sum 会 panic，
// 直到调用 Reset。
func (h *Hasher) Sum(b []byte) []byte {
	if h.spent {
		panic("sha3: Sum after Finalize")
	}
	dup := *h
	var digest [maxRate]byte
	dup.FinalizeInto(digest[:h.size])
	return append(b, digest[:h.size]...)
}

// Clone 返回一个独立的副本。
func (h *Hasher) Clone() *Hasher {
	dup := *h
	return &dup
}

// Size 以字节为单位返回摘要长度。
func (h *Hasher) Size() int { return h.size }

// BlockSize 返回海绵的速率：每次置换吸收的字节数。
func (h *Hasher) BlockSize() int { return h.rate }

// Params returns the parameters the hasher was built with.
func (h *Hasher) Params() Params { return h.params }

// String hides the sponge state. Built-in variants print their Go
// identifier, e.g. "Keccak256 { ... }".
func (h *Hasher) String() string {
	name := h.params.ident
	if name == "" {
		name = h.params.Name
	}
	return name + " { ... }"
}

func (h *Hasher) checkBuffer() {
	if debugInvariants && (h.bufsz < 0 || h.bufsz >= h.rate) {
		panic(fmt.Sprintf("sha3: pending buffer holds %d bytes at rate %d", h.bufsz, h.rate))
	}
}
