package sha3

import "encoding/binary"

// laneSize 是内部状态每个“通道”的字节大小。
const laneSize = 8

// numLanes 是状态中通道的总数 (5 * 5)。
const numLanes = 25

// State 是 1600 位的海绵状态，按小端序把 200 字节铺在 25 个通道上。
type State [numLanes]uint64

// Permutation 是海绵与压缩原语之间的边界。
//
// Absorb 将 in 中每个完整的 rate 字节块异或进状态并在每块之后置换，
// 返回未消费的尾部字节数 (总是小于 rate)。Squeeze 从状态前部每次取 rate
// 个字节写满 out，仅在还需要更多输出时才置换。
//
// 实现必须是其状态参数的纯函数，这样不同的 Hasher 可以并发使用同一个
// Permutation 而无需同步。
type Permutation interface {
	Absorb(a *State, in []byte, rate int) int
	Squeeze(a *State, out []byte, rate int)
}

// Portable is the pure-Go Keccak-f[1600] permutation used when no other
// implementation is supplied.
var Portable Permutation = portable{}

type portable struct{}

func (portable) Absorb(a *State, in []byte, rate int) int {
	for len(in) >= rate {
		xorIn(a, in[:rate])
		keccakF1600(a)
		in = in[rate:]
	}
	return len(in)
}

func (portable) Squeeze(a *State, out []byte, rate int) {
	for len(out) > 0 {
		n := rate
		if n > len(out) {
			n = len(out)
		}
		copyOut(a, out[:n])
		out = out[n:]
		if len(out) > 0 {
			keccakF1600(a)
		}
	}
}

// xorIn 把 buf 按小端序异或进状态前部。buf 长度不必是通道大小的倍数。
func xorIn(a *State, buf []byte) {
	n := len(buf) / laneSize
	for i := 0; i < n; i++ {
		a[i] ^= binary.LittleEndian.Uint64(buf[i*laneSize:])
	}
	for i := n * laneSize; i < len(buf); i++ {
		a[i/laneSize] ^= uint64(buf[i]) << (8 * uint(i%laneSize))
	}
}

// copyOut 把状态前部的 len(out) 个字节按小端序拷贝到 out。
func copyOut(a *State, out []byte) {
	n := len(out) / laneSize
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(out[i*laneSize:], a[i])
	}
	if rest := out[n*laneSize:]; len(rest) > 0 {
		var lane [laneSize]byte
		binary.LittleEndian.PutUint64(lane[:], a[n])
		copy(rest, lane[:])
	}
}
