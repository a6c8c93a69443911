//go:build sha3debug
// +build sha3debug

package sha3

const debugInvariants = true
