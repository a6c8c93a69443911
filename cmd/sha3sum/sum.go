package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"sha3sponge/common"
	"sha3sponge/common/hexutil"
	"sha3sponge/crypto/sha3"
	"sha3sponge/log"
)

// summer 在多个文件之间复用同一个哈希器和读缓冲区。
type summer struct {
	v   sha3.Variant
	h   *sha3.Hasher
	buf []byte
}

func newSummer(v sha3.Variant, bufsize int) *summer {
	return &summer{v: v, h: sha3.New(v), buf: make([]byte, bufsize)}
}

func (s *summer) variant() sha3.Variant { return s.v }
func (s *summer) params() sha3.Params   { return s.h.Params() }

// use 切换到另一个变体，变体不变时保留现有哈希器。
func (s *summer) use(v sha3.Variant) {
	if v != s.v {
		s.v, s.h = v, sha3.New(v)
	}
}

// sumFile 对名为 name 的文件求摘要，"-" 表示标准输入。
func (s *summer) sumFile(name string) ([]byte, error) {
	if name == "-" {
		return s.sum(name, os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.sum(name, f)
}

func (s *summer) sum(name string, r io.Reader) ([]byte, error) {
	var (
		start = time.Now()
		total int64
	)
	s.h.Reset()
	for {
		n, err := r.Read(s.buf)
		if n > 0 {
			s.h.Write(s.buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	digest := s.h.Finalize()
	log.Debug("Hashed file", "file", name, "alg", s.h.Params().Name, "bytes", total, "elapsed", common.PrettyDuration(time.Since(start)))
	return digest, nil
}

// tagName 返回 BSD 格式中使用的算法标签，例如 SHA3-256、KECCAK-256。
func tagName(p sha3.Params) string {
	return strings.Replace(strings.ToUpper(p.Name), "SHA-3", "SHA3", 1)
}

type jsonDigest struct {
	Algorithm string        `json:"algorithm"`
	File      string        `json:"file"`
	Digest    hexutil.Bytes `json:"digest"`
}

type printer struct {
	w   io.Writer
	tag bool
	enc *json.Encoder
}

func newPrinter(w io.Writer, tag, asJSON bool) *printer {
	p := &printer{w: w, tag: tag}
	if asJSON {
		p.enc = json.NewEncoder(w)
	}
	return p
}

func (p *printer) print(params sha3.Params, name string, digest []byte) error {
	switch {
	case p.enc != nil:
		return p.enc.Encode(jsonDigest{Algorithm: params.Name, File: name, Digest: digest})
	case p.tag:
		_, err := fmt.Fprintf(p.w, "%s (%s) = %x\n", tagName(params), name, digest)
		return err
	default:
		_, err := fmt.Fprintf(p.w, "%x  %s\n", digest, name)
		return err
	}
}
