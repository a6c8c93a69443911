package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"sha3sponge/common/hexutil"
)

const emptyKeccak = "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"

func TestBytesToHash(t *testing.T) {
	h := BytesToHash([]byte{1, 2})
	if h[30] != 1 || h[31] != 2 || h[0] != 0 {
		t.Errorf("short input not left padded: %x", h)
	}
	long := make([]byte, 40)
	long[8] = 0xaa
	if h := BytesToHash(long); h[0] != 0xaa {
		t.Errorf("long input not cropped from the left: %x", h)
	}
}

func TestHashHex(t *testing.T) {
	h := HexToHash(emptyKeccak)
	if h.Hex() != emptyKeccak || h.String() != emptyKeccak {
		t.Errorf("got %s", h.Hex())
	}
	if s := h.TerminalString(); s != "c5d246..85a470" {
		t.Errorf("TerminalString: got %s", s)
	}
}

func TestHashFormat(t *testing.T) {
	h := HexToHash("0x00000000000000000000000000000000000000000000000000000000000000ab")
	tests := []struct {
		format string
		want   string
	}{
		{"%v", h.Hex()},
		{"%s", h.Hex()},
		{"%q", `"` + h.Hex() + `"`},
		{"%x", h.Hex()[2:]},
		{"%#x", h.Hex()},
		{"%X", "00000000000000000000000000000000000000000000000000000000000000AB"},
		{"%d", fmt.Sprintf("%%!d(hash=%x)", h[:])},
	}
	for _, tt := range tests {
		if got := fmt.Sprintf(tt.format, h); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestHashJSON(t *testing.T) {
	var h Hash
	if err := json.Unmarshal([]byte(`"`+emptyKeccak+`"`), &h); err != nil {
		t.Fatal(err)
	}
	if h != HexToHash(emptyKeccak) {
		t.Errorf("got %x", h)
	}
	out, err := json.Marshal(h)
	if err != nil || string(out) != `"`+emptyKeccak+`"` {
		t.Errorf("marshal: got %s, %v", out, err)
	}
	for _, bad := range []string{`"0x00"`, `"c5d2"`, `12`, `"0x` + string(bytes.Repeat([]byte("zz"), 32)) + `"`} {
		if err := json.Unmarshal([]byte(bad), &h); err == nil {
			t.Errorf("%s: expected error", bad)
		}
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		input string
		want  []byte
		err   error
	}{
		{"abcd", []byte{0xab, 0xcd}, nil},
		{"0xABCD", []byte{0xab, 0xcd}, nil},
		{"", nil, hexutil.ErrEmptyString},
		{"abc", nil, hexutil.ErrOddLength},
		{"0xabc", nil, hexutil.ErrOddLength},
		{"zz", nil, hexutil.ErrSyntax},
		{"0xzz", nil, hexutil.ErrSyntax},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.input)
		if err != tt.err || !bytes.Equal(got, tt.want) {
			t.Errorf("ParseHex(%q) = %x, %v; want %x, %v", tt.input, got, err, tt.want, tt.err)
		}
	}
	if got := FromHex("0x1"); !bytes.Equal(got, []byte{0x01}) {
		t.Errorf("FromHex odd: got %x", got)
	}
}
