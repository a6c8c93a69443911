package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"sha3sponge/common"
	"sha3sponge/crypto/sha3"
	"sha3sponge/log"
)

var (
	// SHA3-256 (file) = 3a98...
	bsdLine = regexp.MustCompile(`^([A-Za-z0-9_-]+) \((.*)\) = ((?:0[xX])?[0-9a-fA-F]+)$`)
	// 3a98...  file 或 3a98... *file
	gnuLine = regexp.MustCompile(`^((?:0[xX])?[0-9a-fA-F]+) [ *](.*)$`)
)

type checkLine struct {
	variant sha3.Variant
	file    string
	digest  []byte
}

// parseCheckLine 解析一行校验和。BSD 格式自带算法，coreutils 格式使用 def。
func parseCheckLine(line string, def sha3.Variant) (checkLine, error) {
	var (
		cl  = checkLine{variant: def}
		hex string
	)
	if m := bsdLine.FindStringSubmatch(line); m != nil {
		v, err := sha3.LookupVariant(m[1])
		if err != nil {
			return cl, err
		}
		cl.variant, cl.file, hex = v, m[2], m[3]
	} else if m := gnuLine.FindStringSubmatch(line); m != nil {
		cl.file, hex = m[2], m[1]
	} else {
		return cl, fmt.Errorf("unrecognized checksum line")
	}
	digest, err := common.ParseHex(hex)
	if err != nil {
		return cl, err
	}
	if size := cl.variant.Params().Size(); len(digest) != size {
		return cl, fmt.Errorf("digest is %d bytes, %s wants %d", len(digest), cl.variant, size)
	}
	cl.digest = digest
	return cl, nil
}

type checkStats struct {
	verified   int
	mismatched int
	unreadable int
	malformed  int
}

// checkFiles 读取每个校验文件中的行并重新计算摘要。
func checkFiles(w io.Writer, s *summer, lists []string) error {
	var (
		def   = s.variant()
		stats checkStats
	)
	for _, list := range lists {
		if err := checkList(w, s, def, list, &stats); err != nil {
			return err
		}
	}
	if stats.malformed > 0 {
		log.Warn("Some checksum lines were improperly formatted", "count", stats.malformed)
	}
	switch {
	case stats.verified == 0 && stats.unreadable == 0:
		return fmt.Errorf("no properly formatted checksum lines found")
	case stats.mismatched > 0 || stats.unreadable > 0:
		return fmt.Errorf("%d computed checksums did NOT match, %d files could not be read", stats.mismatched, stats.unreadable)
	}
	return nil
}

func checkList(w io.Writer, s *summer, def sha3.Variant, list string, stats *checkStats) error {
	var r io.Reader = os.Stdin
	if list != "-" {
		f, err := os.Open(list)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		cl, err := parseCheckLine(line, def)
		if err != nil {
			log.Warn("Improperly formatted checksum line", "list", list, "line", lineno, "err", err)
			stats.malformed++
			continue
		}
		if cl.file == "-" && list == "-" {
			log.Warn("Checksum list read from stdin cannot verify stdin", "line", lineno)
			stats.malformed++
			continue
		}
		if cl.file != "-" && !common.FileExist(cl.file) {
			log.Warn("No such file", "file", cl.file)
			fmt.Fprintf(w, "%s: FAILED open or read\n", cl.file)
			stats.unreadable++
			continue
		}
		s.use(cl.variant)
		digest, err := s.sumFile(cl.file)
		if err != nil {
			log.Error("Failed to hash file", "file", cl.file, "err", err)
			fmt.Fprintf(w, "%s: FAILED open or read\n", cl.file)
			stats.unreadable++
			continue
		}
		stats.verified++
		if bytes.Equal(digest, cl.digest) {
			fmt.Fprintf(w, "%s: OK\n", cl.file)
		} else {
			fmt.Fprintf(w, "%s: FAILED\n", cl.file)
			stats.mismatched++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", list, err)
	}
	return nil
}
