package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docker/docker/pkg/reexec"
	"github.com/stretchr/testify/require"

	"sha3sponge/internal/cmdtest"
)

const (
	helloSHA3    = "644bcc7e564373040999aac89e7622f3ca71fba1d972fd94a31c3bfbf24e3938"
	abcKeccak256 = "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"
)

type testSum struct {
	*cmdtest.TestCmd
}

func init() {
	reexec.Register("sha3sum-test", func() {
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	})
}

func TestMain(m *testing.M) {
	// 检查我们是否被 reexec 了
	if reexec.Init() {
		return
	}
	os.Exit(m.Run())
}

// runSum 以给定参数在子进程中运行 sha3sum。
func runSum(t *testing.T, args ...string) *testSum {
	tt := new(testSum)
	tt.TestCmd = cmdtest.NewTestCmd(t, tt)
	tt.Run("sha3sum-test", args...)
	return tt
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestHashStdin(t *testing.T) {
	sum := runSum(t, "--algorithm", "keccak256")
	sum.Input([]byte("abc"))
	sum.Expect(abcKeccak256 + "  -\n")
	sum.ExpectExit()
	require.Equal(t, 0, sum.ExitStatus())
}

func TestHashFiles(t *testing.T) {
	dir := t.TempDir()
	hello := writeFile(t, dir, "hello.txt", "hello world")
	abc := writeFile(t, dir, "abc.txt", "abc")

	sum := runSum(t, hello, abc)
	sum.Expect(fmt.Sprintf("%s  %s\n3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532  %s\n", helloSHA3, hello, abc))
	sum.ExpectExit()
}

// 读缓冲区大小只影响分块方式，不影响摘要。
func TestBufsizeDoesNotChangeDigest(t *testing.T) {
	dir := t.TempDir()
	big := writeFile(t, dir, "big.bin", strings.Repeat("0123456789abcdef", 1000))

	var outputs []string
	for _, size := range []string{"1", "7", "136", "65536"} {
		sum := runSum(t, "-a", "sha3-512", "--bufsize", size, big)
		outputs = append(outputs, string(sum.Output()))
		sum.WaitExit()
		require.Equal(t, 0, sum.ExitStatus())
	}
	for _, out := range outputs[1:] {
		require.Equal(t, outputs[0], out)
	}
}

func TestTagOutput(t *testing.T) {
	dir := t.TempDir()
	hello := writeFile(t, dir, "hello.txt", "hello world")

	sum := runSum(t, "--tag", hello)
	sum.Expect(fmt.Sprintf("SHA3-256 (%s) = %s\n", hello, helloSHA3))
	sum.ExpectExit()
}

func TestJSONOutput(t *testing.T) {
	sum := runSum(t, "--json", "-a", "Keccak-256", "-")
	sum.Input([]byte("abc"))
	sum.Expect(`{"algorithm":"Keccak-256","file":"-","digest":"0x` + abcKeccak256 + `"}` + "\n")
	sum.ExpectExit()
}

func TestAlgorithmFromEnv(t *testing.T) {
	os.Setenv("SHA3SUM_ALGORITHM", "keccak-256")
	defer os.Unsetenv("SHA3SUM_ALGORITHM")

	sum := runSum(t)
	sum.Input([]byte("abc"))
	sum.Expect(abcKeccak256 + "  -\n")
	sum.ExpectExit()
}

func TestUnknownAlgorithm(t *testing.T) {
	sum := runSum(t, "-a", "md5")
	sum.CloseStdin()
	sum.ExpectExit()
	require.Equal(t, 1, sum.ExitStatus())
	require.Contains(t, sum.StderrText(), "unknown variant")
}

func TestMissingFile(t *testing.T) {
	dir := t.TempDir()
	hello := writeFile(t, dir, "hello.txt", "hello world")

	sum := runSum(t, filepath.Join(dir, "nope"), hello)
	sum.Expect(fmt.Sprintf("%s  %s\n", helloSHA3, hello))
	sum.ExpectExit()
	require.Equal(t, 1, sum.ExitStatus())
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	hello := writeFile(t, dir, "hello.txt", "hello world")
	abc := writeFile(t, dir, "abc.txt", "abc")
	list := writeFile(t, dir, "SUMS", fmt.Sprintf(
		"%s  %s\nKECCAK-256 (%s) = 0x%s\n\nnot a checksum line\n",
		helloSHA3, hello, abc, abcKeccak256))

	sum := runSum(t, "--check", list)
	sum.Expect(fmt.Sprintf("%s: OK\n%s: OK\n", hello, abc))
	sum.ExpectExit()
	require.Equal(t, 0, sum.ExitStatus())
	require.Contains(t, sum.StderrText(), "Improperly formatted checksum line")
}

func TestCheckFailed(t *testing.T) {
	dir := t.TempDir()
	hello := writeFile(t, dir, "hello.txt", "hello world!")
	gone := filepath.Join(dir, "gone.txt")
	list := writeFile(t, dir, "SUMS", fmt.Sprintf("%s  %s\n%s *%s\n", helloSHA3, hello, helloSHA3, gone))

	sum := runSum(t, "-c", list)
	sum.Expect(fmt.Sprintf("%s: FAILED\n%s: FAILED open or read\n", hello, gone))
	sum.ExpectExit()
	require.Equal(t, 1, sum.ExitStatus())
	require.Contains(t, sum.StderrText(), "1 computed checksums did NOT match")
}

func TestCheckStdinList(t *testing.T) {
	dir := t.TempDir()
	abc := writeFile(t, dir, "abc.txt", "abc")

	sum := runSum(t, "-c", "-a", "keccak256")
	sum.Input([]byte(fmt.Sprintf("%s  %s\n", abcKeccak256, abc)))
	sum.Expect(fmt.Sprintf("%s: OK\n", abc))
	sum.ExpectExit()
}

// 校验列表本身来自标准输入时，列表中的 "-" 无法再读取。
func TestCheckStdinListNamingStdin(t *testing.T) {
	dir := t.TempDir()
	abc := writeFile(t, dir, "abc.txt", "abc")

	sum := runSum(t, "-c", "-a", "keccak256", "-")
	sum.Input([]byte(fmt.Sprintf("%s  -\n%s  %s\n", abcKeccak256, abcKeccak256, abc)))
	sum.Expect(fmt.Sprintf("%s: OK\n", abc))
	sum.ExpectExit()
	require.Equal(t, 0, sum.ExitStatus())
	require.Contains(t, sum.StderrText(), "Checksum list read from stdin cannot verify stdin")
}

func TestCheckNothingToVerify(t *testing.T) {
	sum := runSum(t, "-c")
	sum.Input([]byte("garbage\n"))
	sum.ExpectExit()
	require.Equal(t, 1, sum.ExitStatus())
	require.Contains(t, sum.StderrText(), "no properly formatted checksum lines found")
}

func TestLogFile(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), "sha3sum.log")
	sum := runSum(t, "--verbosity", "5", "--log.file", logfile, "-a", "keccak256")
	sum.Input([]byte("abc"))
	sum.Expect(abcKeccak256 + "  -\n")
	sum.ExpectExit()

	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	require.Contains(t, string(data), "msg=\"Hashed file\"")
	require.Contains(t, string(data), "bytes=3")
}

func TestLogFileJSON(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), "sha3sum.json")
	sum := runSum(t, "--verbosity", "4", "--log.file", logfile, "--log.json", "-a", "keccak256")
	sum.Input([]byte("abc"))
	sum.Expect(abcKeccak256 + "  -\n")
	sum.ExpectExit()

	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"Hashed file"`)
	require.Contains(t, string(data), `"alg":"Keccak-256"`)
}

func TestTraceVerbosityPrintsCallSites(t *testing.T) {
	sum := runSum(t, "--verbosity", "5", "-a", "keccak256")
	sum.Input([]byte("abc"))
	sum.Expect(abcKeccak256 + "  -\n")
	sum.ExpectExit()
	require.Contains(t, sum.StderrText(), "|sha3sum/sum.go:")
}
