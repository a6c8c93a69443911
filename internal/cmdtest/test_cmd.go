// Package cmdtest 在子进程中运行命令行程序并断言其输出。
package cmdtest

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"text/template"
	"time"

	"github.com/docker/docker/pkg/reexec"
)

// killTimeout 是等待子进程输出或退出的上限。
const killTimeout = 5 * time.Second

// TestCmd 驱动一个通过 reexec 启动的子进程。
type TestCmd struct {
	// 为方便起见，所有测试方法均可用。
	*testing.T

	// Data 是 Expect 模板的数据。
	Data interface{}

	cmd    *exec.Cmd
	stdout *bufio.Reader
	stdin  io.WriteCloser
	stderr *stderrLog

	// Err 是 WaitExit 得到的进程退出错误。
	Err error
}

// NewTestCmd 返回一个绑定到 t 的命令运行器，data 作为 Expect 模板的数据。
func NewTestCmd(t *testing.T, data interface{}) *TestCmd {
	return &TestCmd{T: t, Data: data}
}

var runs int32

// Run 使用 name 作为 argv[0] 重新执行当前测试二进制文件，这会触发
// 该名称注册的 reexec 初始化函数，例如 cmd/sha3sum 中的 "sha3sum-test"。
func (tt *TestCmd) Run(name string, args ...string) {
	tt.stderr = &stderrLog{t: tt.T, id: atomic.AddInt32(&runs, 1)}
	tt.cmd = &exec.Cmd{
		Path:   reexec.Self(),
		Args:   append([]string{name}, args...),
		Stderr: tt.stderr,
	}
	stdout, err := tt.cmd.StdoutPipe()
	if err != nil {
		tt.Fatal(err)
	}
	tt.stdout = bufio.NewReader(stdout)
	if tt.stdin, err = tt.cmd.StdinPipe(); err != nil {
		tt.Fatal(err)
	}
	if err := tt.cmd.Start(); err != nil {
		tt.Fatal(err)
	}
}

// Input 把 data 写入子进程的标准输入并关闭它。
func (tt *TestCmd) Input(data []byte) {
	if _, err := tt.stdin.Write(data); err != nil {
		tt.Fatal(err)
	}
	tt.CloseStdin()
}

// CloseStdin 关闭子进程的标准输入，读 stdin 的程序会看到 EOF。
func (tt *TestCmd) CloseStdin() {
	tt.stdin.Close()
}

// Expect 以 Data 渲染模板 tplsource，并要求子进程的标准输出
// 接下来恰好是渲染结果。开头的一个换行会被去掉。
func (tt *TestCmd) Expect(tplsource string) {
	var want bytes.Buffer
	tpl := template.Must(template.New("").Parse(tplsource))
	if err := tpl.Execute(&want, tt.Data); err != nil {
		tt.Fatal(err)
	}
	expected := bytes.TrimPrefix(want.Bytes(), []byte("\n"))

	got := make([]byte, len(expected))
	var n int
	tt.withKillTimeout(func() { n, _ = io.ReadFull(tt.stdout, got) })
	got = got[:n]
	if !bytes.Equal(got, expected) {
		tt.Fatalf("stdout mismatch\n---- got\n%s\n---- want\n%s", got, expected)
	}
	tt.Logf("matched stdout:\n%s", expected)
}

// Output 读取剩余的全部标准输出。
func (tt *TestCmd) Output() []byte {
	var out []byte
	tt.withKillTimeout(func() { out, _ = io.ReadAll(tt.stdout) })
	return out
}

// ExpectExit 要求子进程不再输出任何内容并退出。
func (tt *TestCmd) ExpectExit() {
	if rest := tt.Output(); len(rest) > 0 {
		tt.Errorf("unexpected stdout:\n%s", rest)
	}
	tt.WaitExit()
}

// WaitExit 等待子进程结束，结果保存在 Err 中。
func (tt *TestCmd) WaitExit() {
	tt.Err = tt.cmd.Wait()
}

// ExitStatus 返回子进程的退出码，只在 WaitExit 之后有意义。
func (tt *TestCmd) ExitStatus() int {
	var exitErr *exec.ExitError
	if errors.As(tt.Err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			return status.ExitStatus()
		}
	}
	return 0
}

// StderrText 返回到目前为止子进程写到 stderr 的全部内容。
func (tt *TestCmd) StderrText() string {
	tt.stderr.mu.Lock()
	defer tt.stderr.mu.Unlock()
	return tt.stderr.buf.String()
}

// Kill 强制结束子进程。
func (tt *TestCmd) Kill() {
	tt.cmd.Process.Kill()
}

func (tt *TestCmd) withKillTimeout(fn func()) {
	timer := time.AfterFunc(killTimeout, func() {
		tt.Log("killing the child process (timeout)")
		tt.Kill()
	})
	defer timer.Stop()
	fn()
}

// stderrLog 把子进程的 stderr 逐行转发到 t.Log，同时保留一份副本。
type stderrLog struct {
	t  *testing.T
	id int32

	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *stderrLog) Write(b []byte) (int, error) {
	for _, line := range bytes.Split(b, []byte("\n")) {
		if len(line) > 0 {
			l.t.Logf("(stderr:%d) %s", l.id, line)
		}
	}
	l.mu.Lock()
	l.buf.Write(b)
	l.mu.Unlock()
	return len(b), nil
}
