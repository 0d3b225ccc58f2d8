package system

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{
			name:   "single line",
			output: "git version 2.44.0",
			want:   "git version 2.44.0",
		},
		{
			name:   "trailing newline",
			output: "aws-cli/2.15.30 Python/3.11.8 Linux/6.5.0\n",
			want:   "aws-cli/2.15.30 Python/3.11.8 Linux/6.5.0",
		},
		{
			name:   "leading blank lines",
			output: "\n\n  tool 1.0.0\nextra\n",
			want:   "tool 1.0.0",
		},
		{
			name:   "carriage returns",
			output: "tool 1.0.0\r\n",
			want:   "tool 1.0.0",
		},
		{
			name:   "empty output",
			output: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstLine(tt.output))
		})
	}
}

func TestRuntimeInfo(t *testing.T) {
	info := NewSystemRepository().RuntimeInfo()

	assert.True(t, strings.HasPrefix(info.GoVersion, "go"), "unexpected version %q", info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
	assert.Greater(t, info.NumCPU, 0)
}

func TestFindTool(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "workshoptool")
	script := "#!/bin/sh\necho \"workshoptool version 1.2.3\"\n"
	assert.NoError(t, os.WriteFile(tool, []byte(script), 0o755))
	t.Setenv("PATH", dir)

	repo := NewSystemRepository()

	info, err := repo.FindTool(context.Background(), "workshoptool")
	assert.NoError(t, err)
	assert.Equal(t, "workshoptool", info.Name)
	assert.Equal(t, tool, info.Path)
	assert.Equal(t, "workshoptool version 1.2.3", info.Version)

	_, err = repo.FindTool(context.Background(), "no-such-tool")
	assert.ErrorContains(t, err, "no-such-tool not found on PATH")
}

func TestRunProcess(t *testing.T) {
	repo := NewSystemRepository()

	result, err := repo.RunProcess(context.Background(), "sh", "-c", "echo hello")
	assert.NoError(t, err)
	assert.Equal(t, "hello", result.Output)
	assert.Zero(t, result.ExitCode)
	assert.Greater(t, result.PID, 0)

	result, err = repo.RunProcess(context.Background(), "sh", "-c", "exit 3")
	assert.ErrorContains(t, err, "exited with an error")
	assert.Equal(t, 3, result.ExitCode)

	_, err = repo.RunProcess(context.Background(), "no-such-binary-anywhere")
	assert.ErrorContains(t, err, "starting no-such-binary-anywhere")
}
