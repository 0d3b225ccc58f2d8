package system

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/domain/repository"
)

// SystemRepositoryImpl implementa o SystemRepository usando os/exec.
type SystemRepositoryImpl struct{}

// NewSystemRepository cria uma nova implementação do SystemRepository.
func NewSystemRepository() repository.SystemRepository {
	return &SystemRepositoryImpl{}
}

// FindTool localiza um executável no PATH e captura a primeira linha de
// `<tool> --version`.
func (r *SystemRepositoryImpl) FindTool(ctx context.Context, name string) (entity.ToolInfo, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return entity.ToolInfo{}, fmt.Errorf("%s not found on PATH: %w", name, err)
	}

	info := entity.ToolInfo{Name: name, Path: path}

	versionCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	output, err := exec.CommandContext(versionCtx, path, "--version").CombinedOutput()
	if err != nil {
		log.WithField("tool", name).Debugf("version probe failed: %v", err)
		return info, nil
	}
	info.Version = FirstLine(string(output))

	return info, nil
}

// RuntimeInfo descreve o runtime Go por trás do binário em execução.
func (r *SystemRepositoryImpl) RuntimeInfo() entity.RuntimeInfo {
	info := entity.RuntimeInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		info.Module = bi.Main.Path
	}
	return info
}

// RunProcess dispara um processo filho e espera terminar, capturando a saída
// combinada, o PID e o tempo decorrido.
func (r *SystemRepositoryImpl) RunProcess(ctx context.Context, name string, args ...string) (entity.ProcessResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return entity.ProcessResult{}, fmt.Errorf("starting %s: %w", name, err)
	}

	result := entity.ProcessResult{PID: cmd.Process.Pid}
	err := cmd.Wait()
	result.Elapsed = time.Since(start)
	result.Output = strings.TrimSpace(buf.String())
	result.ExitCode = cmd.ProcessState.ExitCode()

	if err != nil {
		return result, fmt.Errorf("%s exited with an error: %w", name, err)
	}
	return result, nil
}

// FirstLine devolve a primeira linha não vazia de uma saída de comando.
func FirstLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
