package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/domain/repository"
)

// GitRepositoryImpl implementa o GitRepository por cima do binário git.
type GitRepositoryImpl struct{}

// NewGitRepository cria uma nova implementação do GitRepository.
func NewGitRepository() repository.GitRepository {
	return &GitRepositoryImpl{}
}

func (r *GitRepositoryImpl) runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.WithField("args", strings.Join(args, " ")).Debug("running git")
	output, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("git %s: %s", args[0], msg)
	}
	return output, nil
}

// Version devolve a versão do git instalado, ex.: "2.39.2".
func (r *GitRepositoryImpl) Version(ctx context.Context) (string, error) {
	output, err := r.runGit(ctx, "", "--version")
	if err != nil {
		return "", err
	}
	return ParseVersion(output), nil
}

// IsRepository informa se o diretório está dentro de um working tree git.
func (r *GitRepositoryImpl) IsRepository(ctx context.Context, dir string) bool {
	output, err := r.runGit(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(output)) == "true"
}

// InitScratch inicializa um repositório descartável com identidade local,
// para que os commits da lição funcionem sem configuração global.
func (r *GitRepositoryImpl) InitScratch(ctx context.Context, dir string) error {
	steps := [][]string{
		{"init"},
		{"config", "user.name", "AWS Go Workshop"},
		{"config", "user.email", "workshop@localhost"},
	}
	for _, args := range steps {
		if _, err := r.runGit(ctx, dir, args...); err != nil {
			return err
		}
	}
	return nil
}

// Status lê `git status --porcelain=v1 --branch` e devolve a contagem de
// arquivos staged, modificados e não rastreados.
func (r *GitRepositoryImpl) Status(ctx context.Context, dir string) (entity.GitStatus, error) {
	output, err := r.runGit(ctx, dir, "status", "--porcelain=v1", "--branch")
	if err != nil {
		return entity.GitStatus{}, err
	}
	return ParseStatus(output)
}

// Snapshot adiciona tudo e faz um commit com a mensagem dada.
func (r *GitRepositoryImpl) Snapshot(ctx context.Context, dir string, message string) error {
	if _, err := r.runGit(ctx, dir, "add", "-A"); err != nil {
		return err
	}
	if _, err := r.runGit(ctx, dir, "commit", "-m", message); err != nil {
		return err
	}
	return nil
}

// RecentCommits devolve as últimas entradas do `git log`.
func (r *GitRepositoryImpl) RecentCommits(ctx context.Context, dir string, limit int) ([]entity.GitCommit, error) {
	output, err := r.runGit(ctx, dir, "log", "-n", strconv.Itoa(limit), "--pretty=format:%H%x1f%an%x1f%at%x1f%s")
	if err != nil {
		return nil, err
	}
	return ParseCommits(output)
}

// Remotes devolve o mapa nome -> URL de fetch dos remotes configurados.
func (r *GitRepositoryImpl) Remotes(ctx context.Context, dir string) (map[string]string, error) {
	output, err := r.runGit(ctx, dir, "remote", "-v")
	if err != nil {
		return nil, err
	}
	return ParseRemotes(output), nil
}

// ParseVersion extrai o número de versão de `git --version`.
func ParseVersion(output []byte) string {
	version := strings.TrimSpace(string(output))
	version = strings.TrimPrefix(version, "git version ")
	if fields := strings.Fields(version); len(fields) > 0 {
		return fields[0]
	}
	return version
}

// ParseStatus interpreta a saída porcelain v1 com cabeçalho de branch.
func ParseStatus(output []byte) (entity.GitStatus, error) {
	var status entity.GitStatus
	sawHeader := false

	for _, line := range strings.Split(string(output), "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "## ") {
			sawHeader = true
			parseBranchHeader(line[3:], &status)
			continue
		}
		if len(line) < 2 {
			continue
		}

		x, y := line[0], line[1]
		if x == '?' && y == '?' {
			status.Untracked++
			continue
		}
		if x != ' ' {
			status.Staged++
		}
		if y != ' ' {
			status.Modified++
		}
	}

	if !sawHeader {
		return entity.GitStatus{}, fmt.Errorf("no branch header in git status output")
	}
	return status, nil
}

func parseBranchHeader(header string, status *entity.GitStatus) {
	head := header
	if idx := strings.Index(head, " ["); idx >= 0 {
		if end := strings.LastIndex(head, "]"); end > idx {
			for _, part := range strings.Split(head[idx+2:end], ", ") {
				if n, ok := strings.CutPrefix(part, "ahead "); ok {
					status.Ahead, _ = strconv.Atoi(n)
				}
				if n, ok := strings.CutPrefix(part, "behind "); ok {
					status.Behind, _ = strconv.Atoi(n)
				}
			}
		}
		head = head[:idx]
	}

	// Repositório recém-criado, antes do primeiro commit.
	head = strings.TrimPrefix(head, "No commits yet on ")

	if branch, upstream, found := strings.Cut(head, "..."); found {
		status.Branch, status.Upstream = branch, upstream
	} else {
		status.Branch = head
	}
}

// ParseCommits interpreta linhas de `git log` no formato
// %H<US>%an<US>%at<US>%s, uma por commit.
func ParseCommits(output []byte) ([]entity.GitCommit, error) {
	var commits []entity.GitCommit
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\x1f")
		if len(fields) != 4 {
			return nil, fmt.Errorf("unexpected git log line: %q", line)
		}
		ts, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing commit timestamp: %w", err)
		}
		commits = append(commits, entity.GitCommit{
			Hash:    fields[0],
			Author:  fields[1],
			When:    time.Unix(ts, 0),
			Subject: fields[3],
		})
	}
	return commits, nil
}

// ParseRemotes interpreta a saída de `git remote -v`, uma entrada por remote.
func ParseRemotes(output []byte) map[string]string {
	remotes := make(map[string]string)
	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 3 && fields[2] == "(fetch)" {
			remotes[fields[0]] = fields[1]
		}
	}
	return remotes
}
