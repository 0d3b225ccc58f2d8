package journal

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Journal é o diário de bordo compartilhado das lições de concorrência: um
// arquivo append-only protegido por mutex, para que escritores concorrentes
// nunca entrelacem linhas parciais.
type Journal struct {
	mu      sync.Mutex
	file    *os.File
	path    string
	entries int
}

// Open cria (ou abre para append) o arquivo do journal.
func Open(path string) (*Journal, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	return &Journal{file: file, path: path}, nil
}

// Append grava uma entrada como uma linha única: timestamp, autor e mensagem.
func (j *Journal) Append(worker, message string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	line := fmt.Sprintf("%s [%s] %s\n",
		time.Now().UTC().Format("2006-01-02T15:04:05.000Z"), worker, message)
	if _, err := j.file.WriteString(line); err != nil {
		return fmt.Errorf("appending to journal: %w", err)
	}
	j.entries++
	return nil
}

// Path returns the journal file location.
func (j *Journal) Path() string {
	return j.path
}

// Entries returns how many entries this process appended so far.
func (j *Journal) Entries() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.entries
}

// Tail devolve as últimas n linhas do arquivo.
func (j *Journal) Tail(n int) ([]string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := os.ReadFile(j.path)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", j.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

// Close fecha o arquivo do journal.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
