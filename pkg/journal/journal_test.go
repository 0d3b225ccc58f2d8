package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var linePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z \[worker-\d+\] step \d+$`)

func TestAppendAndTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")

	j, err := Open(path)
	assert.NoError(t, err)
	defer j.Close()

	assert.NoError(t, j.Append("worker-1", "step 1"))
	assert.NoError(t, j.Append("worker-1", "step 2"))
	assert.NoError(t, j.Append("worker-2", "step 1"))
	assert.Equal(t, 3, j.Entries())
	assert.Equal(t, path, j.Path())

	lines, err := j.Tail(2)
	assert.NoError(t, err)
	if assert.Len(t, lines, 2) {
		assert.Contains(t, lines[0], "[worker-1] step 2")
		assert.Contains(t, lines[1], "[worker-2] step 1")
	}

	all, err := j.Tail(100)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTailEmptyJournal(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "journal.log"))
	assert.NoError(t, err)
	defer j.Close()

	lines, err := j.Tail(5)
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestConcurrentAppendsKeepLinesIntact(t *testing.T) {
	const workers = 8
	const perWorker = 25

	path := filepath.Join(t.TempDir(), "journal.log")
	j, err := Open(path)
	assert.NoError(t, err)
	defer j.Close()

	var wg sync.WaitGroup
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 1; i <= perWorker; i++ {
				name := fmt.Sprintf("worker-%d", worker)
				assert.NoError(t, j.Append(name, fmt.Sprintf("step %d", i)))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, j.Entries())

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, workers*perWorker)
	for _, line := range lines {
		assert.Regexp(t, linePattern, line)
	}
}

func TestOpenAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")

	first, err := Open(path)
	assert.NoError(t, err)
	assert.NoError(t, first.Append("worker-1", "step 1"))
	assert.NoError(t, first.Close())

	second, err := Open(path)
	assert.NoError(t, err)
	defer second.Close()
	assert.NoError(t, second.Append("worker-1", "step 2"))

	// Entries conta só o que este handle escreveu; o arquivo guarda tudo.
	assert.Equal(t, 1, second.Entries())

	lines, err := second.Tail(10)
	assert.NoError(t, err)
	assert.Len(t, lines, 2)
}
