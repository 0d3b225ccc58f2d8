package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// WORKSHOP_LOG env variable.
func InitLogger() {
	log.SetHandler(&CustomHandler{Writer: os.Stdout})
	SetLevelFromName(os.Getenv("WORKSHOP_LOG"))
}

// SetVerbose rebaixa o nível para debug quando --verbose é usado.
func SetVerbose(v bool) {
	if v {
		log.SetLevel(log.DebugLevel)
	}
}

// SetLevelFromName muda o nível de log em tempo de execução. Nomes
// desconhecidos (ou vazio) caem para "error".
func SetLevelFromName(name string) {
	level, err := log.ParseLevel(strings.ToLower(name))
	if err != nil {
		level = log.ErrorLevel
	}
	log.SetLevel(level)
}

// CustomHandler formats log messages and writes them to a single writer.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface.
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	out := h.Writer
	if out == nil {
		out = os.Stdout
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s", timestamp, level, e.Message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}

	fmt.Fprintln(out, b.String())
	return nil
}
