package types

// ConsoleInterface é a porta de saída para o terminal; toda narração das
// lições passa por aqui, o que permite capturá-la em teste.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle
	Progress(items []string) ProgressHandle
	ProgressWithTotal(total int) ProgressHandle

	CreateTable() TableInterface
	DisplayTrendBars(monthlyCosts []MonthlyCost)

	Headline(text string)
	Section(number, total int, title string)
	Panel(title, body string)
	Bullets(items []string)

	Pause(label string) ContinueChoice
	SetNonInteractive(v bool)
	IsNonInteractive() bool
}

// StatusHandle atualiza um spinner de status em andamento.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// ProgressHandle avança uma barra de progresso em andamento.
type ProgressHandle interface {
	Increment()
	Stop()
}

// TableInterface monta e renderiza tabelas no terminal.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// MonthlyCost é um ponto da série mensal dos gráficos de tendência.
type MonthlyCost struct {
	Month string  `json:"month"`
	Cost  float64 `json:"cost"`
}

// ContinueChoice is what the presenter picked at a pause between concepts.
type ContinueChoice string

const (
	// ContinueNext advances to the next concept.
	ContinueNext ContinueChoice = "next"
	// ContinueSkip jumps over the upcoming concept.
	ContinueSkip ContinueChoice = "skip"
	// ContinueQuit ends the lesson early.
	ContinueQuit ContinueChoice = "quit"
)
