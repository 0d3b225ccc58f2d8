package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/pterm/pterm"

	"github.com/diillson/aws-workshop-go/internal/shared/types"
)

// Console fala com o terminal via pterm e implementa o ConsoleInterface que
// as lições recebem.
type Console struct {
	nonInteractive bool
}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// SetNonInteractive desliga as pausas interativas entre conceitos.
func (c *Console) SetNonInteractive(v bool) {
	c.nonInteractive = v
}

// IsNonInteractive informa se as pausas estão desligadas.
func (c *Console) IsNonInteractive() bool {
	return c.nonInteractive
}

func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo imprime uma linha com o prefixo INFO do pterm.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status inicia um spinner com a mensagem dada. O chamador é responsável
// por Stop.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

type progressHandle struct {
	bar *pterm.ProgressbarPrinter
}

// Progress cria uma barra de progresso com um passo por item.
func (c *Console) Progress(items []string) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.WithTotal(len(items)).Start()
	return &progressHandle{bar: bar}
}

// ProgressWithTotal cria uma barra de progresso para um total conhecido de
// passos; a barra fica na tela depois de concluída.
func (c *Console) ProgressWithTotal(total int) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Working").
		WithShowElapsedTime(true).
		WithShowCount(true).
		WithRemoveWhenDone(false).
		Start()
	return &progressHandle{bar: bar}
}

func (h *progressHandle) Increment() {
	if h.bar != nil {
		h.bar.Increment()
	}
}

func (h *progressHandle) Stop() {
	if h.bar != nil {
		h.bar.Stop()
	}
}

// Headline imprime o cabeçalho de abertura de uma lição.
func (c *Console) Headline(text string) {
	pterm.DefaultHeader.
		WithFullWidth().
		WithBackgroundStyle(pterm.NewStyle(pterm.BgBlue)).
		WithTextStyle(pterm.NewStyle(pterm.FgLightWhite)).
		Println(text)
}

// Section imprime o título numerado de um conceito.
func (c *Console) Section(number, total int, title string) {
	pterm.DefaultSection.
		WithLevel(2).
		Printfln("Concept %d/%d: %s", number, total, title)
}

// Panel imprime um bloco de texto dentro de uma caixa com título.
func (c *Console) Panel(title, body string) {
	pterm.DefaultBox.
		WithTitle(title).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Println(body)
}

// Bullets imprime uma lista de itens com marcadores.
func (c *Console) Bullets(items []string) {
	list := make([]pterm.BulletListItem, 0, len(items))
	for _, item := range items {
		list = append(list, pterm.BulletListItem{Level: 0, Text: item})
	}
	_ = pterm.DefaultBulletList.WithItems(list).Render()
}

// Pause espera o apresentador decidir como seguir. Em modo não interativo
// (ou sem terminal) segue direto para o próximo conceito.
func (c *Console) Pause(label string) types.ContinueChoice {
	if c.nonInteractive {
		return types.ContinueNext
	}

	result, err := pterm.DefaultInteractiveContinue.
		WithOptions([]string{"next", "skip", "quit"}).
		Show(label)
	if err != nil {
		return types.ContinueNext
	}

	switch result {
	case "skip":
		return types.ContinueSkip
	case "quit":
		return types.ContinueQuit
	default:
		return types.ContinueNext
	}
}

// Table acumula cabeçalho e linhas e só renderiza no final, quando Render
// entrega tudo ao pterm de uma vez.
type Table struct {
	header []string
	rows   [][]string
}

// CreateTable cria uma tabela vazia.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{}
}

// AddColumn registra o título de uma coluna. As opções extras existem por
// compatibilidade com a interface e não afetam a renderização.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.header = append(t.header, name)
}

// AddRow aceita células de qualquer tipo e as converte com fmt.Sprint.
func (t *Table) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, row)
}

// Render devolve a tabela pronta para o terminal.
func (t *Table) Render() string {
	data := make(pterm.TableData, 0, len(t.rows)+1)
	data = append(data, t.header)
	data = append(data, t.rows...)

	out, _ := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	return out
}

// trendChange classifica a variação mês a mês: devolve o rótulo da célula
// "MoM Change" e a cor aplicada à barra daquele mês.
func trendChange(prev *float64, cost float64) (string, pterm.Color) {
	if prev == nil {
		return "", pterm.FgBlue
	}

	switch {
	case *prev < 0.01 && cost < 0.01:
		return "0%", pterm.FgYellow
	case *prev < 0.01:
		return "N/A", pterm.FgRed
	}

	pct := (cost - *prev) / *prev * 100
	switch {
	case math.Abs(pct) < 0.01:
		return "0%", pterm.FgYellow
	case pct > 999:
		return ">+999%", pterm.FgRed
	case pct < -999:
		return ">-999%", pterm.FgGreen
	case pct > 0:
		return fmt.Sprintf("+%.2f%%", pct), pterm.FgRed
	default:
		return fmt.Sprintf("%.2f%%", pct), pterm.FgGreen
	}
}

// DisplayTrendBars desenha o histórico mensal como barras proporcionais ao
// maior valor do período, com a variação mês a mês ao lado.
func (c *Console) DisplayTrendBars(monthlyCosts []types.MonthlyCost) {
	var maxCost float64
	for _, mc := range monthlyCosts {
		if mc.Cost > maxCost {
			maxCost = mc.Cost
		}
	}
	if maxCost == 0 {
		pterm.Warning.Println("All costs are $0.00 for this period")
		return
	}

	data := pterm.TableData{{"Month", "Cost", "", "MoM Change"}}
	var prev *float64
	for _, mc := range monthlyCosts {
		bar := strings.Repeat("█", int(mc.Cost/maxCost*40))

		label, tone := trendChange(prev, mc.Cost)
		change := ""
		if label != "" {
			change = tone.Sprint(label)
		}
		data = append(data, []string{
			mc.Month,
			fmt.Sprintf("$%.2f", mc.Cost),
			tone.Sprint(bar),
			change,
		})

		cost := mc.Cost
		prev = &cost
	}

	table, _ := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	panel := pterm.DefaultBox.
		WithTitle("AWS Cost Trend Analysis").
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(table)
	fmt.Println("\n" + panel)
}
