package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl grava o relatório de custos em CSV, JSON e PDF.
type ExportRepositoryImpl struct{}

// NewExportRepository cria o exportador padrão.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportCostReportToCSV grava o relatório do capstone como CSV de uma linha,
// com as listas embutidas em células multi-linha.
func (r *ExportRepositoryImpl) ExportCostReportToCSV(report entity.CostReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"CLI Profile", "AWS Account ID", "Period",
		"Month-to-Date", "Last Month", "Weekly Run Rate", "Forecast (Month End)",
		"Cost By Service", "Budget Status", "Monthly Trend", "Data Source",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	servicesData := ""
	for _, sc := range report.ServiceCosts {
		servicesData += fmt.Sprintf("%s: $%.2f\n", sc.ServiceName, sc.Cost)
	}

	trendData := ""
	for _, mc := range report.MonthlyCosts {
		trendData += fmt.Sprintf("%s: $%.2f\n", mc.Month, mc.Cost)
	}

	record := []string{
		report.Profile,
		report.AccountID,
		report.PeriodName,
		fmt.Sprintf("$%.2f", report.MonthToDate),
		fmt.Sprintf("$%.2f", report.LastMonth),
		fmt.Sprintf("$%.2f", report.WeeklyRunRate),
		fmt.Sprintf("$%.2f", report.ForecastMonthEnd),
		strings.TrimSpace(servicesData),
		cleanRichTags(strings.Join(formatBudgetLines(report.Budgets), "\n")),
		strings.TrimSpace(trendData),
		dataSourceLabel(report),
	}
	if err := writer.Write(record); err != nil {
		return "", fmt.Errorf("error writing CSV record: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportCostReportToJSON grava o relatório completo como JSON indentado.
func (r *ExportRepositoryImpl) ExportCostReportToJSON(report entity.CostReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

type rgb struct{ r, g, b int }

// Paleta do PDF: cabeçalho escuro, corpo em cinza, réguas claras.
var (
	pdfHeaderBG   = rgb{33, 47, 61}
	pdfHeaderText = rgb{255, 255, 255}
	pdfTitleText  = rgb{0, 0, 0}
	pdfBodyText   = rgb{50, 50, 50}
	pdfRule       = rgb{190, 190, 190}
)

// ExportCostReportToPDF gera a versão apresentável do relatório em A4.
func (r *ExportRepositoryImpl) ExportCostReportToPDF(report entity.CostReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	setText := func(c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }

	drawSection := func(title string, content string) {
		if content == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		setText(pdfTitleText)
		pdf.Cell(0, 8, title)
		pdf.Ln(7)

		pdf.SetDrawColor(pdfRule.r, pdfRule.g, pdfRule.b)
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		setText(pdfBodyText)
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	pdf.SetFillColor(pdfHeaderBG.r, pdfHeaderBG.g, pdfHeaderBG.b)
	setText(pdfHeaderText)
	pdf.SetFont("Arial", "B", 14)
	profileName := report.Profile
	if len(profileName) > 80 {
		profileName = profileName[:77] + "..."
	}
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  Cost Report: %s", profileName)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	setText(pdfBodyText)
	subtitle := fmt.Sprintf("  Account ID: %s | %s | %s", report.AccountID, report.PeriodName, dataSourceLabel(report))
	pdf.CellFormat(0, 8, tr(subtitle), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	setText(pdfTitleText)
	pdf.Cell(0, 8, "Cost Summary")
	pdf.Ln(7)
	pdf.SetDrawColor(pdfRule.r, pdfRule.g, pdfRule.b)
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
	pdf.Ln(4)

	costTableWidth := 95.0
	pdf.SetFont("Arial", "B", 10)
	setText(pdfBodyText)
	pdf.CellFormat(costTableWidth, 7, "Last month", "B", 0, "L", false, 0, "")
	pdf.CellFormat(costTableWidth, 7, "Month-to-date", "B", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(costTableWidth, 12, tr(fmt.Sprintf("$%.2f", report.LastMonth)), "", 0, "L", false, 0, "")

	changeText := ""
	originalTextColorR, originalTextColorG, originalTextColorB := pdf.GetTextColor()
	if report.PercentChange != nil {
		val := *report.PercentChange
		if val > 0.01 {
			pdf.SetTextColor(192, 0, 0)
			changeText = fmt.Sprintf("  (▲ +%.2f%%)", val)
		} else if val < -0.01 {
			pdf.SetTextColor(0, 128, 0)
			changeText = fmt.Sprintf("  (▼ %.2f%%)", val)
		} else {
			changeText = "  (0.00%)"
		}
	}

	pdf.SetFont("Arial", "B", 16)
	valueStr := fmt.Sprintf("$%.2f", report.MonthToDate)
	pdf.Cell(pdf.GetStringWidth(valueStr), 12, tr(valueStr))

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(costTableWidth-pdf.GetStringWidth(valueStr), 12, tr(changeText), "", 1, "L", false, 0, "")

	pdf.SetTextColor(originalTextColorR, originalTextColorG, originalTextColorB)
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(costTableWidth, 7, tr(fmt.Sprintf("Weekly run rate: $%.2f", report.WeeklyRunRate)), "", 0, "L", false, 0, "")
	pdf.CellFormat(costTableWidth, 7, tr(fmt.Sprintf("Forecast (month end): $%.2f", report.ForecastMonthEnd)), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	serviceCostsStr := ""
	for _, sc := range report.ServiceCosts {
		serviceCostsStr += fmt.Sprintf("%s: $%.2f\n", sc.ServiceName, sc.Cost)
	}
	drawSection("Cost By Service", strings.TrimSpace(serviceCostsStr))

	drawSection("Budget Status", strings.Join(formatBudgetLines(report.Budgets), "\n"))

	trendStr := ""
	for _, mc := range report.MonthlyCosts {
		trendStr += fmt.Sprintf("%s: $%.2f\n", mc.Month, mc.Cost)
	}
	drawSection("Monthly Trend", strings.TrimSpace(trendStr))

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by AWS Go Workshop | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, tr(dataSourceLabel(report)), "", 0, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// formatBudgetLines resume cada budget em uma linha legível.
func formatBudgetLines(budgets []entity.BudgetInfo) []string {
	lines := make([]string, 0, len(budgets))
	for _, b := range budgets {
		line := fmt.Sprintf("%s: limit $%.2f, actual $%.2f", b.Name, b.Limit, b.Actual)
		if b.Forecast > 0 {
			line += fmt.Sprintf(", forecast $%.2f", b.Forecast)
		}
		if b.Limit > 0 && b.Forecast > b.Limit {
			line += " (FORECAST OVER LIMIT)"
		}
		lines = append(lines, line)
	}
	return lines
}

// dataSourceLabel marca de onde vieram os números do relatório.
func dataSourceLabel(report entity.CostReport) string {
	if report.Simulated {
		return fmt.Sprintf("SIMULATED DATA (seed %d)", report.Seed)
	}
	return "LIVE DATA (Cost Explorer)"
}

// generateFilename monta "<base>_<timestamp>.<ext>" em dir, criando o diretório se preciso.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, stamp, ext)), nil
}

// pterm deixa rich tags e escapes ANSI no texto; em arquivo isso vira lixo.
var (
	richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
	ansiRegex    = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)
)

func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	return ansiRegex.ReplaceAllString(text, "")
}
