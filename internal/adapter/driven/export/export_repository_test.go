package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func sampleReport() entity.CostReport {
	change := 12.5
	return entity.CostReport{
		Profile:          "training",
		AccountID:        "111122223333",
		GeneratedAt:      time.Date(2025, 4, 30, 12, 0, 0, 0, time.UTC),
		PeriodName:       "April 2025",
		MonthToDate:      180.25,
		LastMonth:        160.22,
		WeeklyRunRate:    41.63,
		ForecastMonthEnd: 190.4,
		PercentChange:    &change,
		ServiceCosts: []entity.ServiceCost{
			{ServiceName: "Amazon EC2", Cost: 120.5},
			{ServiceName: "Amazon S3", Cost: 59.75},
		},
		MonthlyCosts: []entity.MonthlyCost{
			{Month: "Mar 2025", Cost: 160.22},
			{Month: "Apr 2025", Cost: 180.25},
		},
		Budgets: []entity.BudgetInfo{
			{Name: "workshop-monthly", Limit: 150, Actual: 180.25, Forecast: 190.4},
		},
		Simulated: true,
		Seed:      7,
	}
}

func TestExportCostReportToCSV(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	path, err := repo.ExportCostReportToCSV(sampleReport(), "cost_report", dir)
	assert.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Regexp(t, `cost_report_\d{8}_\d{6}\.csv$`, path)

	file, err := os.Open(path)
	assert.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	assert.NoError(t, err)
	if !assert.Len(t, records, 2) {
		return
	}

	assert.Equal(t, "CLI Profile", records[0][0])
	assert.Equal(t, "Data Source", records[0][10])

	row := records[1]
	assert.Equal(t, "training", row[0])
	assert.Equal(t, "111122223333", row[1])
	assert.Equal(t, "April 2025", row[2])
	assert.Equal(t, "$180.25", row[3])
	assert.Equal(t, "Amazon EC2: $120.50\nAmazon S3: $59.75", row[7])
	assert.Equal(t, "workshop-monthly: limit $150.00, actual $180.25, forecast $190.40 (FORECAST OVER LIMIT)", row[8])
	assert.Equal(t, "Mar 2025: $160.22\nApr 2025: $180.25", row[9])
	assert.Equal(t, "SIMULATED DATA (seed 7)", row[10])
}

func TestExportCostReportToJSON(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()
	report := sampleReport()

	path, err := repo.ExportCostReportToJSON(report, "cost_report", dir)
	assert.NoError(t, err)
	assert.Regexp(t, `cost_report_\d{8}_\d{6}\.json$`, path)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	var decoded entity.CostReport
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.Profile, decoded.Profile)
	assert.Equal(t, report.MonthToDate, decoded.MonthToDate)
	assert.Equal(t, report.ServiceCosts, decoded.ServiceCosts)
	assert.Equal(t, report.MonthlyCosts, decoded.MonthlyCosts)
	assert.Equal(t, report.Budgets, decoded.Budgets)
	assert.True(t, decoded.Simulated)
	if assert.NotNil(t, decoded.PercentChange) {
		assert.Equal(t, *report.PercentChange, *decoded.PercentChange)
	}
}

func TestExportCostReportToPDF(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	path, err := repo.ExportCostReportToPDF(sampleReport(), "cost_report", dir)
	assert.NoError(t, err)
	assert.Regexp(t, `cost_report_\d{8}_\d{6}\.pdf$`, path)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.True(t, len(data) > 4 && string(data[:5]) == "%PDF-", "expected a PDF header")
}

func TestGenerateFilename(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "reports", "2025")

	path, err := generateFilename("cost_report", nested, "csv")
	assert.NoError(t, err)
	assert.Regexp(t, `cost_report_\d{8}_\d{6}\.csv$`, path)

	// O diretório de saída é criado quando não existe.
	info, err := os.Stat(nested)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCleanRichTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "pterm style tags",
			in:   "[red]over budget[/red]",
			want: "over budget",
		},
		{
			name: "hex color tags",
			in:   "[#ff0000]alert[/#ff0000]",
			want: "alert",
		},
		{
			name: "ansi escape sequences",
			in:   "\x1b[31mover\x1b[0m budget",
			want: "over budget",
		},
		{
			name: "plain text untouched",
			in:   "limit $150.00",
			want: "limit $150.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanRichTags(tt.in))
		})
	}
}

func TestFormatBudgetLines(t *testing.T) {
	tests := []struct {
		name    string
		budgets []entity.BudgetInfo
		want    []string
	}{
		{
			name:    "no budgets",
			budgets: nil,
			want:    []string{},
		},
		{
			name:    "budget without forecast",
			budgets: []entity.BudgetInfo{{Name: "team", Limit: 100, Actual: 40}},
			want:    []string{"team: limit $100.00, actual $40.00"},
		},
		{
			name:    "forecast under the limit",
			budgets: []entity.BudgetInfo{{Name: "team", Limit: 100, Actual: 40, Forecast: 80}},
			want:    []string{"team: limit $100.00, actual $40.00, forecast $80.00"},
		},
		{
			name:    "forecast over the limit",
			budgets: []entity.BudgetInfo{{Name: "team", Limit: 100, Actual: 90, Forecast: 120}},
			want:    []string{"team: limit $100.00, actual $90.00, forecast $120.00 (FORECAST OVER LIMIT)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatBudgetLines(tt.budgets))
		})
	}
}

func TestDataSourceLabel(t *testing.T) {
	simulated := entity.CostReport{Simulated: true, Seed: 42}
	assert.Equal(t, "SIMULATED DATA (seed 42)", dataSourceLabel(simulated))

	live := entity.CostReport{}
	assert.Equal(t, "LIVE DATA (Cost Explorer)", dataSourceLabel(live))
}
