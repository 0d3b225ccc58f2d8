package repository

import (
	"github.com/diillson/aws-workshop-go/internal/domain/entity"
)

// ExportRepository grava o relatório de custos nos formatos suportados.
type ExportRepository interface {
	ExportCostReportToCSV(report entity.CostReport, filename string, outputDir string) (string, error)
	ExportCostReportToJSON(report entity.CostReport, filename string, outputDir string) (string, error)
	ExportCostReportToPDF(report entity.CostReport, filename string, outputDir string) (string, error)
}
