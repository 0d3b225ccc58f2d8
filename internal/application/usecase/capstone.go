package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/shared/types"
)

// capstoneScript junta tudo: coleta paralela, modelo de custos, tendência,
// checagem de orçamento e exportação para CSV, JSON e PDF.
func (uc *WorkshopUseCase) capstoneScript() *lessonScript {
	return &lessonScript{
		info: entity.LessonInfo{
			Number:  11,
			Command: "capstone",
			Title:   "Capstone: Cost Report",
			Teaches: "a cost analysis exported to CSV, JSON and PDF",
		},
		needsAWS: true,
		prereqs: func(env *lessonEnv) []prereq {
			return []prereq{uc.prereqAWSCLI(), uc.prereqProfile(env)}
		},
		build: uc.capstoneConcepts,
		takeaways: []string{
			"errgroup turned three API calls into one round trip.",
			"Generated data keeps the lesson deterministic; --live swaps in Cost Explorer.",
			"Forecast against budget is the number managers actually ask for.",
			"One report struct, three encoders: CSV, JSON and PDF never drift apart.",
		},
	}
}

func (uc *WorkshopUseCase) capstoneConcepts(env *lessonEnv) []concept {
	var report entity.CostReport

	return []concept{
		{
			title: "Gather inputs in parallel",
			run: func(ctx context.Context) error {
				scanRegions := uc.regionsFor(ctx, env)
				if len(scanRegions) > 3 {
					scanRegions = scanRegions[:3]
				}

				uc.say("Three independent reads, one errgroup, a single wait:")

				var (
					summary entity.EC2Summary
					buckets []entity.BucketSummary
					regions []entity.RegionInfo
				)

				status := uc.console.Status("Collecting account inventory...")
				g, gctx := errgroup.WithContext(ctx)
				g.Go(func() error {
					var err error
					summary, err = uc.awsRepo.GetEC2Summary(gctx, env.profile, scanRegions)
					return err
				})
				g.Go(func() error {
					var err error
					buckets, err = uc.awsRepo.GetBuckets(gctx, env.profile)
					return err
				})
				g.Go(func() error {
					var err error
					regions, err = uc.awsRepo.GetRegions(gctx, env.profile)
					return err
				})
				err := g.Wait()
				status.Stop()
				if err != nil {
					return err
				}

				table := uc.console.CreateTable()
				table.AddColumn("Input")
				table.AddColumn("Result")
				table.AddRow("EC2 instances", fmt.Sprintf("%d across %v", summary.Total(), scanRegions))
				table.AddRow("S3 buckets", fmt.Sprintf("%d", len(buckets)))
				table.AddRow("Visible regions", fmt.Sprintf("%d", len(regions)))
				uc.console.Print(table.Render())
				return nil
			},
		},
		{
			title: "Build the cost model",
			run: func(ctx context.Context) error {
				months := env.args.Months
				if months <= 0 {
					months = 6
				}

				if env.args.Live {
					status := uc.console.Status("Querying Cost Explorer...")
					var live entity.CostReport
					attempt, err := retryWithBackoff(ctx, 3, 400*time.Millisecond,
						func(ctx context.Context) error {
							var pullErr error
							live, pullErr = uc.awsRepo.GetLiveCostReport(ctx, env.profile, months)
							return pullErr
						},
						func(attempt int, delay time.Duration, err error) {
							status.Update(fmt.Sprintf("Cost Explorer attempt %d failed; retrying in %s...", attempt, delay))
						})
					status.Stop()
					if err != nil {
						uc.console.LogWarning("Cost Explorer not available (%s); falling back to generated data.", err)
						report = uc.simRepo.CostReport(env.profile, env.account.AccountID, months, env.args.Budget)
					} else {
						if attempt > 1 {
							uc.console.LogInfo("Cost Explorer answered on attempt %d.", attempt)
						}
						report = live
					}
				} else {
					report = uc.simRepo.CostReport(env.profile, env.account.AccountID, months, env.args.Budget)
					uc.console.LogInfo("Generated cost data (seed %d). Pass --live to query Cost Explorer instead.", report.Seed)
				}

				change := ""
				if report.PercentChange != nil {
					if *report.PercentChange >= 0 {
						change = pterm.FgRed.Sprintf("up %.2f%% vs last month", *report.PercentChange)
					} else {
						change = pterm.FgGreen.Sprintf("down %.2f%% vs last month", -*report.PercentChange)
					}
				}

				source := "GENERATED"
				if !report.Simulated {
					source = "LIVE (Cost Explorer)"
				}

				uc.console.Panel(fmt.Sprintf("Cost Summary: %s", report.PeriodName), fmt.Sprintf(
					"Month-to-date:      $%.2f\nLast month:         $%.2f\nWeekly run rate:    $%.2f\nForecast month end: $%.2f\n%s\nData source: %s",
					report.MonthToDate, report.LastMonth, report.WeeklyRunRate, report.ForecastMonthEnd, change, source))
				return nil
			},
		},
		{
			title: "Costs by service",
			run: func(ctx context.Context) error {
				total := report.TotalServiceCost()
				if total == 0 {
					uc.console.LogInfo("No service costs to show.")
					return nil
				}

				services := report.ServiceCosts
				if len(services) > 10 {
					services = services[:10]
				}

				table := uc.console.CreateTable()
				table.AddColumn("Service")
				table.AddColumn("Cost")
				table.AddColumn("Share")
				for _, sc := range services {
					table.AddRow(sc.ServiceName,
						fmt.Sprintf("$%.2f", sc.Cost),
						fmt.Sprintf("%.1f%%", sc.Cost/total*100))
				}
				uc.console.Print(table.Render())
				uc.console.LogInfo("Top service is %s at $%.2f.", services[0].ServiceName, services[0].Cost)
				return nil
			},
		},
		{
			title: "Trend over the months",
			run: func(ctx context.Context) error {
				if len(report.MonthlyCosts) == 0 {
					uc.console.LogInfo("No monthly history to plot.")
					return nil
				}

				// Converte para o tipo que o console conhece.
				uiMonthlyCosts := lo.Map(report.MonthlyCosts, func(mc entity.MonthlyCost, _ int) types.MonthlyCost {
					return types.MonthlyCost{Month: mc.Month, Cost: mc.Cost}
				})

				uc.console.DisplayTrendBars(uiMonthlyCosts)
				return nil
			},
		},
		{
			title: "Budget check",
			run: func(ctx context.Context) error {
				if len(report.Budgets) == 0 {
					uc.console.LogInfo("No budget to compare against; pass --budget 200 to enable this check.")
					return nil
				}

				for _, b := range report.Budgets {
					uc.console.Printf("%s: limit $%.2f, actual $%.2f, forecast $%.2f\n",
						b.Name, b.Limit, b.Actual, b.Forecast)

					switch {
					case b.Actual > b.Limit:
						uc.console.LogError("%s", pterm.FgRed.Sprintf("%s is already over its limit.", b.Name))
					case b.Forecast > b.Limit:
						uc.console.LogWarning("Forecast exceeds the limit; spending is on track to blow the budget.")
					default:
						uc.console.LogSuccess("Forecast stays within the budget.")
					}
				}
				return nil
			},
		},
		{
			title: "Export the report",
			run: func(ctx context.Context) error {
				reportName := env.args.ReportName
				if reportName == "" {
					reportName = "cost_report"
				}
				reportTypes := env.args.ReportType
				if len(reportTypes) == 0 {
					reportTypes = []string{"csv", "json", "pdf"}
				}

				uc.say("Same struct, three files. The filename gains a timestamp so runs never overwrite each other.")

				for _, reportType := range reportTypes {
					switch reportType {
					case "csv":
						csvPath, err := uc.exportRepo.ExportCostReportToCSV(report, reportName, env.args.Dir)
						if err != nil {
							uc.console.LogError("Failed to export to CSV: %s", err)
						} else {
							uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
						}
					case "json":
						jsonPath, err := uc.exportRepo.ExportCostReportToJSON(report, reportName, env.args.Dir)
						if err != nil {
							uc.console.LogError("Failed to export to JSON: %s", err)
						} else {
							uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
						}
					case "pdf":
						pdfPath, err := uc.exportRepo.ExportCostReportToPDF(report, reportName, env.args.Dir)
						if err != nil {
							uc.console.LogError("Failed to export to PDF: %s", err)
						} else {
							uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
						}
					default:
						uc.console.LogWarning("Unknown report type '%s' (expected csv, json or pdf).", reportType)
					}
				}
				return nil
			},
		},
	}
}
