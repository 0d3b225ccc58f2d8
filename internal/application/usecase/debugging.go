package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/pkg/journal"
	"github.com/diillson/aws-workshop-go/pkg/logging"
	"github.com/diillson/aws-workshop-go/pkg/version"
)

// debuggingScript cobre o dia a dia de depuração: níveis de log, campos
// estruturados, verbos de inspeção, build info e a auditoria de retenção.
func (uc *WorkshopUseCase) debuggingScript() *lessonScript {
	return &lessonScript{
		info: entity.LessonInfo{
			Number:  8,
			Command: "debugging",
			Title:   "Logging and Debugging",
			Teaches: "levels, structured fields, format verbs and retention audits",
		},
		needsAWS: true,
		prereqs: func(env *lessonEnv) []prereq {
			return []prereq{uc.prereqAWSCLI(), uc.prereqProfile(env)}
		},
		build: uc.debuggingConcepts,
		takeaways: []string{
			"Log fields, not sentences; key=value survives grep and ingestion.",
			"Debug output is free when the level filter eats it; leave the calls in.",
			"%+v for humans, %#v for the exact Go syntax of a value.",
			"Log groups without retention keep charging forever; audit them.",
		},
	}
}

func (uc *WorkshopUseCase) debuggingConcepts(env *lessonEnv) []concept {
	return []concept{
		{
			title: "Levels and structured fields",
			run: func(ctx context.Context) error {
				uc.say("The workshop logs with apex/log. Fields ride along as key=value pairs:")

				requestID := uuid.NewString()[:8]
				logger := log.WithField("request_id", requestID).WithField("profile", env.profile)

				logger.Debug("resolving credentials")
				logger.Info("lesson checkpoint reached")
				logger.Warn("simulated quota at 80%")
				logger.Error("simulated call failed")

				uc.say("Only warnings and errors showed? The default level is error unless WORKSHOP_LOG or --verbose changes it.")
				uc.say("Dropping the level to debug replays the hidden lines:")

				logging.SetVerbose(true)
				logger.Debug("resolving credentials")
				logger.Info("lesson checkpoint reached")

				// Restaura o nível que o comando raiz configurou.
				logging.SetLevelFromName(os.Getenv("WORKSHOP_LOG"))
				logging.SetVerbose(env.args.Verbose)
				return nil
			},
		},
		{
			title: "Inspecting values with fmt",
			run: func(ctx context.Context) error {
				report := uc.simRepo.CostReport(env.profile, env.account.AccountID, 2, 100)
				budget := report.Budgets[0]

				uc.say("When a debugger is overkill, the fmt verbs carry you far:")
				uc.console.Printf("%%v  => %v\n", budget)
				uc.console.Printf("%%+v => %+v\n", budget)
				uc.console.Printf("%%#v => %#v\n", budget)
				uc.console.Printf("%%T  => %T\n", budget)

				uc.say("On a slice, %%+v expands every element:")
				uc.console.Printf("%+v\n", report.MonthlyCosts)
				return nil
			},
		},
		{
			title: "What build is this?",
			run: func(ctx context.Context) error {
				uc.say("Version, commit and build time are stamped by ldflags or VCS build info:")
				uc.console.Printf("version.FormatVersion() => %s\n", version.FormatVersion())

				info := uc.systemRepo.RuntimeInfo()
				uc.console.Printf("compiled with           => %s on %s/%s\n", info.GoVersion, info.OS, info.Arch)
				if info.Module != "" {
					uc.console.Printf("main module             => %s\n", info.Module)
				}

				uc.say("First question of every bug report: which build are you running?")
				return nil
			},
		},
		{
			title: "CloudWatch retention audit",
			run: func(ctx context.Context) error {
				regions := uc.regionsFor(ctx, env)
				if len(regions) > 2 {
					regions = regions[:2]
				}

				status := uc.console.Status("Listing CloudWatch log groups...")
				groups, err := uc.awsRepo.GetCloudWatchLogGroups(ctx, env.profile, regions)
				status.Stop()
				if err != nil {
					return err
				}

				if len(groups) == 0 {
					uc.console.LogInfo("No log groups in %v.", regions)
					return nil
				}

				sort.Slice(groups, func(i, j int) bool {
					return groups[i].StoredBytes > groups[j].StoredBytes
				})
				if len(groups) > 5 {
					groups = groups[:5]
				}

				table := uc.console.CreateTable()
				table.AddColumn("Log group")
				table.AddColumn("Region")
				table.AddColumn("Retention")
				table.AddColumn("Stored")
				neverExpire := 0
				for _, g := range groups {
					retention := fmt.Sprintf("%d days", g.RetentionDays)
					if g.NeverExpires() {
						retention = pterm.FgRed.Sprint("Never expire")
						neverExpire++
					}
					table.AddRow(g.GroupName, g.Region, retention, humanize.IBytes(uint64(g.StoredBytes)))
				}
				uc.console.Print(table.Render())

				if neverExpire > 0 {
					uc.console.LogWarning("%d of the top groups never expire their data.", neverExpire)
				}
				return nil
			},
		},
		{
			title: "A shared trace file",
			run: func(ctx context.Context) error {
				dir, err := os.MkdirTemp("", "workshop-trace")
				if err != nil {
					return err
				}
				defer os.RemoveAll(dir)

				uc.say("Sometimes the honest tool is a trace file. Ours is mutex-guarded for lesson 10:")

				j, err := journal.Open(filepath.Join(dir, "trace.log"))
				if err != nil {
					return err
				}
				defer j.Close()

				for _, step := range []string{"lesson started", "credentials resolved", "log groups listed"} {
					if err := j.Append("debugging", step); err != nil {
						return err
					}
				}

				lines, err := j.Tail(3)
				if err != nil {
					return err
				}
				uc.console.LogInfo("Last %d entries of %s:", len(lines), j.Path())
				for _, line := range lines {
					uc.console.Printf("  %s\n", line)
				}
				return nil
			},
		},
	}
}
