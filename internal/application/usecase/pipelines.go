package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
)

// pipelinesScript ensina o trio filtrar/mapear/agrupar sobre o inventário da
// conta e fecha com um pipeline de canais no lugar do pipe de shell.
func (uc *WorkshopUseCase) pipelinesScript() *lessonScript {
	return &lessonScript{
		info: entity.LessonInfo{
			Number:  3,
			Command: "pipelines",
			Title:   "Collections and Pipelines",
			Teaches: "filter, map, group and channel pipelines over inventory",
		},
		needsAWS: true,
		prereqs: func(env *lessonEnv) []prereq {
			return []prereq{uc.prereqAWSCLI(), uc.prereqProfile(env)}
		},
		build: uc.pipelinesConcepts,
		takeaways: []string{
			"A plain for loop is the baseline; lo.Filter and lo.Map trade it for intent.",
			"lo.GroupBy and lo.CountValuesBy turn slices into maps keyed by what you care about.",
			"Channels connect stages like a shell pipe, but typed and backpressured.",
			"Close a channel on the producer side; range on the consumer stops on its own.",
		},
	}
}

func (uc *WorkshopUseCase) pipelinesConcepts(env *lessonEnv) []concept {
	var inventory []entity.ResourceSummary

	return []concept{
		{
			title: "Fetch an inventory slice",
			run: func(ctx context.Context) error {
				regions := uc.regionsFor(ctx, env)
				if len(regions) > 3 {
					regions = regions[:3]
				}

				status := uc.console.Status("Listing EC2 instances...")
				instances, err := uc.awsRepo.GetInstances(ctx, env.profile, regions)
				status.Stop()
				if err != nil {
					return err
				}

				inventory = instances
				if len(inventory) == 0 {
					uc.console.LogWarning("No instances in %v; generating a sample inventory instead.", regions)
					inventory = uc.simRepo.SampleInventory(12)
				}
				uc.console.LogInfo("Working set: %d resources.", len(inventory))

				table := uc.console.CreateTable()
				table.AddColumn("ID")
				table.AddColumn("Name")
				table.AddColumn("Region")
				table.AddColumn("State")
				table.AddColumn("Tags")
				show := inventory
				if len(show) > 6 {
					show = inventory[:6]
				}
				for _, r := range show {
					table.AddRow(r.ID, r.Name, r.Region, r.State, fmt.Sprintf("%d", r.TagCount()))
				}
				uc.console.Print(table.Render())
				return nil
			},
		},
		{
			title: "Filter: keep what matches",
			run: func(ctx context.Context) error {
				uc.say("First the loop every Go program starts with:")
				byHand := make([]entity.ResourceSummary, 0)
				for _, r := range inventory {
					if r.State == "running" {
						byHand = append(byHand, r)
					}
				}
				uc.console.Printf("hand-rolled loop kept %d of %d\n", len(byHand), len(inventory))

				uc.say("lo.Filter says the same thing in one expression:")
				running := lo.Filter(inventory, func(r entity.ResourceSummary, _ int) bool {
					return r.State == "running"
				})
				uc.console.Printf("lo.Filter kept          %d of %d\n", len(running), len(inventory))

				untagged := lo.Filter(inventory, func(r entity.ResourceSummary, _ int) bool {
					return r.TagCount() == 0
				})
				if len(untagged) > 0 {
					uc.console.LogWarning("%d resource(s) carry no tags at all.", len(untagged))
				}
				return nil
			},
		},
		{
			title: "Map and group",
			run: func(ctx context.Context) error {
				uc.say("lo.Map projects each element into a new shape:")
				labels := lo.Map(inventory, func(r entity.ResourceSummary, _ int) string {
					return fmt.Sprintf("%s (%s)", r.ID, r.Name)
				})
				show := labels
				if len(show) > 4 {
					show = labels[:4]
				}
				uc.console.Printf("%s\n", strings.Join(show, "\n"))

				uc.say("lo.GroupBy buckets the slice by any key you compute:")
				byRegion := lo.GroupBy(inventory, func(r entity.ResourceSummary) string {
					return r.Region
				})
				regions := make([]string, 0, len(byRegion))
				for region := range byRegion {
					regions = append(regions, region)
				}
				sort.Strings(regions)

				table := uc.console.CreateTable()
				table.AddColumn("Region")
				table.AddColumn("Resources")
				for _, region := range regions {
					table.AddRow(region, fmt.Sprintf("%d", len(byRegion[region])))
				}
				uc.console.Print(table.Render())

				byState := lo.CountValuesBy(inventory, func(r entity.ResourceSummary) string {
					return r.State
				})
				uc.console.Printf("lo.CountValuesBy by state => %v\n", byState)
				return nil
			},
		},
		{
			title: "Reduce: sum a cost column",
			run: func(ctx context.Context) error {
				report := uc.simRepo.CostReport(env.profile, env.account.AccountID, 3, 0)
				uc.console.LogInfo("Using a generated cost report (seed %d) so every run has numbers.", report.Seed)

				total := lo.SumBy(report.ServiceCosts, func(sc entity.ServiceCost) float64 {
					return sc.Cost
				})
				uc.console.Printf("lo.SumBy over %d services => $%.2f\n", len(report.ServiceCosts), total)
				uc.console.Printf("the entity's own method   => $%.2f\n", report.TotalServiceCost())
				return nil
			},
		},
		{
			title: "A channel pipeline",
			run: func(ctx context.Context) error {
				uc.say("Generator, transform, sink. Each stage is a goroutine; channels are the pipes.")

				source := make(chan entity.ResourceSummary)
				labels := make(chan string)

				go func() {
					defer close(source)
					for _, item := range inventory {
						select {
						case source <- item:
						case <-ctx.Done():
							return
						}
					}
				}()

				go func() {
					defer close(labels)
					for item := range source {
						labels <- fmt.Sprintf("%s/%s is %s", item.Region, item.ID, item.State)
					}
				}()

				count := 0
				for label := range labels {
					count++
					if count <= 5 {
						uc.console.Printf("  -> %s\n", label)
					}
				}
				if count > 5 {
					uc.say("... %d more flowed through without being printed.", count-5)
				}
				uc.console.LogSuccess("Pipeline drained %d items and every stage exited cleanly.", count)
				return nil
			},
		},
	}
}
