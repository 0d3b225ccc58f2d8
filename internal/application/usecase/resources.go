package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
)

// resourcesScript percorre o inventário da conta apenas com chamadas de
// leitura e encena por cima duas escritas simuladas, passo a passo.
func (uc *WorkshopUseCase) resourcesScript() *lessonScript {
	return &lessonScript{
		info: entity.LessonInfo{
			Number:  4,
			Command: "resources",
			Title:   "Reading Cloud Resources",
			Teaches: "read-only inventory calls and narrated simulated writes",
		},
		needsAWS: true,
		prereqs: func(env *lessonEnv) []prereq {
			return []prereq{uc.prereqAWSCLI(), uc.prereqProfile(env)}
		},
		build: uc.resourcesConcepts,
		takeaways: []string{
			"Describe and List calls are free to run against any account; writes never are.",
			"Idle volumes, unattached EIPs and stopped instances are the first cost leaks to look for.",
			"Untagged resources are invisible to cost allocation; count them regularly.",
			"When a demo would mutate the account, narrate the plan instead of executing it.",
		},
	}
}

func (uc *WorkshopUseCase) resourcesConcepts(env *lessonEnv) []concept {
	var stoppedExample string

	return []concept{
		{
			title: "EC2 fleet at a glance",
			run: func(ctx context.Context) error {
				regions := uc.regionsFor(ctx, env)
				if len(regions) > 3 {
					regions = regions[:3]
					uc.console.LogInfo("Scanning %v; pass --region to widen the sweep.", regions)
				}

				status := uc.console.Status("Describing EC2 instances...")
				summary, err := uc.awsRepo.GetEC2Summary(ctx, env.profile, regions)
				status.Stop()
				if err != nil {
					return err
				}

				states := make([]string, 0, len(summary))
				for state := range summary {
					states = append(states, state)
				}
				sort.Strings(states)

				table := uc.console.CreateTable()
				table.AddColumn("State")
				table.AddColumn("Instances")
				for _, state := range states {
					count := fmt.Sprintf("%d", summary[state])
					switch {
					case state == "running" && summary[state] > 0:
						count = pterm.FgGreen.Sprint(count)
					case state == "stopped" && summary[state] > 0:
						count = pterm.FgRed.Sprint(count)
					}
					table.AddRow(state, count)
				}
				uc.console.Print(table.Render())
				uc.console.LogInfo("%d instance(s) total across %d region(s).", summary.Total(), len(regions))
				return nil
			},
		},
		{
			title: "S3 buckets and their setup",
			run: func(ctx context.Context) error {
				status := uc.console.Status("Listing buckets and reading their configuration...")
				buckets, err := uc.awsRepo.GetBuckets(ctx, env.profile)
				status.Stop()
				if err != nil {
					return err
				}

				if len(buckets) == 0 {
					uc.console.LogInfo("This account has no S3 buckets.")
					return nil
				}

				table := uc.console.CreateTable()
				table.AddColumn("Bucket")
				table.AddColumn("Region")
				table.AddColumn("Age")
				table.AddColumn("Lifecycle")
				table.AddColumn("Versioning")

				withoutLifecycle := 0
				for _, b := range buckets {
					lifecycle := pterm.FgYellow.Sprint("none")
					if b.HasLifecycle {
						lifecycle = fmt.Sprintf("%d rule(s)", b.LifecycleRules)
					} else {
						withoutLifecycle++
					}
					versioning := "off"
					if b.VersioningEnabled {
						versioning = pterm.FgGreen.Sprint("on")
					}
					table.AddRow(b.Name, b.Region, humanize.Time(b.CreatedAt), lifecycle, versioning)
				}
				uc.console.Print(table.Render())

				if withoutLifecycle > 0 {
					uc.console.LogWarning("%d bucket(s) have no lifecycle rules; old objects never expire.", withoutLifecycle)
				}
				return nil
			},
		},
		{
			title: "Find untagged resources",
			run: func(ctx context.Context) error {
				regions := uc.regionsFor(ctx, env)
				if len(regions) > 3 {
					regions = regions[:3]
				}

				status := uc.console.Status("Checking tags on EC2, RDS, Lambda and ELBv2...")
				untagged, err := uc.awsRepo.GetUntaggedResources(ctx, env.profile, regions)
				status.Stop()
				if err != nil {
					return err
				}

				if untagged.Count() == 0 {
					uc.console.LogSuccess("Every scanned resource carries at least one tag.")
					return nil
				}

				uc.console.LogWarning("%d untagged resource(s) found.", untagged.Count())
				for service, regionMap := range untagged {
					shown := false
					for region, ids := range regionMap {
						if len(ids) == 0 {
							continue
						}
						if !shown {
							uc.console.Printf("%s:\n", pterm.FgYellow.Sprint(service))
							shown = true
						}
						uc.console.Printf("  %s: %s\n", region, strings.Join(ids, ", "))
					}
				}
				return nil
			},
		},
		{
			title: "Hygiene sweep",
			run: func(ctx context.Context) error {
				regions := uc.regionsFor(ctx, env)
				if len(regions) > 3 {
					regions = regions[:3]
				}

				progress := uc.console.Progress([]string{
					"Stopped EC2 instances",
					"Unattached EBS volumes",
					"Unassociated Elastic IPs",
					"Idle load balancers",
				})

				stopped, err := uc.awsRepo.GetStoppedInstances(ctx, env.profile, regions)
				progress.Increment()
				if err != nil {
					progress.Stop()
					return err
				}
				volumes, err := uc.awsRepo.GetUnusedVolumes(ctx, env.profile, regions)
				progress.Increment()
				if err != nil {
					progress.Stop()
					return err
				}
				eips, err := uc.awsRepo.GetUnusedEIPs(ctx, env.profile, regions)
				progress.Increment()
				if err != nil {
					progress.Stop()
					return err
				}
				idle, err := uc.awsRepo.GetIdleLoadBalancers(ctx, env.profile, regions)
				progress.Increment()
				progress.Stop()
				if err != nil {
					return err
				}

				// Guarda um alvo real para a simulação do próximo conceito.
				for _, ids := range stopped {
					if len(ids) > 0 {
						stoppedExample = ids[0]
						break
					}
				}

				table := uc.console.CreateTable()
				table.AddColumn("Finding")
				table.AddColumn("Count")
				table.AddColumn("Examples")
				table.AddRow("Stopped instances", fmt.Sprintf("%d", stopped.Count()), firstIDs(stopped, 3))
				table.AddRow("Unattached volumes", fmt.Sprintf("%d", countByRegion(volumes)), firstIDs(volumes, 3))
				table.AddRow("Unassociated EIPs", fmt.Sprintf("%d", countByRegion(eips)), firstIDs(eips, 3))
				table.AddRow("Idle load balancers", fmt.Sprintf("%d", countByRegion(idle)), firstIDs(idle, 3))
				uc.console.Print(table.Render())
				return nil
			},
		},
		{
			title: "Simulated write: create a bucket",
			run: func(ctx context.Context) error {
				uc.console.LogWarning("SIMULATION: the steps below are narrated only; no API call is made.")

				name := fmt.Sprintf("workshop-%s-scratch", strings.ToLower(env.account.AccountID))
				plan := uc.simRepo.BucketPlan(name, env.account.Region)

				uc.narratePlan(ctx, plan)
				return nil
			},
		},
		{
			title: "Simulated write: stop an instance",
			run: func(ctx context.Context) error {
				uc.console.LogWarning("SIMULATION: the steps below are narrated only; no API call is made.")

				target := stoppedExample
				if target == "" {
					target = "i-0123456789abcdef0"
					uc.say("No real instance to point at, so the plan uses a placeholder ID.")
				}
				plan := uc.simRepo.StopInstancePlan(target, env.account.Region)

				uc.narratePlan(ctx, plan)
				return nil
			},
		},
	}
}

// narratePlan apresenta um plano simulado passo a passo com um spinner.
func (uc *WorkshopUseCase) narratePlan(ctx context.Context, plan entity.SimulatedWritePlan) {
	uc.console.LogInfo("Plan: %s %s in %s (%d steps)", plan.Action, plan.Target, plan.Region, len(plan.Steps))

	status := uc.console.Status("Starting simulation...")
	for _, step := range plan.Steps {
		status.Update(step)
		sleepFor(ctx, 350*time.Millisecond)
	}
	status.Stop()

	uc.console.LogSuccess("Simulated %s of %s complete. The account was not touched.", plan.Action, plan.Target)
}

func countByRegion(m map[string][]string) int {
	var n int
	for _, ids := range m {
		n += len(ids)
	}
	return n
}

func firstIDs(m map[string][]string, limit int) string {
	var ids []string
	regions := make([]string, 0, len(m))
	for region := range m {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	for _, region := range regions {
		for _, id := range m[region] {
			if len(ids) == limit {
				return strings.Join(ids, ", ") + ", ..."
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ", ")
}
