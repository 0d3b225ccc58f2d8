package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/pterm/pterm"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
)

// basicsScript apresenta os blocos básicos da linguagem usando dados reais
// da conta: structs, slices, maps e os verbos do fmt.
func (uc *WorkshopUseCase) basicsScript() *lessonScript {
	return &lessonScript{
		info: entity.LessonInfo{
			Number:  2,
			Command: "basics",
			Title:   "Go Building Blocks",
			Teaches: "structs, zero values, slices, maps and fmt verbs",
		},
		needsAWS: true,
		prereqs: func(env *lessonEnv) []prereq {
			return []prereq{uc.prereqAWSCLI(), uc.prereqProfile(env)}
		},
		build: uc.basicsConcepts,
		takeaways: []string{
			"Every type has a usable zero value; there is no uninitialized state.",
			"Slices grow with append and share backing arrays when re-sliced.",
			"Map iteration order is randomized on purpose; sort the keys when it matters.",
			"%v, %+v, %#v and %T print the same value with increasing detail.",
		},
	}
}

func (uc *WorkshopUseCase) basicsConcepts(env *lessonEnv) []concept {
	return []concept{
		{
			title: "Structs and zero values",
			run: func(ctx context.Context) error {
				uc.say("A struct declared without a value is already usable: every field holds its zero value.")

				var empty entity.AccountContext
				uc.console.Printf("var empty AccountContext  => %+v\n", empty)

				uc.say("The session you opened a moment ago fills the same struct:")
				uc.console.Printf("connected account         => %+v\n", env.account)

				uc.say("Fields are plain dot access; there are no getters to write.")
				uc.console.Printf("env.account.AccountID     => %s\n", pterm.FgLightCyan.Sprint(env.account.AccountID))
				return nil
			},
		},
		{
			title: "Slices of regions",
			run: func(ctx context.Context) error {
				status := uc.console.Status("Asking EC2 which regions this account sees...")
				regions, err := uc.awsRepo.GetRegions(ctx, env.profile)
				status.Stop()
				if err != nil {
					return err
				}

				uc.say("DescribeRegions came back as a slice: a view over a backing array.")
				uc.console.Printf("len(regions) = %d, cap(regions) = %d\n", len(regions), cap(regions))

				show := regions
				if len(show) > 5 {
					show = regions[:5]
					uc.say("Slicing regions[:5] shares the same memory; nothing is copied.")
				}

				table := uc.console.CreateTable()
				table.AddColumn("Region")
				table.AddColumn("Opt-in status")
				for _, r := range show {
					table.AddRow(r.Name, r.OptInStatus)
				}
				uc.console.Print(table.Render())

				// append devolve um slice possivelmente realocado; sempre reatribua.
				favorites := make([]string, 0, 2)
				favorites = append(favorites, env.account.Region)
				favorites = append(favorites, "us-west-2")
				uc.console.Printf("favorites after two appends => %v\n", favorites)
				return nil
			},
		},
		{
			title: "Maps of instance states",
			run: func(ctx context.Context) error {
				regions := uc.regionsFor(ctx, env)
				if len(regions) > 3 {
					regions = regions[:3]
					uc.console.LogInfo("Limiting the scan to %v to keep the lesson quick.", regions)
				}

				status := uc.console.Status("Counting EC2 instances by state...")
				summary, err := uc.awsRepo.GetEC2Summary(ctx, env.profile, regions)
				status.Stop()
				if err != nil {
					return err
				}

				uc.say("EC2Summary is a map[string]int. Two lookups, one with the comma-ok idiom:")
				running := summary["running"]
				stopped, ok := summary["stopped"]
				uc.console.Printf("summary[\"running\"]      => %d\n", running)
				uc.console.Printf("summary[\"stopped\"], ok => %d, %t\n", stopped, ok)

				uc.say("Ranging over a map visits keys in random order, so we sort them first:")
				states := make([]string, 0, len(summary))
				for state := range summary {
					states = append(states, state)
				}
				sort.Strings(states)

				table := uc.console.CreateTable()
				table.AddColumn("State")
				table.AddColumn("Count")
				for _, state := range states {
					table.AddRow(state, fmt.Sprintf("%d", summary[state]))
				}
				uc.console.Print(table.Render())
				uc.console.LogInfo("Total instances across %d region(s): %d", len(regions), summary.Total())
				return nil
			},
		},
		{
			title: "Formatting with fmt",
			run: func(ctx context.Context) error {
				region := entity.RegionInfo{Name: env.account.Region, OptInStatus: "opt-in-not-required"}

				uc.say("The same value through four verbs:")
				uc.console.Printf("%%v  => %v\n", region)
				uc.console.Printf("%%+v => %+v\n", region)
				uc.console.Printf("%%#v => %#v\n", region)
				uc.console.Printf("%%T  => %T\n", region)

				uc.say("%%q quotes strings, width and precision work like C's printf:")
				uc.console.Printf("%%q    => %q\n", env.profile)
				uc.console.Printf("%%8.2f => %8.2f\n", 1234.5678)
				return nil
			},
		},
	}
}
