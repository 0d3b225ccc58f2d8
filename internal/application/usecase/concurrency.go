package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/pkg/journal"
)

// concurrencyScript é a lição de goroutines: WaitGroups, mutexes, um worker
// pool limitado e errgroup com cancelamento.
func (uc *WorkshopUseCase) concurrencyScript() *lessonScript {
	return &lessonScript{
		info: entity.LessonInfo{
			Number:  10,
			Command: "concurrency",
			Title:   "Goroutines and Pools",
			Teaches: "WaitGroups, mutexes, worker pools and errgroup",
		},
		needsAWS: true,
		prereqs: func(env *lessonEnv) []prereq {
			return []prereq{uc.prereqAWSCLI(), uc.prereqProfile(env)}
		},
		build: uc.concurrencyConcepts,
		takeaways: []string{
			"Goroutines cost kilobytes; processes cost milliseconds. Spawn accordingly.",
			"Every shared variable needs a mutex or a channel; pick one and stay with it.",
			"Bound your pools: unlimited fan-out turns into API throttling.",
			"errgroup propagates the first error and cancels everyone else through its context.",
		},
	}
}

func (uc *WorkshopUseCase) concurrencyConcepts(env *lessonEnv) []concept {
	return []concept{
		{
			title: "Goroutines are cheap",
			run: func(ctx context.Context) error {
				uc.say("For scale: one child process versus a thousand goroutines.")

				name, args := "git", []string{"--version"}
				if exe, err := os.Executable(); err == nil {
					name, args = exe, []string{"list"}
				}
				result, err := uc.systemRepo.RunProcess(ctx, name, args...)
				if err != nil {
					return err
				}
				uc.console.Printf("one process (pid %d)  => %s\n", result.PID, result.Elapsed.Round(time.Millisecond))

				var counter int64
				var wg sync.WaitGroup
				start := time.Now()
				for i := 0; i < 1000; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						atomic.AddInt64(&counter, 1)
					}()
				}
				wg.Wait()
				uc.console.Printf("1000 goroutines       => %s (counter=%d)\n", time.Since(start).Round(time.Microsecond), counter)

				uc.say("The counter is an atomic; without it the thousand writers would race.")
				return nil
			},
		},
		{
			title: "Fan out across regions",
			run: func(ctx context.Context) error {
				regions := uc.regionsFor(ctx, env)
				if len(regions) > 4 {
					regions = regions[:4]
				}

				uc.say("One goroutine per region, a WaitGroup to join them, a mutex around the merge:")

				combined := entity.EC2Summary{}
				perRegion := make(map[string]int, len(regions))
				var failures []string
				var mu sync.Mutex
				var wg sync.WaitGroup

				status := uc.console.Status(fmt.Sprintf("Scanning %d regions concurrently...", len(regions)))
				start := time.Now()
				for _, region := range regions {
					wg.Add(1)
					go func(region string) {
						defer wg.Done()
						summary, err := uc.awsRepo.GetEC2Summary(ctx, env.profile, []string{region})

						mu.Lock()
						defer mu.Unlock()
						if err != nil {
							failures = append(failures, fmt.Sprintf("%s: %s", region, err))
							return
						}
						perRegion[region] = summary.Total()
						for state, count := range summary {
							combined[state] += count
						}
					}(region)
				}
				wg.Wait()
				elapsed := time.Since(start)
				status.Stop()

				for _, failure := range failures {
					uc.console.LogWarning("%s", failure)
				}

				table := uc.console.CreateTable()
				table.AddColumn("Region")
				table.AddColumn("Instances")
				names := make([]string, 0, len(perRegion))
				for region := range perRegion {
					names = append(names, region)
				}
				sort.Strings(names)
				for _, region := range names {
					table.AddRow(region, fmt.Sprintf("%d", perRegion[region]))
				}
				uc.console.Print(table.Render())

				uc.console.LogInfo("%d instance(s) found in %s; sequential scans would add the latencies up.",
					combined.Total(), elapsed.Round(time.Millisecond))
				return nil
			},
		},
		{
			title: "A mutex-guarded journal",
			run: func(ctx context.Context) error {
				dir, err := os.MkdirTemp("", "workshop-journal")
				if err != nil {
					return err
				}
				defer os.RemoveAll(dir)

				j, err := journal.Open(filepath.Join(dir, "shared.log"))
				if err != nil {
					return err
				}
				defer j.Close()

				uc.say("Eight workers, five entries each, one file. The journal's mutex keeps lines whole:")

				const workers, entriesEach = 8, 5
				var wg sync.WaitGroup
				for w := 1; w <= workers; w++ {
					wg.Add(1)
					go func(w int) {
						defer wg.Done()
						for i := 1; i <= entriesEach; i++ {
							j.Append(fmt.Sprintf("worker-%d", w), fmt.Sprintf("step %d of %d", i, entriesEach))
						}
					}(w)
				}
				wg.Wait()

				lines, err := j.Tail(workers * entriesEach)
				if err != nil {
					return err
				}
				uc.console.Printf("entries appended => %d (want %d)\n", j.Entries(), workers*entriesEach)
				uc.console.Printf("lines on disk    => %d, none of them interleaved\n", len(lines))
				for _, line := range lines[:3] {
					uc.console.Printf("  %s\n", line)
				}

				uc.say("Remove the lock and rerun this with -race to watch the detector light up.")
				return nil
			},
		},
		{
			title: "A bounded worker pool",
			run: func(ctx context.Context) error {
				const jobs, workers = 20, 4
				uc.say("Twenty deployments, but never more than four in flight:")

				targets := make(chan string)
				results := make(chan bool)

				var wg sync.WaitGroup
				for w := 0; w < workers; w++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						for target := range targets {
							_, err := uc.simRepo.Deploy(ctx, target)
							results <- err == nil
						}
					}()
				}

				go func() {
					defer close(targets)
					for i := 1; i <= jobs; i++ {
						select {
						case targets <- fmt.Sprintf("service-%02d", i):
						case <-ctx.Done():
							return
						}
					}
				}()
				go func() {
					wg.Wait()
					close(results)
				}()

				progress := uc.console.ProgressWithTotal(jobs)
				succeeded, finished := 0, 0
				for ok := range results {
					finished++
					if ok {
						succeeded++
					}
					progress.Increment()
				}
				progress.Stop()

				uc.console.LogInfo("%d of %d deployments succeeded.", succeeded, finished)
				uc.say("The pool is the buffered-concurrency idiom: channel as queue, fixed workers draining it.")
				return nil
			},
		},
		{
			title: "errgroup: limits and cancellation",
			run: func(ctx context.Context) error {
				uc.say("errgroup runs six tasks, at most three at once. Task 4 fails and cancels the rest:")

				g, gctx := errgroup.WithContext(ctx)
				g.SetLimit(3)

				var mu sync.Mutex
				var events []string
				note := func(format string, a ...interface{}) {
					mu.Lock()
					defer mu.Unlock()
					events = append(events, fmt.Sprintf(format, a...))
				}

				for i := 1; i <= 6; i++ {
					task := i
					g.Go(func() error {
						if gctx.Err() != nil {
							note("task %d never ran: group already cancelled", task)
							return nil
						}
						if task == 4 {
							sleepFor(gctx, 120*time.Millisecond)
							note("task %d failed on purpose", task)
							return fmt.Errorf("task %d: simulated failure", task)
						}
						sleepFor(gctx, 250*time.Millisecond)
						if gctx.Err() != nil {
							note("task %d cancelled mid-flight", task)
							return nil
						}
						note("task %d finished", task)
						return nil
					})
				}

				err := g.Wait()
				for _, event := range events {
					uc.console.Printf("  %s\n", event)
				}
				if err != nil {
					uc.console.LogError("g.Wait() returned: %s", err)
				}

				uc.say("One error, surfaced once, and in-flight work noticed the cancellation. That is the pattern the capstone uses.")
				return nil
			},
		},
	}
}
