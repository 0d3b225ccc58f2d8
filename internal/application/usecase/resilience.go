package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/shared/types"
)

// resilienceScript ensina o tratamento de erros de Go com falhas fabricadas:
// sentinelas, erros tipados, retry com backoff dobrado e recover.
func (uc *WorkshopUseCase) resilienceScript() *lessonScript {
	return &lessonScript{
		info: entity.LessonInfo{
			Number:  7,
			Command: "resilience",
			Title:   "Errors and Retries",
			Teaches: "wrapping, sentinel and typed errors, retry with backoff, recover",
		},
		build: uc.resilienceConcepts,
		takeaways: []string{
			"An error is the second return value; handling it is part of the call.",
			"Wrap with %w so errors.Is and errors.As can see through the layers.",
			"Retries need a cap and a growing delay; pass a context so they can be cancelled.",
			"recover is for crash barriers at goroutine boundaries, not for control flow.",
		},
	}
}

func (uc *WorkshopUseCase) resilienceConcepts(env *lessonEnv) []concept {
	return []concept{
		{
			title: "Errors are returned, not thrown",
			run: func(ctx context.Context) error {
				uc.say("Deployments here are simulated: real latency and an 80%% success rate, zero API calls.")

				for _, target := range []string{"api-gateway", "billing-worker", "cache-layer"} {
					outcome, err := uc.simRepo.Deploy(ctx, target)
					if err != nil {
						uc.console.LogError("%s", err)
						continue
					}
					uc.console.LogSuccess("%s deployed in %s (id %s)", outcome.Target,
						outcome.Latency.Round(time.Millisecond), outcome.ID)
				}

				uc.say("No try/catch anywhere. The if err != nil block is the handler.")
				return nil
			},
		},
		{
			title: "Sentinel errors and errors.Is",
			run: func(ctx context.Context) error {
				op := uc.simRepo.FlakyOperation("warm the cache", 3)

				err := op(ctx)
				if err == nil {
					uc.say("First call went through, which spoils the demo but not the lesson.")
					return nil
				}

				uc.console.LogError("%s", err)
				uc.say("The message carries the wrapping chain. errors.Is walks it for us:")
				uc.console.Printf("errors.Is(err, ErrServiceUnavailable) => %t\n",
					errors.Is(err, types.ErrServiceUnavailable))
				uc.console.Printf("errors.Is(err, ErrNotAuthenticated)   => %t\n",
					errors.Is(err, types.ErrNotAuthenticated))
				return nil
			},
		},
		{
			title: "Typed errors and errors.As",
			run: func(ctx context.Context) error {
				uc.say("Some failures carry data. DeploymentError has the ID and the reason:")

				var depErr *entity.DeploymentError
				for attempt := 0; attempt < 10; attempt++ {
					_, err := uc.simRepo.Deploy(ctx, "payments-service")
					if err == nil {
						continue
					}
					if errors.As(err, &depErr) {
						break
					}
				}

				if depErr == nil {
					// Dez sucessos seguidos acontecem; fabrica um para a aula continuar.
					uc.say("Ten deployments in a row succeeded, so here is a canned failure:")
					depErr = &entity.DeploymentError{DeploymentID: "d-example", Target: "payments-service", Reason: "change set drift detected"}
				}

				uc.console.LogError("%s", depErr)
				uc.console.Printf("deployment ID => %s\n", depErr.DeploymentID)
				uc.console.Printf("target        => %s\n", depErr.Target)
				uc.console.Printf("reason        => %s\n", depErr.Reason)

				uc.say("errors.As filled a *DeploymentError, giving us fields instead of a string to parse.")
				return nil
			},
		},
		{
			title: "Retry with doubling backoff",
			run: func(ctx context.Context) error {
				uc.say("This operation fails twice before working. Watch the delays double:")

				op := uc.simRepo.FlakyOperation("fetch pricing data", 3)
				attempt, err := retryWithBackoff(ctx, 5, 500*time.Millisecond, op,
					func(attempt int, delay time.Duration, err error) {
						uc.console.LogWarning("Attempt %d failed (%s); retrying in %s", attempt, err, delay)
					})
				if err != nil {
					return err
				}
				uc.console.LogSuccess("Succeeded on attempt %d.", attempt)

				uc.say("The same helper gives up early when the context expires:")
				timeoutCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
				defer cancel()

				neverWorks := uc.simRepo.FlakyOperation("unreachable endpoint", 99)
				_, err = retryWithBackoff(timeoutCtx, 5, 500*time.Millisecond, neverWorks, nil)
				uc.console.LogError("%s", err)
				uc.console.Printf("errors.Is(err, context.DeadlineExceeded) => %t\n",
					errors.Is(err, context.DeadlineExceeded))
				return nil
			},
		},
		{
			title: "Panic, recover, and when not to",
			run: func(ctx context.Context) error {
				uc.say("Out-of-range indexing panics. A deferred recover turns it back into an error:")

				safeAt := func(values []int, idx int) (result int, err error) {
					defer func() {
						if r := recover(); r != nil {
							err = fmt.Errorf("recovered: %v", r)
						}
					}()
					return values[idx], nil
				}

				if v, err := safeAt([]int{10, 20, 30}, 1); err == nil {
					uc.console.Printf("safeAt(values, 1) => %d\n", v)
				}
				if _, err := safeAt([]int{10, 20, 30}, 7); err != nil {
					uc.console.LogError("safeAt(values, 7) => %s", err)
				}

				uc.say("Reserve panics for bugs. Expected failures, like the AWS calls in this workshop, stay errors.")
				return nil
			},
		},
		{
			title: "Success rate over a batch",
			run: func(ctx context.Context) error {
				const batch = 20
				uc.say("Twenty deployments, one by one. Concurrency waits for lesson 10.")

				progress := uc.console.ProgressWithTotal(batch)
				succeeded := 0
				for i := 0; i < batch; i++ {
					if _, err := uc.simRepo.Deploy(ctx, fmt.Sprintf("service-%02d", i+1)); err == nil {
						succeeded++
					}
					progress.Increment()
				}
				progress.Stop()

				rate := float64(succeeded) / float64(batch) * 100
				uc.console.LogInfo("%d of %d deployments succeeded (%.0f%%).", succeeded, batch, rate)
				uc.say("With the simulator's 80%% success rate, a run like this usually lands near 16 of 20.")
				return nil
			},
		},
	}
}
