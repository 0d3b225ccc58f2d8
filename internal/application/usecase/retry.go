package usecase

import (
	"context"
	"time"
)

// retryWithBackoff executa op até attempts vezes, dobrando a espera entre
// tentativas a partir de initialDelay. Devolve em qual tentativa a operação
// terminou e o último erro visto quando todas falham. onRetry, quando
// informado, é chamado antes de cada nova espera.
func retryWithBackoff(
	ctx context.Context,
	attempts int,
	initialDelay time.Duration,
	op func(ctx context.Context) error,
	onRetry func(attempt int, delay time.Duration, err error),
) (int, error) {
	delay := initialDelay
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return attempt, nil
		}
		if attempt == attempts {
			break
		}

		if onRetry != nil {
			onRetry(attempt, delay, lastErr)
		}

		select {
		case <-ctx.Done():
			return attempt, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return attempts, lastErr
}
