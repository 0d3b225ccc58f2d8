package simulate

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
)

// fastRepo encurta a latência simulada para os testes não dormirem de verdade.
func fastRepo(seed int64) *SimulationRepositoryImpl {
	repo := NewSimulationRepository(seed).(*SimulationRepositoryImpl)
	repo.latencyMin = time.Microsecond
	repo.latencyMax = 50 * time.Microsecond
	return repo
}

func TestSeed(t *testing.T) {
	repo := NewSimulationRepository(0)
	assert.NotZero(t, repo.Seed())

	repo.Reseed(99)
	assert.EqualValues(t, 99, repo.Seed())
}

func TestDeployIsDeterministicPerSeed(t *testing.T) {
	a := fastRepo(42)
	b := fastRepo(42)

	var got, want []bool
	for i := 0; i < 20; i++ {
		outcomeA, _ := a.Deploy(context.Background(), "api")
		outcomeB, _ := b.Deploy(context.Background(), "api")
		got = append(got, outcomeA.Succeeded)
		want = append(want, outcomeB.Succeeded)
	}
	assert.Equal(t, want, got)
}

func TestDeployOutcome(t *testing.T) {
	repo := fastRepo(7)

	var succeeded int
	for i := 0; i < 300; i++ {
		outcome, err := repo.Deploy(context.Background(), "payments-service")
		assert.NotEmpty(t, outcome.ID)
		assert.Equal(t, "payments-service", outcome.Target)
		assert.NotEmpty(t, outcome.Message)

		if err == nil {
			assert.True(t, outcome.Succeeded)
			succeeded++
			continue
		}

		assert.False(t, outcome.Succeeded)
		var deployErr *entity.DeploymentError
		assert.ErrorAs(t, err, &deployErr)
		assert.Equal(t, outcome.ID, deployErr.DeploymentID)
		assert.Equal(t, "payments-service", deployErr.Target)
		assert.NotEmpty(t, deployErr.Reason)
	}

	// A taxa configurada é 0.8; com 300 amostras o desvio fica pequeno.
	rate := float64(succeeded) / 300
	assert.InDelta(t, 0.8, rate, 0.1)
}

func TestDeployHonoursContext(t *testing.T) {
	repo := NewSimulationRepository(1).(*SimulationRepositoryImpl)
	repo.latencyMin = time.Hour
	repo.latencyMax = 2 * time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Deploy(ctx, "api")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFlakyOperation(t *testing.T) {
	repo := fastRepo(1)
	op := repo.FlakyOperation("warm the cache", 3)

	err := op(context.Background())
	assert.ErrorIs(t, err, types.ErrServiceUnavailable)
	assert.ErrorContains(t, err, "warm the cache (attempt 1)")

	err = op(context.Background())
	assert.ErrorIs(t, err, types.ErrServiceUnavailable)

	assert.NoError(t, op(context.Background()))
	assert.NoError(t, op(context.Background()))
}

func TestFlakyOperationSucceedsImmediately(t *testing.T) {
	repo := fastRepo(1)
	op := repo.FlakyOperation("noop", 1)
	assert.NoError(t, op(context.Background()))
}

func TestFlakyOperationHonoursContext(t *testing.T) {
	repo := fastRepo(1)
	op := repo.FlakyOperation("never", 99)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, op(ctx), context.Canceled)
}

func TestCostReportIsDeterministicPerSeed(t *testing.T) {
	a := NewSimulationRepository(42).CostReport("dev", "111122223333", 6, 0)
	b := NewSimulationRepository(42).CostReport("dev", "111122223333", 6, 0)

	assert.Equal(t, a.ServiceCosts, b.ServiceCosts)
	assert.Equal(t, a.MonthToDate, b.MonthToDate)
	assert.Equal(t, a.LastMonth, b.LastMonth)
	assert.Equal(t, a.WeeklyRunRate, b.WeeklyRunRate)
	assert.Equal(t, a.ForecastMonthEnd, b.ForecastMonthEnd)
	assert.Equal(t, a.MonthlyCosts, b.MonthlyCosts)

	c := NewSimulationRepository(43).CostReport("dev", "111122223333", 6, 0)
	assert.NotEqual(t, a.ServiceCosts, c.ServiceCosts)
}

func TestCostReportShape(t *testing.T) {
	report := NewSimulationRepository(7).CostReport("training", "111122223333", 4, 250)

	assert.Equal(t, "training", report.Profile)
	assert.Equal(t, "111122223333", report.AccountID)
	assert.True(t, report.Simulated)
	assert.EqualValues(t, 7, report.Seed)
	assert.Len(t, report.ServiceCosts, len(serviceCatalog))

	// Maior custo primeiro, como a tabela do capstone espera.
	for i := 1; i < len(report.ServiceCosts); i++ {
		assert.GreaterOrEqual(t, report.ServiceCosts[i-1].Cost, report.ServiceCosts[i].Cost)
	}

	total := report.TotalServiceCost()
	assert.Greater(t, total, 0.0)
	assert.LessOrEqual(t, report.MonthToDate, total+0.01)

	// Semana média = mês / 4.33, com até 10% de ruído.
	assert.InDelta(t, total/4.33, report.WeeklyRunRate, total/4.33*0.11)
	assert.InDelta(t, total, report.ForecastMonthEnd, total*0.06)

	if assert.Len(t, report.MonthlyCosts, 4) {
		last := report.MonthlyCosts[len(report.MonthlyCosts)-1]
		assert.Equal(t, time.Now().UTC().Format("Jan 2006"), last.Month)
		assert.Equal(t, report.MonthToDate, last.Cost)
	}

	if assert.Len(t, report.Budgets, 1) {
		budget := report.Budgets[0]
		assert.Equal(t, "workshop-monthly", budget.Name)
		assert.Equal(t, 250.0, budget.Limit)
		assert.Equal(t, report.MonthToDate, budget.Actual)
		assert.Equal(t, report.ForecastMonthEnd, budget.Forecast)
	}

	assert.NotNil(t, report.PercentChange)
}

func TestCostReportDefaults(t *testing.T) {
	report := NewSimulationRepository(7).CostReport("training", "111122223333", 0, 0)

	assert.Len(t, report.MonthlyCosts, 6)
	assert.Empty(t, report.Budgets)
}

func TestSampleInventory(t *testing.T) {
	idPattern := regexp.MustCompile(`^i-[0-9a-f]{12}$`)

	tests := []struct {
		name    string
		n       int
		wantLen int
	}{
		{name: "explicit size", n: 5, wantLen: 5},
		{name: "zero falls back to a dozen", n: 0, wantLen: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inventory := NewSimulationRepository(7).SampleInventory(tt.n)

			assert.Len(t, inventory, tt.wantLen)
			for _, res := range inventory {
				assert.Regexp(t, idPattern, res.ID)
				assert.NotEmpty(t, res.Name)
				assert.NotEmpty(t, res.Type)
				assert.NotEmpty(t, res.Region)
				assert.NotEmpty(t, res.State)
				assert.Equal(t, res.Name, res.Tags["Name"])
			}
		})
	}
}

func TestWritePlans(t *testing.T) {
	repo := NewSimulationRepository(7)

	bucket := repo.BucketPlan("workshop-dev-scratch", "eu-west-1")
	assert.Equal(t, "create-bucket", bucket.Action)
	assert.Equal(t, "workshop-dev-scratch", bucket.Target)
	assert.Equal(t, "eu-west-1", bucket.Region)
	if assert.NotEmpty(t, bucket.Steps) {
		assert.Contains(t, bucket.Steps[0], `"workshop-dev-scratch"`)
	}

	stop := repo.StopInstancePlan("i-0123456789abcdef0", "us-east-1")
	assert.Equal(t, "stop-instance", stop.Action)
	assert.Equal(t, "i-0123456789abcdef0", stop.Target)
	if assert.NotEmpty(t, stop.Steps) {
		assert.Contains(t, stop.Steps[0], "i-0123456789abcdef0")
	}
}
