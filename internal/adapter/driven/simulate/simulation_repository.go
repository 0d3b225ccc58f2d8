package simulate

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/domain/repository"
	"github.com/diillson/aws-workshop-go/internal/shared/types"
	"github.com/google/uuid"
)

// serviceCatalog define os serviços e as faixas de custo mensal (em dólares)
// usadas na geração dos registros do capstone.
var serviceCatalog = []struct {
	name     string
	min, max float64
}{
	{"Amazon Elastic Compute Cloud - Compute", 80, 420},
	{"Amazon Relational Database Service", 40, 260},
	{"Amazon Simple Storage Service", 10, 90},
	{"Elastic Load Balancing", 8, 45},
	{"Amazon Virtual Private Cloud", 6, 40},
	{"Amazon CloudWatch", 4, 28},
	{"AWS Lambda", 2, 35},
	{"AWS Cost Explorer", 0.5, 3},
}

var failureReasons = []string{
	"throttled by the control plane",
	"capacity not available in the selected zone",
	"configuration drift detected on the target",
	"transient network failure",
}

var (
	sampleNames   = []string{"web", "api", "worker", "batch", "cache", "etl", "cron", "build"}
	sampleTypes   = []string{"t3.micro", "t3.small", "t3.medium", "m5.large", "c5.large", "r5.large"}
	sampleRegions = []string{"us-east-1", "us-east-2", "eu-west-1"}
	sampleStates  = []string{"running", "running", "running", "stopped"}
	sampleTeams   = []string{"payments", "search", "platform", "data"}
)

// SimulationRepositoryImpl gera deployments, falhas e custos de mentira com
// um gerador seedável, para que a apresentação seja reproduzível.
type SimulationRepositoryImpl struct {
	mu          sync.Mutex
	rng         *rand.Rand
	seed        int64
	successRate float64
	latencyMin  time.Duration
	latencyMax  time.Duration
}

// NewSimulationRepository cria o repositório de simulação. Seed 0 usa o
// relógio, qualquer outro valor torna a saída reproduzível.
func NewSimulationRepository(seed int64) repository.SimulationRepository {
	r := &SimulationRepositoryImpl{
		successRate: 0.8,
		latencyMin:  200 * time.Millisecond,
		latencyMax:  900 * time.Millisecond,
	}
	r.Reseed(seed)
	return r
}

// Reseed troca a fonte de aleatoriedade. Seed 0 usa o relógio.
func (s *SimulationRepositoryImpl) Reseed(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

// Seed devolve a seed em uso.
func (s *SimulationRepositoryImpl) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Deploy finge um deployment: dorme uma latência realista e falha em cerca
// de 20% das vezes com um DeploymentError tipado.
func (s *SimulationRepositoryImpl) Deploy(ctx context.Context, target string) (entity.DeploymentOutcome, error) {
	id := uuid.NewString()[:8]

	s.mu.Lock()
	latency := s.latencyMin + time.Duration(s.rng.Int63n(int64(s.latencyMax-s.latencyMin)))
	succeeded := s.rng.Float64() < s.successRate
	reason := failureReasons[s.rng.Intn(len(failureReasons))]
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return entity.DeploymentOutcome{}, ctx.Err()
	case <-time.After(latency):
	}

	outcome := entity.DeploymentOutcome{
		ID:        id,
		Target:    target,
		Succeeded: succeeded,
		Latency:   latency,
	}
	if !succeeded {
		outcome.Message = reason
		return outcome, &entity.DeploymentError{DeploymentID: id, Target: target, Reason: reason}
	}
	outcome.Message = "deployment completed"
	return outcome, nil
}

// FlakyOperation devolve uma operação que falha com ErrServiceUnavailable até
// a chamada de número succeedOn, o material das lições de retry.
func (s *SimulationRepositoryImpl) FlakyOperation(name string, succeedOn int) func(ctx context.Context) error {
	var mu sync.Mutex
	var attempts int

	return func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()

		if n >= succeedOn {
			return nil
		}
		return fmt.Errorf("%s (attempt %d): %w", name, n, types.ErrServiceUnavailable)
	}
}

// CostReport gera o modelo de custos do capstone: custo por serviço, mês
// corrente, mês anterior, taxa semanal, projeção e tendência mensal.
func (s *SimulationRepositoryImpl) CostReport(profile, accountID string, months int, budget float64) entity.CostReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	if months <= 0 {
		months = 6
	}
	now := time.Now().UTC()

	services := make([]entity.ServiceCost, 0, len(serviceCatalog))
	var monthTotal float64
	for _, svc := range serviceCatalog {
		cost := round2(svc.min + s.rng.Float64()*(svc.max-svc.min))
		services = append(services, entity.ServiceCost{ServiceName: svc.name, Cost: cost})
		monthTotal += cost
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Cost > services[j].Cost })

	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	dayFraction := float64(now.Day()) / float64(daysInMonth)

	monthToDate := monthTotal * dayFraction
	lastMonth := monthTotal * (0.85 + s.rng.Float64()*0.30)
	// Um mês tem 4.33 semanas em média; o resto é ruído proposital.
	weeklyRunRate := monthTotal / 4.33 * (0.90 + s.rng.Float64()*0.20)
	forecast := monthTotal * (0.95 + s.rng.Float64()*0.10)

	trend := make([]entity.MonthlyCost, 0, months)
	for i := months - 1; i >= 1; i-- {
		month := now.AddDate(0, -i, 0)
		trend = append(trend, entity.MonthlyCost{
			Month: month.Format("Jan 2006"),
			Cost:  round2(monthTotal * (0.88 + s.rng.Float64()*0.24)),
		})
	}
	trend = append(trend, entity.MonthlyCost{Month: now.Format("Jan 2006"), Cost: round2(monthToDate)})

	report := entity.CostReport{
		Profile:          profile,
		AccountID:        accountID,
		GeneratedAt:      now,
		PeriodName:       now.Format("January 2006"),
		MonthToDate:      round2(monthToDate),
		LastMonth:        round2(lastMonth),
		WeeklyRunRate:    round2(weeklyRunRate),
		ForecastMonthEnd: round2(forecast),
		ServiceCosts:     services,
		MonthlyCosts:     trend,
		Simulated:        true,
		Seed:             s.seed,
	}

	if budget > 0 {
		report.Budgets = []entity.BudgetInfo{{
			Name:     "workshop-monthly",
			Limit:    budget,
			Actual:   report.MonthToDate,
			Forecast: report.ForecastMonthEnd,
		}}
	}

	if report.LastMonth > 0.01 {
		change := ((report.MonthToDate - report.LastMonth) / report.LastMonth) * 100
		report.PercentChange = &change
	}

	return report
}

// SampleInventory devolve uma frota enlatada para quando a conta não tem
// instância nenhuma para as lições de pipeline mastigarem.
func (s *SimulationRepositoryImpl) SampleInventory(n int) []entity.ResourceSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		n = 12
	}

	inventory := make([]entity.ResourceSummary, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s-%02d", sampleNames[s.rng.Intn(len(sampleNames))], i+1)
		res := entity.ResourceSummary{
			ID:     fmt.Sprintf("i-%012x", s.rng.Int63n(1<<44)),
			Name:   name,
			Type:   sampleTypes[s.rng.Intn(len(sampleTypes))],
			Region: sampleRegions[s.rng.Intn(len(sampleRegions))],
			State:  sampleStates[s.rng.Intn(len(sampleStates))],
			Tags:   map[string]string{"Name": name},
		}
		if s.rng.Float64() < 0.7 {
			res.Tags["team"] = sampleTeams[s.rng.Intn(len(sampleTeams))]
		}
		inventory = append(inventory, res)
	}
	return inventory
}

// BucketPlan descreve os passos que uma criação real de bucket executaria.
func (s *SimulationRepositoryImpl) BucketPlan(name, region string) entity.SimulatedWritePlan {
	return entity.SimulatedWritePlan{
		Action: "create-bucket",
		Target: name,
		Region: region,
		Steps: []string{
			fmt.Sprintf("Check that bucket name %q is globally available", name),
			fmt.Sprintf("Create the bucket in %s", region),
			"Apply the public access block (all four switches on)",
			"Enable default encryption (SSE-S3)",
			"Enable versioning",
			"Tag the bucket with workshop=aws-go-workshop",
		},
	}
}

// StopInstancePlan descreve os passos que um stop real executaria.
func (s *SimulationRepositoryImpl) StopInstancePlan(instanceID, region string) entity.SimulatedWritePlan {
	return entity.SimulatedWritePlan{
		Action: "stop-instance",
		Target: instanceID,
		Region: region,
		Steps: []string{
			fmt.Sprintf("Describe instance %s in %s", instanceID, region),
			"Validate that the instance is in the running state",
			"Send the StopInstances call",
			"Wait for the stopped state (waiter with backoff)",
			"Confirm the final state",
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
