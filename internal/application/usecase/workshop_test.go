package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/domain/repository"
	"github.com/diillson/aws-workshop-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
)

// fakeConsole grava tudo o que as lições imprimem para as asserções.
type fakeConsole struct {
	infos     []string
	warnings  []string
	errLines  []string
	successes []string
	headlines []string
	sections  []string
	panels    []string
	bullets   []string
	tables    []*fakeTable

	choices        []types.ContinueChoice
	pauseN         int
	nonInteractive bool
}

var _ types.ConsoleInterface = (*fakeConsole)(nil)

func (f *fakeConsole) Print(a ...interface{})                 {}
func (f *fakeConsole) Printf(format string, a ...interface{}) {}
func (f *fakeConsole) Println(a ...interface{})               {}

func (f *fakeConsole) LogInfo(format string, a ...interface{}) {
	f.infos = append(f.infos, fmt.Sprintf(format, a...))
}

func (f *fakeConsole) LogWarning(format string, a ...interface{}) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, a...))
}

func (f *fakeConsole) LogError(format string, a ...interface{}) {
	f.errLines = append(f.errLines, fmt.Sprintf(format, a...))
}

func (f *fakeConsole) LogSuccess(format string, a ...interface{}) {
	f.successes = append(f.successes, fmt.Sprintf(format, a...))
}

func (f *fakeConsole) Status(message string) types.StatusHandle     { return fakeStatus{} }
func (f *fakeConsole) Progress(items []string) types.ProgressHandle { return fakeProgress{} }
func (f *fakeConsole) ProgressWithTotal(total int) types.ProgressHandle {
	return fakeProgress{}
}

func (f *fakeConsole) CreateTable() types.TableInterface {
	table := &fakeTable{}
	f.tables = append(f.tables, table)
	return table
}

func (f *fakeConsole) DisplayTrendBars(monthlyCosts []types.MonthlyCost) {}

func (f *fakeConsole) Headline(text string) { f.headlines = append(f.headlines, text) }

func (f *fakeConsole) Section(number, total int, title string) {
	f.sections = append(f.sections, fmt.Sprintf("%d/%d %s", number, total, title))
}

func (f *fakeConsole) Panel(title, body string) { f.panels = append(f.panels, title) }

func (f *fakeConsole) Bullets(items []string) { f.bullets = append(f.bullets, items...) }

func (f *fakeConsole) Pause(label string) types.ContinueChoice {
	choice := types.ContinueNext
	if f.pauseN < len(f.choices) {
		choice = f.choices[f.pauseN]
	}
	f.pauseN++
	return choice
}

func (f *fakeConsole) SetNonInteractive(v bool) { f.nonInteractive = v }
func (f *fakeConsole) IsNonInteractive() bool   { return f.nonInteractive }

type fakeStatus struct{}

func (fakeStatus) Update(message string) {}
func (fakeStatus) Stop()                 {}

type fakeProgress struct{}

func (fakeProgress) Increment() {}
func (fakeProgress) Stop()      {}

type fakeTable struct {
	columns []string
	rows    [][]interface{}
}

func (f *fakeTable) AddColumn(name string, options ...interface{}) {
	f.columns = append(f.columns, name)
}

func (f *fakeTable) AddRow(cells ...interface{}) { f.rows = append(f.rows, cells) }
func (f *fakeTable) Render() string              { return "" }

// stubAWSRepo cobre só o que os testes chamam; o resto fica no embedding.
type stubAWSRepo struct {
	repository.AWSRepository
	profiles []string
}

func (s *stubAWSRepo) GetAWSProfiles() []string { return s.profiles }

type stubSystemRepo struct {
	repository.SystemRepository
	missing map[string]bool
}

func (s *stubSystemRepo) FindTool(ctx context.Context, name string) (entity.ToolInfo, error) {
	if s.missing[name] {
		return entity.ToolInfo{}, fmt.Errorf("%s not found on PATH", name)
	}
	return entity.ToolInfo{Name: name, Path: "/usr/bin/" + name}, nil
}

func TestLessons(t *testing.T) {
	uc := NewWorkshopUseCase(nil, nil, nil, nil, nil, nil, &fakeConsole{})

	lessons := uc.Lessons()
	assert.Len(t, lessons, 11)
	assert.Equal(t, "setup", lessons[0].Command)
	assert.Equal(t, "capstone", lessons[len(lessons)-1].Command)

	seen := make(map[string]bool)
	for i, info := range lessons {
		assert.Equal(t, i+1, info.Number)
		assert.False(t, seen[info.Command], "duplicate command %q", info.Command)
		seen[info.Command] = true
		assert.NotEmpty(t, info.Title)
		assert.NotEmpty(t, info.Teaches)
	}
}

func TestWalkthrough(t *testing.T) {
	tests := []struct {
		name         string
		choices      []types.ContinueChoice
		failAt       int
		wantRan      []int
		wantStatuses []entity.ConceptStatus
		wantAborted  bool
	}{
		{
			name:         "presenter keeps going",
			choices:      []types.ContinueChoice{types.ContinueNext, types.ContinueNext, types.ContinueNext},
			wantRan:      []int{1, 2, 3, 4},
			wantStatuses: []entity.ConceptStatus{entity.ConceptDone, entity.ConceptDone, entity.ConceptDone, entity.ConceptDone},
		},
		{
			name:         "skip jumps over the next concept",
			choices:      []types.ContinueChoice{types.ContinueSkip},
			wantRan:      []int{1, 3, 4},
			wantStatuses: []entity.ConceptStatus{entity.ConceptDone, entity.ConceptSkipped, entity.ConceptDone, entity.ConceptDone},
		},
		{
			name:         "skip on the last pause ends the lesson",
			choices:      []types.ContinueChoice{types.ContinueNext, types.ContinueNext, types.ContinueSkip},
			wantRan:      []int{1, 2, 3},
			wantStatuses: []entity.ConceptStatus{entity.ConceptDone, entity.ConceptDone, entity.ConceptDone, entity.ConceptSkipped},
		},
		{
			name:         "quit marks the rest as skipped",
			choices:      []types.ContinueChoice{types.ContinueNext, types.ContinueQuit},
			wantRan:      []int{1, 2},
			wantStatuses: []entity.ConceptStatus{entity.ConceptDone, entity.ConceptDone, entity.ConceptSkipped, entity.ConceptSkipped},
			wantAborted:  true,
		},
		{
			name:         "quit right away",
			choices:      []types.ContinueChoice{types.ContinueQuit},
			wantRan:      []int{1},
			wantStatuses: []entity.ConceptStatus{entity.ConceptDone, entity.ConceptSkipped, entity.ConceptSkipped, entity.ConceptSkipped},
			wantAborted:  true,
		},
		{
			name:         "failed concept is recorded and the lesson continues",
			failAt:       2,
			wantRan:      []int{1, 2, 3, 4},
			wantStatuses: []entity.ConceptStatus{entity.ConceptDone, entity.ConceptFailed, entity.ConceptDone, entity.ConceptDone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console := &fakeConsole{choices: tt.choices}
			uc := NewWorkshopUseCase(nil, nil, nil, nil, nil, nil, console)

			var ran []int
			concepts := make([]concept, 4)
			for i := range concepts {
				number := i + 1
				concepts[i] = concept{
					title: fmt.Sprintf("concept %d", number),
					run: func(ctx context.Context) error {
						ran = append(ran, number)
						if tt.failAt == number {
							return fmt.Errorf("boom %d", number)
						}
						return nil
					},
				}
			}

			info := entity.LessonInfo{Number: 3, Command: "pipelines", Title: "Working With Collections"}
			result := uc.walkthrough(context.Background(), info, concepts)

			assert.Equal(t, tt.wantRan, ran)
			assert.Equal(t, tt.wantAborted, result.Aborted)
			assert.Len(t, result.Concepts, len(tt.wantStatuses))

			statuses := make([]entity.ConceptStatus, len(result.Concepts))
			for i, record := range result.Concepts {
				statuses[i] = record.Status
				assert.Equal(t, i+1, record.Number)
			}
			assert.Equal(t, tt.wantStatuses, statuses)

			if tt.failAt > 0 {
				assert.Equal(t, 1, result.FailedCount())
				assert.Equal(t, fmt.Sprintf("boom %d", tt.failAt), result.Concepts[tt.failAt-1].Error)
			} else {
				assert.Zero(t, result.FailedCount())
			}
		})
	}
}

func TestRunLessonUnknownCommand(t *testing.T) {
	uc := NewWorkshopUseCase(nil, nil, nil, nil, nil, nil, &fakeConsole{})

	err := uc.RunLesson(context.Background(), "nope", &types.CLIArgs{})
	assert.EqualError(t, err, `unknown lesson "nope"`)
}

func TestRunLessonPrerequisiteFailure(t *testing.T) {
	console := &fakeConsole{}
	system := &stubSystemRepo{missing: map[string]bool{"aws": true}}
	uc := NewWorkshopUseCase(&stubAWSRepo{}, system, nil, nil, nil, nil, console)

	err := uc.RunLesson(context.Background(), "basics", &types.CLIArgs{})

	var prereqErr *types.PrerequisiteError
	assert.ErrorAs(t, err, &prereqErr)
	assert.Equal(t, "AWS CLI on PATH", prereqErr.Check)
	assert.ErrorIs(t, err, types.ErrAWSCLINotFound)
	assert.NotEmpty(t, console.errLines)
}

func TestRunLessonOfflineHappyPath(t *testing.T) {
	console := &fakeConsole{}
	uc := NewWorkshopUseCase(nil, nil, nil, nil, nil, nil, console)

	err := uc.RunLesson(context.Background(), "modeling", &types.CLIArgs{})
	assert.NoError(t, err)

	assert.Equal(t, []string{"Lesson 5 | Modeling With Types"}, console.headlines)
	assert.Len(t, console.sections, 5)
	assert.Equal(t, "1/5 Define behaviour with an interface", console.sections[0])

	// O resumo lista um conceito por linha e fecha com os pontos-chave.
	if assert.Len(t, console.tables, 1) {
		assert.Len(t, console.tables[0].rows, 5)
		for _, row := range console.tables[0].rows {
			assert.Contains(t, fmt.Sprint(row[2]), "done")
		}
	}
	assert.Len(t, console.bullets, 4)

	// A lição demonstra um erro de validação de propósito; nenhum conceito
	// pode ter falhado de verdade.
	for _, line := range console.errLines {
		assert.NotContains(t, line, "did not complete")
	}
}

func TestResolveProfile(t *testing.T) {
	tests := []struct {
		name      string
		profiles  []string
		requested string
		want      string
		wantErr   error
		wantWarn  bool
	}{
		{
			name:    "no profiles configured",
			wantErr: types.ErrNoProfilesFound,
		},
		{
			name:      "requested profile exists",
			profiles:  []string{"dev", "prod"},
			requested: "prod",
			want:      "prod",
		},
		{
			name:      "requested profile missing",
			profiles:  []string{"dev"},
			requested: "staging",
			wantErr:   types.ErrNoValidProfilesFound,
			wantWarn:  true,
		},
		{
			name:     "default wins when nothing is requested",
			profiles: []string{"dev", "default", "prod"},
			want:     "default",
		},
		{
			name:     "first profile when there is no default",
			profiles: []string{"alpha", "beta"},
			want:     "alpha",
			wantWarn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console := &fakeConsole{}
			uc := NewWorkshopUseCase(&stubAWSRepo{profiles: tt.profiles}, nil, nil, nil, nil, nil, console)

			got, err := uc.resolveProfile(tt.requested)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			if tt.wantWarn {
				assert.NotEmpty(t, console.warnings)
			} else {
				assert.Empty(t, console.warnings)
			}
		})
	}
}

func TestPrereqProfileFillsEnv(t *testing.T) {
	uc := NewWorkshopUseCase(&stubAWSRepo{profiles: []string{"default"}}, nil, nil, nil, nil, nil, &fakeConsole{})

	env := &lessonEnv{args: &types.CLIArgs{}}
	check := uc.prereqProfile(env)

	assert.Equal(t, "AWS profile", check.name)
	assert.NoError(t, check.check(context.Background()))
	assert.Equal(t, "default", env.profile)
}

func TestReseedIgnoresZero(t *testing.T) {
	sim := &stubSimulationRepo{}
	uc := NewWorkshopUseCase(nil, nil, nil, sim, nil, nil, &fakeConsole{})

	uc.Reseed(0)
	assert.Empty(t, sim.reseeds)

	uc.Reseed(42)
	assert.Equal(t, []int64{42}, sim.reseeds)
}

type stubSimulationRepo struct {
	repository.SimulationRepository
	reseeds []int64
}

func (s *stubSimulationRepo) Reseed(seed int64) { s.reseeds = append(s.reseeds, seed) }
