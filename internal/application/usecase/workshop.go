package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/domain/repository"
	"github.com/diillson/aws-workshop-go/internal/shared/types"
)

// WorkshopUseCase drives the instructor-led lessons: prerequisite checks,
// the concept walkthrough with presenter pauses, and the final recap.
type WorkshopUseCase struct {
	awsRepo    repository.AWSRepository
	systemRepo repository.SystemRepository
	gitRepo    repository.GitRepository
	simRepo    repository.SimulationRepository
	configRepo repository.ConfigRepository
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface
}

// NewWorkshopUseCase creates a new workshop use case.
func NewWorkshopUseCase(
	awsRepo repository.AWSRepository,
	systemRepo repository.SystemRepository,
	gitRepo repository.GitRepository,
	simRepo repository.SimulationRepository,
	configRepo repository.ConfigRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *WorkshopUseCase {
	return &WorkshopUseCase{
		awsRepo:    awsRepo,
		systemRepo: systemRepo,
		gitRepo:    gitRepo,
		simRepo:    simRepo,
		configRepo: configRepo,
		exportRepo: exportRepo,
		console:    console,
	}
}

// concept is one numbered demonstration inside a lesson.
type concept struct {
	title string
	run   func(ctx context.Context) error
}

// prereq is one check that must pass before a lesson starts.
type prereq struct {
	name  string
	check func(ctx context.Context) error
}

// lessonEnv carrega o estado compartilhado pelos conceitos de uma mesma lição.
type lessonEnv struct {
	args    *types.CLIArgs
	profile string
	account entity.AccountContext
}

// lessonScript binds a lesson's metadata to the code that builds its concepts.
type lessonScript struct {
	info      entity.LessonInfo
	needsAWS  bool
	prereqs   func(env *lessonEnv) []prereq
	build     func(env *lessonEnv) []concept
	takeaways []string
	after     func(env *lessonEnv, result entity.LessonResult) error
}

// scripts devolve as lições na ordem em que são ensinadas.
func (uc *WorkshopUseCase) scripts() []*lessonScript {
	return []*lessonScript{
		uc.setupScript(),
		uc.basicsScript(),
		uc.pipelinesScript(),
		uc.resourcesScript(),
		uc.modelingScript(),
		uc.paramsScript(),
		uc.resilienceScript(),
		uc.debuggingScript(),
		uc.gitopsScript(),
		uc.concurrencyScript(),
		uc.capstoneScript(),
	}
}

// Lessons returns the workshop syllabus in teaching order.
func (uc *WorkshopUseCase) Lessons() []entity.LessonInfo {
	scripts := uc.scripts()
	infos := make([]entity.LessonInfo, len(scripts))
	for i, s := range scripts {
		infos[i] = s.info
	}
	return infos
}

// Reseed re-seeds the simulated data source. Zero keeps the current seed.
func (uc *WorkshopUseCase) Reseed(seed int64) {
	if seed != 0 {
		uc.simRepo.Reseed(seed)
	}
}

// ApplyConfigFile carrega o arquivo de configuração e preenche os argumentos
// que a linha de comando deixou vazios.
func (uc *WorkshopUseCase) ApplyConfigFile(args *types.CLIArgs) error {
	cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}
	args.ApplyConfig(cfg)
	return nil
}

// RunLesson executa uma lição do começo ao fim: cabeçalho, pré-requisitos,
// conexão com a conta quando necessária, conceitos numerados e o resumo.
func (uc *WorkshopUseCase) RunLesson(ctx context.Context, command string, args *types.CLIArgs) error {
	var script *lessonScript
	for _, s := range uc.scripts() {
		if s.info.Command == command {
			script = s
			break
		}
	}
	if script == nil {
		return fmt.Errorf("unknown lesson %q", command)
	}

	env := &lessonEnv{args: args}

	uc.console.Headline(fmt.Sprintf("Lesson %d | %s", script.info.Number, script.info.Title))
	uc.console.LogInfo("This lesson teaches: %s", script.info.Teaches)
	fmt.Println()

	// Pré-requisitos primeiro; sem eles a lição não começa.
	if script.prereqs != nil {
		for _, p := range script.prereqs(env) {
			status := uc.console.Status(fmt.Sprintf("Checking %s...", p.name))
			err := p.check(ctx)
			status.Stop()
			if err != nil {
				uc.console.LogError("Prerequisite %q failed: %s", p.name, err)
				return &types.PrerequisiteError{Check: p.name, Err: err}
			}
			uc.console.LogSuccess("%s: OK", p.name)
		}
		fmt.Println()
	}

	if script.needsAWS {
		if err := uc.connect(ctx, env); err != nil {
			return &types.PrerequisiteError{Check: "authenticated session", Err: err}
		}
	}

	result := uc.walkthrough(ctx, script.info, script.build(env))
	uc.printLessonSummary(script, result)

	if script.after != nil {
		return script.after(env, result)
	}
	return nil
}

// walkthrough percorre os conceitos em ordem, parando entre eles para o
// apresentador escolher seguir, pular o próximo ou encerrar a lição.
func (uc *WorkshopUseCase) walkthrough(ctx context.Context, info entity.LessonInfo, concepts []concept) entity.LessonResult {
	result := entity.LessonResult{Lesson: info}
	start := time.Now()

	i := 0
	for i < len(concepts) {
		c := concepts[i]
		uc.console.Section(i+1, len(concepts), c.title)

		conceptStart := time.Now()
		err := c.run(ctx)
		record := entity.ConceptResult{
			Number:  i + 1,
			Title:   c.title,
			Status:  entity.ConceptDone,
			Elapsed: time.Since(conceptStart),
		}
		if err != nil {
			record.Status = entity.ConceptFailed
			record.Error = err.Error()
			uc.console.LogError("Concept %d did not complete: %s", i+1, err)
		}
		result.Concepts = append(result.Concepts, record)

		if i+1 >= len(concepts) {
			break
		}

		switch uc.console.Pause("Ready for the next concept?") {
		case types.ContinueQuit:
			// Marca tudo o que falta como pulado e encerra.
			for j := i + 1; j < len(concepts); j++ {
				result.Concepts = append(result.Concepts, entity.ConceptResult{
					Number: j + 1,
					Title:  concepts[j].title,
					Status: entity.ConceptSkipped,
				})
			}
			result.Aborted = true
			result.Elapsed = time.Since(start)
			return result
		case types.ContinueSkip:
			uc.console.LogWarning("Skipping concept %d: %s", i+2, concepts[i+1].title)
			result.Concepts = append(result.Concepts, entity.ConceptResult{
				Number: i + 2,
				Title:  concepts[i+1].title,
				Status: entity.ConceptSkipped,
			})
			i += 2
		default:
			i++
		}
	}

	result.Elapsed = time.Since(start)
	return result
}

// printLessonSummary imprime a tabela de recapitulação e os pontos-chave.
func (uc *WorkshopUseCase) printLessonSummary(script *lessonScript, result entity.LessonResult) {
	fmt.Println()
	table := uc.console.CreateTable()
	table.AddColumn("#")
	table.AddColumn("Concept")
	table.AddColumn("Status")
	table.AddColumn("Time")

	for _, record := range result.Concepts {
		table.AddRow(
			fmt.Sprintf("%d", record.Number),
			record.Title,
			conceptStatusLabel(record.Status),
			conceptElapsedLabel(record),
		)
	}
	uc.console.Print(table.Render())

	if result.Aborted {
		uc.console.LogWarning("Lesson ended early by request.")
	}
	if failed := result.FailedCount(); failed > 0 {
		uc.console.LogWarning("%d concept(s) reported errors; scroll up for details.", failed)
	}

	uc.console.Printf("\n%s\n", pterm.FgCyan.Sprintf("Lesson %d finished in %s.",
		result.Lesson.Number, result.Elapsed.Round(time.Second)))

	if len(script.takeaways) > 0 {
		uc.console.LogInfo("What to remember:")
		uc.console.Bullets(script.takeaways)
	}
}

func conceptStatusLabel(status entity.ConceptStatus) string {
	switch status {
	case entity.ConceptDone:
		return pterm.FgGreen.Sprint("done")
	case entity.ConceptSkipped:
		return pterm.FgYellow.Sprint("skipped")
	default:
		return pterm.FgRed.Sprint("failed")
	}
}

func conceptElapsedLabel(record entity.ConceptResult) string {
	if record.Status == entity.ConceptSkipped {
		return "-"
	}
	return record.Elapsed.Round(time.Millisecond).String()
}

// resolveProfile decides which AWS profile the lesson uses based on CLI args.
func (uc *WorkshopUseCase) resolveProfile(requested string) (string, error) {
	availableProfiles := uc.awsRepo.GetAWSProfiles()
	if len(availableProfiles) == 0 {
		return "", types.ErrNoProfilesFound
	}

	if requested != "" {
		for _, availProfile := range availableProfiles {
			if requested == availProfile {
				return requested, nil
			}
		}
		uc.console.LogWarning("Profile '%s' not found in AWS configuration", requested)
		return "", types.ErrNoValidProfilesFound
	}

	// Check if default profile exists
	for _, profile := range availableProfiles {
		if profile == "default" {
			return "default", nil
		}
	}

	uc.console.LogWarning("No default profile found. Using profile '%s'.", availableProfiles[0])
	return availableProfiles[0], nil
}

// connect confirma a sessão com STS e apresenta a identidade na tela.
func (uc *WorkshopUseCase) connect(ctx context.Context, env *lessonEnv) error {
	status := uc.console.Status(fmt.Sprintf("Connecting to AWS with profile '%s'...", env.profile))
	account, err := uc.awsRepo.GetAccountContext(ctx, env.profile)
	status.Stop()
	if err != nil {
		uc.console.LogError("Could not confirm the AWS session: %s", err)
		return types.ErrNotAuthenticated
	}

	env.account = account
	uc.console.Panel("Connected", fmt.Sprintf(
		"Profile:  %s\nAccount:  %s\nIdentity: %s\nRegion:   %s",
		account.Profile, account.AccountID, account.ARN, account.Region))
	return nil
}

// regionsFor devolve as regiões pedidas na CLI ou as acessíveis pela conta.
func (uc *WorkshopUseCase) regionsFor(ctx context.Context, env *lessonEnv) []string {
	if len(env.args.Regions) > 0 {
		return env.args.Regions
	}

	regions, err := uc.awsRepo.GetAccessibleRegions(ctx, env.profile)
	if err != nil {
		uc.console.LogWarning("Could not get accessible regions for profile %s: %s", env.profile, err)
		return []string{"us-east-1", "us-west-2", "eu-west-1"} // defaults
	}
	return regions
}

// pré-requisitos comuns às lições

func (uc *WorkshopUseCase) prereqAWSCLI() prereq {
	return prereq{
		name: "AWS CLI on PATH",
		check: func(ctx context.Context) error {
			if _, err := uc.systemRepo.FindTool(ctx, "aws"); err != nil {
				return types.ErrAWSCLINotFound
			}
			return nil
		},
	}
}

func (uc *WorkshopUseCase) prereqGit() prereq {
	return prereq{
		name: "git on PATH",
		check: func(ctx context.Context) error {
			if _, err := uc.systemRepo.FindTool(ctx, "git"); err != nil {
				return types.ErrGitNotFound
			}
			return nil
		},
	}
}

func (uc *WorkshopUseCase) prereqProfile(env *lessonEnv) prereq {
	return prereq{
		name: "AWS profile",
		check: func(ctx context.Context) error {
			profile, err := uc.resolveProfile(env.args.Profile)
			if err != nil {
				return err
			}
			env.profile = profile
			return nil
		},
	}
}

// say imprime uma linha de narração da lição em cinza.
func (uc *WorkshopUseCase) say(format string, a ...interface{}) {
	uc.console.Printf("%s\n", pterm.FgGray.Sprintf(format, a...))
}

// sleepFor dorme respeitando o cancelamento do contexto.
func sleepFor(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
