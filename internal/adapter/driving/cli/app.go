package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diillson/aws-workshop-go/internal/application/usecase"
	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/shared/types"
	"github.com/diillson/aws-workshop-go/pkg/logging"
	"github.com/diillson/aws-workshop-go/pkg/version"
)

// CLIApp liga o cobra ao caso de uso do workshop.
type CLIApp struct {
	rootCmd         *cobra.Command
	workshopUseCase *usecase.WorkshopUseCase
	console         types.ConsoleInterface
	version         string
}

// NewCLIApp monta o comando raiz e um subcomando por lição.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:          "aws-workshop",
		Short:        "AWS Go Workshop CLI",
		Long:         "An instructor-led Go workshop taught against a real AWS account.\nEach lesson is a subcommand; start with 'aws-workshop setup'.",
		Version:      version.FormatVersion(),
		SilenceUsage: true,
		RunE:         app.runOverview,
	}
	rootCmd.SetVersionTemplate(`{{printf "AWS Go Workshop version: %s\n" .Version}}`)

	// Flags compartilhadas por todas as lições
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile to use (default: the 'default' profile)")
	rootCmd.PersistentFlags().StringSliceP("region", "r", nil, "AWS regions to scan (comma-separated; default: ask the account)")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Run without presenter pauses, for CI and recordings")
	rootCmd.PersistentFlags().Int64("seed", 0, "Seed for generated data (0: derive from the clock)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	// Flags do relatório do capstone
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Specify report types: csv, json, pdf (default: all three)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().Float64("budget", 0, "Monthly budget in USD for the capstone check (0: no budget)")
	rootCmd.PersistentFlags().IntP("months", "m", 0, "Months of history in the capstone trend (default: 6)")
	rootCmd.PersistentFlags().Bool("live", false, "Use Cost Explorer instead of generated data in the capstone")

	app.rootCmd = rootCmd
	return app
}

// Execute roda o comando raiz.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetConsole sets the console implementation for the CLI app.
func (app *CLIApp) SetConsole(console types.ConsoleInterface) {
	app.console = console
}

// SetWorkshopUseCase define o caso de uso e registra um subcomando por lição.
func (app *CLIApp) SetWorkshopUseCase(useCase *usecase.WorkshopUseCase) {
	app.workshopUseCase = useCase

	for _, info := range useCase.Lessons() {
		app.rootCmd.AddCommand(app.lessonCommand(info))
	}
	app.rootCmd.AddCommand(app.listCommand())
}

// lessonCommand cria o subcomando cobra de uma lição.
func (app *CLIApp) lessonCommand(info entity.LessonInfo) *cobra.Command {
	return &cobra.Command{
		Use:   info.Command,
		Short: fmt.Sprintf("Lesson %d: %s", info.Number, info.Title),
		Long:  fmt.Sprintf("Lesson %d (%s) teaches %s.", info.Number, info.Title, info.Teaches),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runLesson(info.Command)
		},
	}
}

// listCommand imprime o currículo sem rodar lição alguma.
func (app *CLIApp) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the workshop lessons in teaching order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.printSyllabus()
			return nil
		},
	}
}

// parseArgs converte as flags persistentes em CLIArgs, aplicando o arquivo
// de configuração quando passado.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.PersistentFlags()

	configFile, _ := flags.GetString("config-file")
	profile, _ := flags.GetString("profile")
	regions, _ := flags.GetStringSlice("region")
	nonInteractive, _ := flags.GetBool("non-interactive")
	seed, _ := flags.GetInt64("seed")
	verbose, _ := flags.GetBool("verbose")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	budget, _ := flags.GetFloat64("budget")
	months, _ := flags.GetInt("months")
	live, _ := flags.GetBool("live")

	args := &types.CLIArgs{
		ConfigFile:     configFile,
		Profile:        profile,
		Regions:        regions,
		NonInteractive: nonInteractive,
		Seed:           seed,
		Verbose:        verbose,
		ReportName:     reportName,
		ReportType:     reportType,
		Dir:            dir,
		Budget:         budget,
		Months:         months,
		Live:           live,
	}

	if args.ConfigFile != "" {
		if err := app.workshopUseCase.ApplyConfigFile(args); err != nil {
			return nil, err
		}
	}

	// Relatórios sempre saem em um caminho absoluto.
	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

// runLesson é o ponto de entrada comum de todo subcomando de lição.
func (app *CLIApp) runLesson(command string) error {
	displayWelcomeBanner()
	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	app.console.SetNonInteractive(cliArgs.NonInteractive)
	logging.SetVerbose(cliArgs.Verbose)
	app.workshopUseCase.Reseed(cliArgs.Seed)

	ctx := context.Background()
	return app.workshopUseCase.RunLesson(ctx, command, cliArgs)
}

// runOverview roda quando nenhum subcomando é passado.
func (app *CLIApp) runOverview(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner()
	go version.CheckLatestVersion(app.version)

	app.printSyllabus()
	return nil
}

func (app *CLIApp) printSyllabus() {
	table := app.console.CreateTable()
	table.AddColumn("#")
	table.AddColumn("Command")
	table.AddColumn("Title")
	table.AddColumn("Teaches")
	for _, info := range app.workshopUseCase.Lessons() {
		table.AddRow(fmt.Sprintf("%d", info.Number), info.Command, info.Title, info.Teaches)
	}
	app.console.Print(table.Render())
	app.console.LogInfo("Run a lesson with 'aws-workshop <command>'. Start with 'aws-workshop setup'.")
}
