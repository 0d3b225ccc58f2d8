package main

import (
	"fmt"
	"os"

	"github.com/diillson/aws-workshop-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-workshop-go/internal/adapter/driven/config"
	"github.com/diillson/aws-workshop-go/internal/adapter/driven/export"
	"github.com/diillson/aws-workshop-go/internal/adapter/driven/git"
	"github.com/diillson/aws-workshop-go/internal/adapter/driven/simulate"
	"github.com/diillson/aws-workshop-go/internal/adapter/driven/system"
	"github.com/diillson/aws-workshop-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-workshop-go/internal/application/usecase"
	"github.com/diillson/aws-workshop-go/pkg/console"
	"github.com/diillson/aws-workshop-go/pkg/logging"
	"github.com/diillson/aws-workshop-go/pkg/version"
)

func main() {
	// Configura o logger antes de qualquer outra coisa
	logging.InitLogger()

	app := cli.NewCLIApp(version.Version)

	// Adapters de saída; seed 0 = semente aleatória até --seed chegar.
	awsRepo := aws.NewAWSRepository()
	systemRepo := system.NewSystemRepository()
	gitRepo := git.NewGitRepository()
	simRepo := simulate.NewSimulationRepository(0)
	configRepo := config.NewConfigRepository()
	exportRepo := export.NewExportRepository()
	consoleImpl := console.NewConsole()

	workshopUseCase := usecase.NewWorkshopUseCase(
		awsRepo,
		systemRepo,
		gitRepo,
		simRepo,
		configRepo,
		exportRepo,
		consoleImpl,
	)

	// Define o caso de uso e o console no aplicativo CLI
	app.SetConsole(consoleImpl)
	app.SetWorkshopUseCase(workshopUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
