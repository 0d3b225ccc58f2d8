package usecase

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/shared/types"
)

// setupScript é a lição "doctor": confere a máquina do aluno antes do resto
// do workshop. Qualquer conceito que falhe derruba a lição com status 1.
func (uc *WorkshopUseCase) setupScript() *lessonScript {
	return &lessonScript{
		info: entity.LessonInfo{
			Number:  1,
			Command: "setup",
			Title:   "Environment Setup",
			Teaches: "prerequisite checks, exec.LookPath and explicit error returns",
		},
		build: uc.setupConcepts,
		takeaways: []string{
			"Go reports problems with error values, not exceptions; check them where they happen.",
			"exec.LookPath answers 'is this tool installed?' without running anything.",
			"Profiles live in ~/.aws/config and ~/.aws/credentials; STS confirms they work.",
			"A setup command that exits non-zero keeps broken environments out of the classroom.",
		},
		after: func(env *lessonEnv, result entity.LessonResult) error {
			if failed := result.FailedCount(); failed > 0 {
				uc.console.LogError("Environment is not ready: %d check(s) failed.", failed)
				return &types.PrerequisiteError{
					Check: "environment setup",
					Err:   fmt.Errorf("%d of %d checks failed", failed, len(result.Concepts)),
				}
			}
			if !result.Aborted {
				uc.console.LogSuccess("Environment ready. Continue with 'aws-workshop basics'.")
			}
			return nil
		},
	}
}

func (uc *WorkshopUseCase) setupConcepts(env *lessonEnv) []concept {
	return []concept{
		{
			title: "Inspect the Go runtime",
			run: func(ctx context.Context) error {
				info := uc.systemRepo.RuntimeInfo()
				uc.say("Everything this workshop runs on ships inside one static binary.")

				table := uc.console.CreateTable()
				table.AddColumn("Property")
				table.AddColumn("Value")
				table.AddRow("Go version", info.GoVersion)
				table.AddRow("OS / Arch", fmt.Sprintf("%s/%s", info.OS, info.Arch))
				table.AddRow("Logical CPUs", fmt.Sprintf("%d", info.NumCPU))
				if info.Module != "" {
					table.AddRow("Module", info.Module)
				}
				uc.console.Print(table.Render())
				return nil
			},
		},
		{
			title: "Locate the AWS CLI",
			run: func(ctx context.Context) error {
				uc.say("exec.LookPath walks PATH the same way your shell does.")

				tool, err := uc.systemRepo.FindTool(ctx, "aws")
				if err != nil {
					uc.console.LogError("The AWS CLI is not installed or not on PATH.")
					return types.ErrAWSCLINotFound
				}

				uc.console.LogSuccess("Found %s", tool.Path)
				if tool.Version != "" {
					uc.console.LogInfo("Version: %s", tool.Version)
				}
				return nil
			},
		},
		{
			title: "Locate git",
			run: func(ctx context.Context) error {
				tool, err := uc.systemRepo.FindTool(ctx, "git")
				if err != nil {
					uc.console.LogError("git is not installed or not on PATH.")
					return types.ErrGitNotFound
				}

				uc.console.LogSuccess("Found %s", tool.Path)
				if tool.Version != "" {
					uc.console.LogInfo("Version: %s", tool.Version)
				}
				return nil
			},
		},
		{
			title: "Discover AWS profiles",
			run: func(ctx context.Context) error {
				uc.say("The SDK reads the same ~/.aws files the CLI writes; no extra setup.")

				profiles := uc.awsRepo.GetAWSProfiles()
				if len(profiles) == 0 {
					uc.console.LogError("No profiles found. Run 'aws configure' and try again.")
					return types.ErrNoProfilesFound
				}

				table := uc.console.CreateTable()
				table.AddColumn("Profile")
				for _, p := range profiles {
					table.AddRow(pterm.FgMagenta.Sprint(p))
				}
				uc.console.Print(table.Render())

				profile, err := uc.resolveProfile(env.args.Profile)
				if err != nil {
					return err
				}
				env.profile = profile
				uc.console.LogInfo("Lessons will use profile '%s'.", profile)
				return nil
			},
		},
		{
			title: "Confirm the session with STS",
			run: func(ctx context.Context) error {
				if env.profile == "" {
					profile, err := uc.resolveProfile(env.args.Profile)
					if err != nil {
						return err
					}
					env.profile = profile
				}

				uc.say("sts:GetCallerIdentity is the cheapest call that proves credentials work.")

				status := uc.console.Status("Calling STS GetCallerIdentity...")
				account, err := uc.awsRepo.GetAccountContext(ctx, env.profile)
				status.Stop()
				if err != nil {
					uc.console.LogError("STS rejected the call: %s", err)
					return types.ErrNotAuthenticated
				}

				env.account = account
				uc.console.Panel("Authenticated", fmt.Sprintf(
					"Account:  %s\nIdentity: %s\nUser ID:  %s\nRegion:   %s",
					account.AccountID, account.ARN, account.UserID, account.Region))
				return nil
			},
		},
	}
}
