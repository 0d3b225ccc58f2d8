package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/shared/types"
)

// paramsScript mostra como o binário decide seus parâmetros: flags da linha
// de comando, variáveis de ambiente e arquivos de configuração, nessa ordem.
func (uc *WorkshopUseCase) paramsScript() *lessonScript {
	return &lessonScript{
		info: entity.LessonInfo{
			Number:  6,
			Command: "params",
			Title:   "Flags, Env and Config",
			Teaches: "layering flags, environment variables and config files",
		},
		build: uc.paramsConcepts,
		takeaways: []string{
			"Flags beat config files; config files beat built-in defaults.",
			"os.LookupEnv's two-value form tells 'unset' apart from 'set to empty'.",
			"One loader, three formats: pick the unmarshaler by file extension.",
			"Struct tags map Go fields to whatever the file format calls them.",
		},
	}
}

func (uc *WorkshopUseCase) paramsConcepts(env *lessonEnv) []concept {
	return []concept{
		{
			title: "What the flags parsed",
			run: func(ctx context.Context) error {
				uc.say("Every lesson receives the same CLIArgs struct the root command filled in:")
				uc.console.Printf("%+v\n\n", *env.args)

				table := uc.console.CreateTable()
				table.AddColumn("Flag")
				table.AddColumn("Value")
				table.AddRow("--profile", orDefault(env.args.Profile, "(resolve from ~/.aws)"))
				table.AddRow("--region", orDefault(strings.Join(env.args.Regions, ", "), "(ask the account)"))
				table.AddRow("--non-interactive", fmt.Sprintf("%t", env.args.NonInteractive))
				table.AddRow("--seed", fmt.Sprintf("%d", env.args.Seed))
				table.AddRow("--dir", orDefault(env.args.Dir, "(current directory)"))
				uc.console.Print(table.Render())
				return nil
			},
		},
		{
			title: "Environment lookups",
			run: func(ctx context.Context) error {
				uc.say("os.LookupEnv returns the value and whether the variable exists at all:")

				for _, name := range []string{"AWS_PROFILE", "AWS_REGION", "WORKSHOP_LOG"} {
					value, ok := os.LookupEnv(name)
					if ok {
						uc.console.Printf("  %s = %q\n", name, value)
					} else {
						uc.console.Printf("  %s is %s\n", name, pterm.FgYellow.Sprint("not set"))
					}
				}

				uc.say("The SDK honours AWS_PROFILE and AWS_REGION before our flags even run.")
				return nil
			},
		},
		{
			title: "Config files three ways",
			run: func(ctx context.Context) error {
				dir, err := os.MkdirTemp("", "workshop-config")
				if err != nil {
					return err
				}
				defer os.RemoveAll(dir)

				files := map[string]string{
					"workshop.toml": "profile = \"training\"\nregions = [\"us-east-1\", \"sa-east-1\"]\nbudget = 250.0\n",
					"workshop.yaml": "profile: training\nregions:\n  - us-east-1\n  - sa-east-1\nbudget: 250\n",
					"workshop.json": "{\"profile\": \"training\", \"regions\": [\"us-east-1\", \"sa-east-1\"], \"budget\": 250}\n",
				}

				uc.say("The same settings written three ways, parsed by one loader:")
				for _, name := range []string{"workshop.toml", "workshop.yaml", "workshop.json"} {
					path := filepath.Join(dir, name)
					if err := os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
						return err
					}

					cfg, err := uc.configRepo.LoadConfigFile(path)
					if err != nil {
						return err
					}
					uc.console.Printf("  %-14s => profile=%q regions=%v budget=%.0f\n",
						name, cfg.Profile, cfg.Regions, cfg.Budget)
				}

				uc.say("An extension the loader does not know is an error, not a guess:")
				badPath := filepath.Join(dir, "workshop.ini")
				if err := os.WriteFile(badPath, []byte("profile=training\n"), 0o644); err != nil {
					return err
				}
				if _, err := uc.configRepo.LoadConfigFile(badPath); err != nil {
					uc.console.LogError("%s", err)
				}
				return nil
			},
		},
		{
			title: "Precedence: flags win",
			run: func(ctx context.Context) error {
				uc.say("ApplyConfig only fills what the command line left empty. Watch:")

				args := types.CLIArgs{Profile: "from-flag"}
				cfg := &types.Config{
					Profile: "from-file",
					Regions: []string{"eu-central-1"},
					Budget:  500,
				}

				uc.console.Printf("before: profile=%q regions=%v budget=%.0f\n", args.Profile, args.Regions, args.Budget)
				args.ApplyConfig(cfg)
				uc.console.Printf("after:  profile=%q regions=%v budget=%.0f\n", args.Profile, args.Regions, args.Budget)

				uc.say("The profile flag survived; regions and budget were adopted from the file.")
				return nil
			},
		},
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
