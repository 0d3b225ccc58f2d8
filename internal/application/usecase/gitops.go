package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
)

// gitopsScript dirige o git como um processo externo: cria um repositório de
// rascunho, lê o status porcelain e percorre o histórico.
func (uc *WorkshopUseCase) gitopsScript() *lessonScript {
	var scratch string

	return &lessonScript{
		info: entity.LessonInfo{
			Number:  9,
			Command: "gitops",
			Title:   "Driving git",
			Teaches: "external processes and parsing porcelain output",
		},
		prereqs: func(env *lessonEnv) []prereq {
			return []prereq{uc.prereqGit()}
		},
		build: func(env *lessonEnv) []concept {
			return uc.gitopsConcepts(env, &scratch)
		},
		takeaways: []string{
			"exec.CommandContext runs the tool; the context kills it if the lesson is cancelled.",
			"Parse --porcelain output, never the human-readable one; it is a stable contract.",
			"Capture stderr separately; that is where git explains failures.",
			"Scratch repositories under os.MkdirTemp make destructive demos safe.",
		},
		after: func(env *lessonEnv, result entity.LessonResult) error {
			if scratch != "" {
				os.RemoveAll(scratch)
			}
			return nil
		},
	}
}

func (uc *WorkshopUseCase) gitopsConcepts(env *lessonEnv, scratch *string) []concept {
	return []concept{
		{
			title: "Which git am I running?",
			run: func(ctx context.Context) error {
				tool, err := uc.systemRepo.FindTool(ctx, "git")
				if err != nil {
					return err
				}
				gitVersion, err := uc.gitRepo.Version(ctx)
				if err != nil {
					return err
				}

				uc.console.Printf("binary  => %s\n", tool.Path)
				uc.console.Printf("version => %s\n", gitVersion)
				uc.say("Shelling out means depending on PATH; always verify before the demo starts.")
				return nil
			},
		},
		{
			title: "A scratch repository",
			run: func(ctx context.Context) error {
				dir, err := os.MkdirTemp("", "workshop-git")
				if err != nil {
					return err
				}
				*scratch = dir

				uc.say("git init in a temp directory gives us a sandbox nobody will miss:")
				if err := uc.gitRepo.InitScratch(ctx, dir); err != nil {
					return err
				}
				uc.console.LogSuccess("Initialized %s", dir)
				uc.console.Printf("IsRepository(%s) => %t\n", filepath.Base(dir), uc.gitRepo.IsRepository(ctx, dir))

				runbook := "# Incident runbook\n\n1. Check the dashboard.\n2. Page the on-call.\n"
				servers := "web-01 us-east-1 running\nweb-02 us-east-1 running\ndb-01  us-west-2 stopped\n"
				if err := os.WriteFile(filepath.Join(dir, "runbook.md"), []byte(runbook), 0o644); err != nil {
					return err
				}
				if err := os.WriteFile(filepath.Join(dir, "servers.txt"), []byte(servers), 0o644); err != nil {
					return err
				}
				uc.console.LogInfo("Wrote runbook.md and servers.txt into the scratch repo.")
				return nil
			},
		},
		{
			title: "Reading status",
			run: func(ctx context.Context) error {
				if *scratch == "" {
					return fmt.Errorf("the scratch repository was skipped; run the previous concept first")
				}

				gitStatus, err := uc.gitRepo.Status(ctx, *scratch)
				if err != nil {
					return err
				}

				uc.say("`git status --porcelain=v1 --branch` parses into a struct, not a wall of text:")
				table := uc.console.CreateTable()
				table.AddColumn("Field")
				table.AddColumn("Value")
				table.AddRow("Branch", gitStatus.Branch)
				table.AddRow("Staged", fmt.Sprintf("%d", gitStatus.Staged))
				table.AddRow("Modified", fmt.Sprintf("%d", gitStatus.Modified))
				table.AddRow("Untracked", fmt.Sprintf("%d", gitStatus.Untracked))
				table.AddRow("Clean", fmt.Sprintf("%t", gitStatus.Clean()))
				uc.console.Print(table.Render())

				if !gitStatus.Clean() {
					uc.console.LogWarning("The tree is dirty, as expected: our two files are untracked.")
				}
				return nil
			},
		},
		{
			title: "Snapshot the work",
			run: func(ctx context.Context) error {
				if *scratch == "" {
					return fmt.Errorf("the scratch repository was skipped; run concept 2 first")
				}

				uc.say("One helper stages everything and commits:")
				if err := uc.gitRepo.Snapshot(ctx, *scratch, "workshop: first snapshot"); err != nil {
					return err
				}
				uc.console.LogSuccess("Snapshot committed.")

				gitStatus, err := uc.gitRepo.Status(ctx, *scratch)
				if err != nil {
					return err
				}
				uc.console.Printf("Clean() now => %t\n", gitStatus.Clean())
				return nil
			},
		},
		{
			title: "Walking history",
			run: func(ctx context.Context) error {
				if *scratch == "" {
					return fmt.Errorf("the scratch repository was skipped; run concept 2 first")
				}

				// Uma segunda mudança para o log ter o que contar.
				note := "\n3. Roll back the deployment.\n"
				path := filepath.Join(*scratch, "runbook.md")
				existing, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, append(existing, note...), 0o644); err != nil {
					return err
				}
				if err := uc.gitRepo.Snapshot(ctx, *scratch, "workshop: extend the runbook"); err != nil {
					return err
				}

				commits, err := uc.gitRepo.RecentCommits(ctx, *scratch, 5)
				if err != nil {
					return err
				}

				table := uc.console.CreateTable()
				table.AddColumn("Commit")
				table.AddColumn("Author")
				table.AddColumn("When")
				table.AddColumn("Subject")
				for _, c := range commits {
					table.AddRow(pterm.FgYellow.Sprint(c.ShortHash()), c.Author, humanize.Time(c.When), c.Subject)
				}
				uc.console.Print(table.Render())

				remotes, err := uc.gitRepo.Remotes(ctx, *scratch)
				if err != nil {
					return err
				}
				if len(remotes) == 0 {
					uc.console.LogInfo("No remotes configured, which is expected for a scratch repo.")
				} else {
					for name, url := range remotes {
						uc.console.Printf("remote %s => %s\n", name, url)
					}
				}
				return nil
			},
		},
	}
}
