package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Preenchidos por ldflags no release. Em builds locais ficam vazios e o
// build info do VCS completa o que der.
var (
	Version   = "0.0.0-dev"
	Commit    = ""
	BuildTime = ""
)

func init() {
	fillFromBuildInfo()
}

// fillFromBuildInfo completa Version/Commit/BuildTime com os metadados que o
// toolchain embute (vcs.revision, vcs.time, vcs.tag, vcs.modified).
// Valores vindos de ldflags têm precedência e não são sobrescritos.
func fillFromBuildInfo() {
	if Version != "" && Version != "0.0.0-dev" {
		return
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if Commit == "" {
		if rev := settings["vcs.revision"]; len(rev) >= 7 {
			Commit = rev[:7]
		}
	}

	if BuildTime == "" {
		if raw := settings["vcs.time"]; raw != "" {
			if ts, err := time.Parse(time.RFC3339, raw); err == nil {
				BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
			}
		}
	}

	if tag := settings["vcs.tag"]; tag != "" {
		Version = strings.TrimPrefix(tag, "v")
		if strings.EqualFold(settings["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

// CheckLatestVersion consulta o GitHub pela release mais recente e avisa se
// houver algo mais novo. Falhas de rede são silenciosas; builds -dev nunca
// consultam.
func CheckLatestVersion(currentVersion string) {
	if strings.HasSuffix(currentVersion, "-dev") {
		return
	}

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get("https://api.github.com/repos/diillson/aws-workshop-go/releases/latest")
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if latest > currentVersion {
		pterm.Warning.Printfln("A new version of AWS Go Workshop is available: %s", latest)
		pterm.Info.Println("Update with: go install github.com/diillson/aws-workshop-go@latest")
	}
}

// FormatVersion monta a linha de versão exibida pelo comando version e pela
// lição de debugging. Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)".
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = "0.0.0-dev"
	}

	commit := Commit
	if commit == "" {
		commit = "development"
	}

	switch {
	case BuildTime != "":
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, commit, BuildTime)
	case Commit != "":
		return fmt.Sprintf("%s (commit: %s)", ver, commit)
	default:
		return fmt.Sprintf("%s (development)", ver)
	}
}
