package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/aws-workshop-go/pkg/version"
)

// displayWelcomeBanner imprime o logo do workshop e a versão formatada.
func displayWelcomeBanner() {
	banner := `
          /$$$$$$  /$$      /$$  /$$$$$$         /$$$$$$   /$$$$$$
         /$$__  $$| $$  /$ | $$ /$$__  $$       /$$__  $$ /$$__  $$
        | $$  \ $$| $$ /$$$| $$| $$  \__/      | $$  \__/| $$  \ $$
        | $$$$$$$$| $$/$$ $$ $$|  $$$$$$       | $$ /$$$$| $$  | $$
        | $$__  $$| $$$$_  $$$$ \____  $$      | $$|_  $$| $$  | $$
        | $$  | $$| $$$/ \  $$$ /$$  \ $$      | $$  \ $$| $$  | $$
        | $$  | $$| $$/   \  $$|  $$$$$$/      |  $$$$$$/|  $$$$$$/
        |__/  |__/|__/     \__/ \______/        \______/  \______/
        `
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(yellow(banner))
	fmt.Println(blue(fmt.Sprintf("AWS Go Workshop CLI (v%s)", version.FormatVersion())))
}
