// RackPlanner: server rack layout editor
//
// A cross-platform desktop application for planning equipment, vertical
// PDUs and shelf accessories across racks, with PDF, PNG, DXF and Excel
// export.
//
// Build:
//   go build -o rackplanner ./cmd/rackplanner
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o rackplanner.exe ./cmd/rackplanner
//   GOOS=darwin  GOARCH=amd64 go build -o rackplanner-darwin ./cmd/rackplanner
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/project"
	"github.com/piwi3910/RackPlanner/internal/ui"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})
	if os.Getenv("RACKPLANNER_DEBUG") != "" {
		logger.SetLevel(log.DebugLevel)
	}

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warn("failed to load settings, using defaults", "err", err)
		config = model.DefaultAppConfig()
	}

	application := app.NewWithID("com.piwi3910.rackplanner")
	th := ui.NewTheme(config.Theme)
	application.Settings().SetTheme(th)

	window := application.NewWindow("RackPlanner")

	appUI := ui.NewApp(window, config, th, logger)
	window.SetContent(appUI.Build())
	appUI.SetupMenus()
	window.Resize(fyne.NewSize(1400, 850))
	window.CenterOnScreen()
	window.ShowAndRun()
}
