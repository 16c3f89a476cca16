package host

import (
	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/clipstitch/internal/logging"
)

// Console is the CLI host: progress renders as a terminal bar, status lines
// go through the run logger, listings come straight from the filesystem.
type Console struct {
	log *logging.Logger
	bar *progressbar.ProgressBar
}

// NewConsole returns a console host. When showBar is false (verbose or
// dry-run output would fight with the bar) progress updates are dropped and
// only status lines are shown.
func NewConsole(log *logging.Logger, showBar bool) *Console {
	c := &Console{log: log}
	if showBar {
		c.bar = progressbar.NewOptions(100,
			progressbar.OptionSetDescription("processing"),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
	}
	return c
}

func (c *Console) ReportProgress(percent float64) {
	if c.bar == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	_ = c.bar.Set(int(percent))
}

func (c *Console) Status(line string) {
	if c.bar != nil {
		_ = c.bar.Clear()
	}
	c.log.Info("%s", line)
}

func (c *Console) ListFiles(folder string) ([]string, error) {
	return listDir(folder)
}

// RefreshFiles is a no-op for the console: nothing is cached, the next
// ListFiles re-reads the folder.
func (c *Console) RefreshFiles(folder string) {}

// Finish completes and clears the bar, if one is shown.
func (c *Console) Finish() {
	if c.bar != nil {
		_ = c.bar.Finish()
	}
}
