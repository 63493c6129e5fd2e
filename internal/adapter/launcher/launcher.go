// Package launcher provides web-checkout launchers. The hand-off is
// fire-and-forget per the orchestrator's contract: a launcher never
// reports back.
package launcher

import (
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// Browser opens the system browser at the checkout URL.
type Browser struct {
	logger *zap.Logger
}

func NewBrowser(logger *zap.Logger) *Browser {
	return &Browser{logger: logger}
}

func (b *Browser) Launch(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		b.logger.Warn("failed to open browser", zap.String("url", url), zap.Error(err))
	}
}

// Log records the checkout URL instead of opening anything. Useful for
// headless environments.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Launch(url string) {
	l.logger.Info("web checkout url", zap.String("url", url))
}
