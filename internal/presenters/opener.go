package presenters

import (
	"os/exec"
	"ratingd/internal/providers"
	"ratingd/internal/services"
	"ratingd/internal/structures"
	"runtime"
	"strings"
	"sync"
)

// OpenCommandAuto selects the desktop opener of the current OS.
const OpenCommandAuto = "auto"

type LoggingOpener struct {
	logger providers.Logger
}

func NewLoggingOpener(logger providers.Logger) *LoggingOpener {
	return &LoggingOpener{logger: logger}
}

func (o *LoggingOpener) Open(url string) {
	o.logger.Infof(providers.TypePrompt, "Store listing: %s", url)
}

// CommandOpener hands the URL to an external command without waiting for it.
type CommandOpener struct {
	name   string
	args   []string
	logger providers.Logger
	wg     sync.WaitGroup
}

// NewCommandOpener splits command on whitespace. The URL is appended as the last argument.
func NewCommandOpener(command string, logger providers.Logger) *CommandOpener {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = defaultOpenCommand()
	}
	return &CommandOpener{name: fields[0], args: fields[1:], logger: logger}
}

func defaultOpenCommand() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"cmd", "/c", "start"}
	case "darwin":
		return []string{"open"}
	default:
		return []string{"xdg-open"}
	}
}

func (o *CommandOpener) Open(url string) {
	args := append(append([]string{}, o.args...), url)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		if err := exec.Command(o.name, args...).Run(); err != nil {
			o.logger.Warnf(providers.TypePrompt, "Unable to open %s with %s: %v", url, o.name, err)
			return
		}
		o.logger.Debugf(providers.TypePrompt, "Opened %s with %s", url, o.name)
	}()
}

// Wait blocks until every started command has exited.
func (o *CommandOpener) Wait() {
	o.wg.Wait()
}

// NewOpenerProvider picks the opener from prompt.openCommand. The cleanup
// func waits for commands that are still running.
func NewOpenerProvider(conf *structures.Config, logger providers.Logger) (services.LinkOpener, func()) {
	switch conf.Prompt.OpenCommand {
	case "":
		return NewLoggingOpener(logger), func() {}
	case OpenCommandAuto:
		o := NewCommandOpener("", logger)
		return o, o.Wait
	default:
		o := NewCommandOpener(conf.Prompt.OpenCommand, logger)
		return o, o.Wait
	}
}
