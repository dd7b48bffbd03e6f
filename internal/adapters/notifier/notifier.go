// Package notifier provides ports.Notifier adapters.
package notifier

import (
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Console prints notices to a terminal and mirrors them into the log.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	logger *zap.Logger
	label  *color.Color
	errMsg *color.Color
}

// NewConsole creates a console notifier writing to out.
func NewConsole(out io.Writer, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{
		out:    out,
		logger: logger,
		label:  color.New(color.FgCyan, color.Bold),
		errMsg: color.New(color.FgRed),
	}
}

// Notify prints "notice: message". Error notices are shown in red.
func (c *Console) Notify(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.label.Fprint(c.out, "notice: ")
	if strings.HasPrefix(message, "Error") {
		c.errMsg.Fprintln(c.out, message)
	} else {
		io.WriteString(c.out, message+"\n")
	}
	c.logger.Info(message, zap.String("module", "notice"))
}

// Recorder keeps notices in memory, for the HTTP bridge and tests.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// Notify stores message.
func (r *Recorder) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Messages returns the notices recorded so far.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Multi fans notices out to several notifiers.
type Multi []interface{ Notify(string) }

// Notify forwards message to every notifier.
func (m Multi) Notify(message string) {
	for _, n := range m {
		n.Notify(message)
	}
}
