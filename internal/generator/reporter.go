package generator

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter observes generation progress. The core never prints directly.
type Reporter interface {
	OnEntityStart(kind, codename string)
	OnResolverUsed(target, strategy string)
	OnFileWritten(path string)
}

// NopReporter ignores every event.
type NopReporter struct{}

func (NopReporter) OnEntityStart(string, string)  {}
func (NopReporter) OnResolverUsed(string, string) {}
func (NopReporter) OnFileWritten(string)          {}

// ConsoleReporter prints progress lines for the CLI.
type ConsoleReporter struct {
	Out     io.Writer
	Verbose bool
}

var highlight = color.New(color.FgYellow).SprintFunc()

func (r *ConsoleReporter) OnEntityStart(kind, codename string) {
	if r.Verbose {
		fmt.Fprintf(r.Out, "Processing %s '%s'\n", kind, highlight(codename))
	}
}

func (r *ConsoleReporter) OnResolverUsed(target, strategy string) {
	fmt.Fprintf(r.Out, "Using '%s' name resolver for %s\n", highlight(strategy), target)
}

func (r *ConsoleReporter) OnFileWritten(path string) {
	fmt.Fprintf(r.Out, "Created '%s'\n", highlight(path))
}
