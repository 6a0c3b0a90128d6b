package flash

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/fluidnc-flash/internal/ui/styles"
)

// Reporter writes the user-facing progress of a run.
type Reporter struct {
	w     io.Writer
	theme styles.Theme
}

// NewReporter returns a Reporter writing to w, or os.Stdout when w is nil.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{w: w, theme: styles.New(lipgloss.NewRenderer(w))}
}

// StepStart announces a step and the command about to run.
func (r *Reporter) StepStart(title string, argv []string) {
	fmt.Fprintf(r.w, "\n%s\n%s\n",
		r.theme.Step.Render("==> "+title),
		r.theme.Command.Render("$ "+CommandLine(argv)))
}

// StepOutput prints whatever the command captured on both streams.
// Tool output is passed through unstyled.
func (r *Reporter) StepOutput(res Result) {
	if res.Stdout != "" {
		fmt.Fprintln(r.w, res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprintln(r.w, res.Stderr)
	}
}

// StepFailed prints the failure of a step.
func (r *Reporter) StepFailed(res Result, err error) {
	if res.Stdout != "" {
		fmt.Fprintln(r.w, res.Stdout)
	}
	msg := res.Stderr
	if msg == "" && err != nil {
		msg = err.Error()
	}
	fmt.Fprintln(r.w, r.theme.Error.Render("ERROR:"), msg)
}

// StepSucceeded confirms a step.
func (r *Reporter) StepSucceeded(title string) {
	fmt.Fprintln(r.w, r.theme.Success.Render("✓ "+title))
}

// Skipped announces a step that will not run.
func (r *Reporter) Skipped(msg string) {
	fmt.Fprintf(r.w, "\n%s\n", r.theme.Step.Render("==> "+msg))
}

// Warn prints an informational warning.
func (r *Reporter) Warn(msg string) {
	fmt.Fprintf(r.w, "\n%s\n", r.theme.Warning.Render("⚠ "+msg))
}

// Hint prints indented guidance lines.
func (r *Reporter) Hint(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(r.w, r.theme.Hint.Render("   "+line))
	}
}

// Note prints a standalone note after a failure.
func (r *Reporter) Note(msg string) {
	fmt.Fprintf(r.w, "\n%s\n", r.theme.Warning.Render("NOTE: "+msg))
}

// Info prints a plain line.
func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Error prints a fatal error.
func (r *Reporter) Error(err error) {
	fmt.Fprintln(r.w, r.theme.Error.Render("✗"), capitalize(err.Error()))
}

// Prompt prints s followed by a space and no newline.
func (r *Reporter) Prompt(s string) {
	fmt.Fprint(r.w, r.theme.Prompt.Render(s), " ")
}

// Done prints the completion banner with the command to watch the board.
func (r *Reporter) Done(monitor []string) {
	fmt.Fprintf(r.w, "\n%s\n", r.theme.Success.Render("✅ Done. To watch logs:"))
	fmt.Fprintf(r.w, "  %s\n", CommandLine(monitor))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
