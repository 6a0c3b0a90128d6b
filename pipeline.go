package flash

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/allbin/fluidnc-flash/internal/logger"
)

// StepKind identifies one pipeline step.
type StepKind string

const (
	StepBuild    StepKind = "build"
	StepErase    StepKind = "erase"
	StepUpload   StepKind = "upload"
	StepUploadFS StepKind = "uploadfs"
)

// StepStatus is the outcome of a step.
type StepStatus int

const (
	StatusSucceeded StepStatus = iota
	StatusSkipped
	StatusFailed
)

func (s StepStatus) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Step is one planned pio invocation.
type Step struct {
	Kind  StepKind
	Title string
	Args  []string // pio arguments, without the executable

	// SkipReason is set for steps that are planned but will not run.
	SkipReason string
	// MissingDataDir marks an uploadfs step skipped because the data
	// directory does not exist.
	MissingDataDir bool
}

// Outcome records what happened to a step.
type Outcome struct {
	Kind     StepKind
	Status   StepStatus
	Duration time.Duration
}

// Report lists step outcomes in execution order.
type Report struct {
	Outcomes []Outcome
}

// Ran returns the kinds of the steps that were executed.
func (r Report) Ran() []StepKind {
	var kinds []StepKind
	for _, o := range r.Outcomes {
		if o.Status != StatusSkipped {
			kinds = append(kinds, o.Kind)
		}
	}
	return kinds
}

// Plan returns the ordered steps for cfg uploading through port.
// dataDirExists reports whether the filesystem image source is present.
func Plan(cfg Config, port string, dataDirExists bool) []Step {
	env := cfg.Environment
	steps := []Step{{
		Kind:  StepBuild,
		Title: fmt.Sprintf("Build (%s)", env),
		Args:  []string{"run", "-e", env},
	}}

	erase := Step{
		Kind:  StepErase,
		Title: "Erase flash",
		Args:  []string{"run", "-e", env, "-t", "erase", "--upload-port", port},
	}
	if cfg.SkipErase {
		erase.SkipReason = "Skipping erase (per --no-erase)"
	}
	steps = append(steps, erase, Step{
		Kind:  StepUpload,
		Title: "Upload firmware",
		Args:  []string{"run", "-e", env, "-t", "upload", "--upload-port", port},
	})

	fs := Step{
		Kind:  StepUploadFS,
		Title: "Upload filesystem (data/)",
		Args:  []string{"run", "-e", env, "-t", "uploadfs", "--upload-port", port},
	}
	switch {
	case cfg.SkipFilesystem:
		fs.SkipReason = "Skipping filesystem upload (per --no-fs)"
	case !dataDirExists:
		fs.SkipReason = "No data/ directory found, skipping filesystem upload."
		fs.MissingDataDir = true
	}
	return append(steps, fs)
}

// Pipeline runs the flashing steps through a Toolchain.
type Pipeline struct {
	tc     *Toolchain
	report *Reporter
	log    *logger.Logger
}

// NewPipeline returns a Pipeline reporting to stdout.
func NewPipeline(tc *Toolchain) *Pipeline {
	return &Pipeline{tc: tc, report: NewReporter(nil)}
}

// WithReporter sets the progress output.
func (p *Pipeline) WithReporter(r *Reporter) *Pipeline {
	p.report = r
	return p
}

// WithLogger attaches a diagnostic logger.
func (p *Pipeline) WithLogger(log *logger.Logger) *Pipeline {
	p.log = log
	return p
}

// Run executes the planned steps in order and stops at the first failure,
// which is returned as a *StepError.
func (p *Pipeline) Run(ctx context.Context, cfg Config, port string) (Report, error) {
	var report Report
	for _, step := range Plan(cfg, port, dirExists(cfg.DataDir)) {
		if step.SkipReason != "" {
			p.skip(cfg, port, step)
			report.Outcomes = append(report.Outcomes, Outcome{Kind: step.Kind, Status: StatusSkipped})
			continue
		}

		outcome, err := p.runStep(ctx, step)
		report.Outcomes = append(report.Outcomes, outcome)
		if err != nil {
			if step.Kind == StepUploadFS {
				p.report.Note("Filesystem upload failed. Check that board_build.filesystem matches your data image (spiffs vs littlefs).")
			}
			return report, &StepError{Step: step.Kind, Err: err}
		}
	}
	return report, nil
}

func (p *Pipeline) runStep(ctx context.Context, step Step) (Outcome, error) {
	argv := p.tc.Command(step.Args...)
	log := p.log.ForStep(string(step.Kind))

	p.report.StepStart(step.Title, argv)
	log.Info("step started")

	start := time.Now()
	res, err := p.tc.Execute(ctx, step.Args...)
	outcome := Outcome{Kind: step.Kind, Duration: time.Since(start)}

	if err != nil {
		p.report.StepFailed(res, err)
		log.Error(err, "step failed")
		outcome.Status = StatusFailed
		return outcome, err
	}

	p.report.StepOutput(res)
	p.report.StepSucceeded(step.Title)
	log.With("duration", outcome.Duration.String()).Info("step succeeded")
	outcome.Status = StatusSucceeded
	return outcome, nil
}

func (p *Pipeline) skip(cfg Config, port string, step Step) {
	if !step.MissingDataDir {
		p.report.Skipped(step.SkipReason)
		return
	}
	p.report.Warn(step.SkipReason)
	p.report.Hint(
		"If FluidNC complains about missing config.yaml after boot, create a project-level 'data/' folder",
		"and put your defaults there (e.g. 'config.yaml' plus any other required files), then run:",
		"  "+CommandLine(p.tc.Command(step.Args...)),
	)
	p.log.With("data_dir", cfg.DataDir, "port", port).Info("data directory missing")
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
