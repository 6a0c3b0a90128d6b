/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"

	flash "github.com/allbin/fluidnc-flash"
)

// runFlash resolves the upload port and runs the pipeline. Every failure is
// printed before it is returned.
func runFlash(ctx context.Context, s settings, stdio flash.Stdio) error {
	report := flash.NewReporter(stdio.Out)
	fail := func(err error) error {
		report.Error(err)
		return err
	}

	log, err := s.logger(stdio)
	if err != nil {
		return fail(err)
	}

	cfg, err := s.config()
	if err != nil {
		return fail(err)
	}

	tc, err := s.toolchain(log)
	if err != nil {
		return fail(err)
	}

	port, err := s.resolver(tc, stdio, report, log).ResolvePort(ctx, cfg.Port)
	if err != nil {
		return fail(err)
	}
	report.Info("Using upload port: %s", port)

	pipeline := flash.NewPipeline(tc).WithReporter(report).WithLogger(log)
	if _, err := pipeline.Run(ctx, cfg, port); err != nil {
		return fail(err)
	}

	report.Done(tc.MonitorCommand(port, flash.DefaultMonitorBaud))
	return nil
}
