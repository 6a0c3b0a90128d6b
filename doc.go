// Package flash drives a PlatformIO toolchain through the build, erase and
// upload steps needed to put FluidNC firmware on an ESP32 board.
//
// Compilation and flashing are delegated to the external pio executable. This
// package only decides which serial port to use and runs the fixed sequence of
// pio invocations, stopping at the first failure.
//
// # Basic Usage
//
//	pioPath, err := flash.LocatePlatformIO("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tc := flash.NewToolchain(pioPath, flash.NewExecExecutor())
//
//	cfg, err := flash.NewConfig(flash.WithEnvironment("wifi"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	port, err := flash.NewResolver(tc).ResolvePort(ctx, cfg.Port)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := flash.NewPipeline(tc).Run(ctx, cfg, port)
//
// # Port Selection
//
// An explicit port is always used as given. Otherwise the devices reported by
// "pio device list" are filtered by known USB-serial bridge keywords (CP210x,
// CH340, FTDI, ...). A single keyword match wins, then a single device of any
// kind. With several candidates the user is prompted for a 1-based index; the
// input source is injectable with WithInput.
//
// # Pipeline
//
// Steps run in a fixed order:
//
//   - build:    pio run -e <env>
//   - erase:    pio run -e <env> -t erase --upload-port <port>     (unless skipped)
//   - upload:   pio run -e <env> -t upload --upload-port <port>
//   - uploadfs: pio run -e <env> -t uploadfs --upload-port <port>  (when the data directory exists)
//
// Any failure is returned as a *StepError and no later step runs.
//
// # Error Handling
//
//	if errors.Is(err, flash.ErrNoPorts) {
//	    // nothing plugged in
//	}
//	var stepErr *flash.StepError
//	if errors.As(err, &stepErr) && stepErr.Step == flash.StepUploadFS {
//	    // filesystem image did not flash
//	}
package flash
