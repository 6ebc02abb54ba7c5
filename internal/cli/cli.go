package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/qiskit-community/qiskit-pasqal-provider/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("qpp", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
qpp - run analog quantum programs on Pasqal emulators and QPUs.

Usage:
  qpp [options] [PROGRAM_PATH]

Arguments:
  PROGRAM_PATH
    Path to an .hcl program document.

Options:
`)
		flagSet.PrintDefaults()
	}

	programFlag := flagSet.String("program", "", "Path to the program document.")
	pFlag := flagSet.String("p", "", "Path to the program document (shorthand).")
	backendFlag := flagSet.String("backend", "qutip", "Backend tag. One of: qutip, emu-mps, remote-emu-free, remote-emu-mps, remote-emu-fresnel, fresnel, qpu.")
	shotsFlag := flagSet.Int("shots", 0, "Number of shots. 0 uses the backend default where one exists.")
	valuesFlag := flagSet.String("values", "", "Path to an .hcl parameter-binding document.")
	remoteFlag := flagSet.String("remote-config", "", "Path to an .hcl remote credentials document.")
	waitFlag := flagSet.Bool("wait", true, "Block until remote results are available.")
	pollIntervalFlag := flagSet.Duration("poll-interval", 0, "Interval between remote status polls. 0 uses the default.")
	maxPollsFlag := flagSet.Int("max-polls", 0, "Maximum remote status polls. 0 uses the default.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *programFlag != "" {
		path = *programFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ProgramPath:  path,
		ValuesPath:   *valuesFlag,
		RemotePath:   *remoteFlag,
		BackendTag:   *backendFlag,
		Shots:        *shotsFlag,
		Wait:         *waitFlag,
		PollInterval: *pollIntervalFlag,
		MaxPolls:     *maxPollsFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, false, nil
}
