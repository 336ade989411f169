package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/qikoffice/qikoffice-go/pkg/config"
)

const usage = `Usage: qikoffice [flags] <command>

Commands:
  run       Sign up, create a workspace, room and meeting, then take notes and to-dos
  serve     Start the in-memory reference API
  demo      Run scripted virtual users against the backend and print their panels

Examples:
  qikoffice serve                                   # reference API on 127.0.0.1:8000
  qikoffice run                                     # terminal front end against localhost:8000
  qikoffice -backend https://qik.example.com run
  qikoffice -log-level debug -log-file qik.log run
  qikoffice -users 4 demo

Environment:
  QIKOFFICE_BACKEND_URL   API base url (falls back to VITE_BACKEND_URL)
  QIKOFFICE_HTTP_TIMEOUT  request timeout, e.g. 30s
  QIKOFFICE_LOG_LEVEL     trace, debug, info, warn, error
  QIKOFFICE_LOG_FILE      append logs to this file instead of stderr
  QIKOFFICE_LISTEN_ADDR   address for serve`

// Parse reads flags and the sub-command. Settings come from the environment
// (and .env) first; flags override them.
func Parse(args []string, output io.Writer) (Command, *config.Config, error) {
	flagSet := flag.NewFlagSet("qikoffice", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintln(output, usage)
		fmt.Fprintln(output, "\nFlags:")
		flagSet.PrintDefaults()
	}

	var (
		backend  = flagSet.String("backend", "", "API base url (overrides QIKOFFICE_BACKEND_URL)")
		logLevel = flagSet.String("log-level", "", "Log level (overrides QIKOFFICE_LOG_LEVEL)")
		logFile  = flagSet.String("log-file", "", "Log file (overrides QIKOFFICE_LOG_FILE)")
		addr     = flagSet.String("addr", "", "Listen address for serve (overrides QIKOFFICE_LISTEN_ADDR)")
		timeout  = flagSet.Duration("timeout", 0, "HTTP timeout (overrides QIKOFFICE_HTTP_TIMEOUT)")
		users    = flagSet.Int("users", 1, "Number of virtual users for demo")
		envFile  = flagSet.String("env-file", ".env", "Env file loaded before reading the environment")
	)

	if err := flagSet.Parse(args); err != nil {
		return nil, nil, err
	}

	remainingArgs := flagSet.Args()
	if len(remainingArgs) == 0 {
		return nil, nil, fmt.Errorf("subcommand required\n\n%s", usage)
	}

	var cmd Command
	switch remainingArgs[0] {
	case "run":
		cmd = &RunCommand{}
	case "serve":
		cmd = &ServeCommand{}
	case "demo":
		if *users < 1 {
			return nil, nil, fmt.Errorf("invalid -users %d: need at least 1", *users)
		}
		cmd = &DemoCommand{Users: *users}
	default:
		return nil, nil, fmt.Errorf("unknown command: %s\n\nValid commands: run, serve, demo", remainingArgs[0])
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return nil, nil, err
	}
	if *backend != "" {
		cfg.BackendURL = config.NormalizeBaseURL(*backend)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *timeout != 0 {
		cfg.HTTPTimeout = *timeout
	}

	if _, ok := cmd.(*ServeCommand); !ok {
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	return cmd, &cfg, nil
}
