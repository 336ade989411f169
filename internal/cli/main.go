package cli

import (
	"context"
	"fmt"
	"io"
)

// Main parses args and executes the chosen command. It is what the binary
// calls, and tests can call it directly.
func Main(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd, cfg, err := Parse(args, stderr)
	if err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	app, err := New(cfg, stdin, stdout, stderr)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer app.Close()

	switch c := cmd.(type) {
	case *RunCommand:
		if err := app.Run(ctx, c); err != nil {
			return fmt.Errorf("session failed: %w", err)
		}
	case *ServeCommand:
		if err := app.Serve(ctx, c); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case *DemoCommand:
		if err := app.Demo(ctx, c); err != nil {
			return fmt.Errorf("demo failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}
	return nil
}
