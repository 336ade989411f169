package cli

// Command is one sub-command of the qikoffice binary. Each implementation
// carries its own options; shared settings live in config.Config.
type Command interface {
	// Name returns the sub-command name as typed on the command line.
	Name() string
}

// RunCommand runs the interactive funnel in the terminal against the
// configured backend.
//
//	qikoffice run
//	qikoffice -backend https://api.example.com run
type RunCommand struct{}

func (c *RunCommand) Name() string {
	return "run"
}

// ServeCommand starts the in-memory reference API, for local development
// and for trying the terminal front end without a real backend.
//
//	qikoffice -addr 127.0.0.1:8000 serve
type ServeCommand struct{}

func (c *ServeCommand) Name() string {
	return "serve"
}

// DemoCommand runs scripted virtual users against the backend, verifies what
// they wrote and prints their final panels. It is a smoke check of a
// deployment.
//
//	qikoffice -users 3 demo
type DemoCommand struct {
	Users int
}

func (c *DemoCommand) Name() string {
	return "demo"
}
