package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	qikoffice "github.com/qikoffice/qikoffice-go"
	"github.com/qikoffice/qikoffice-go/pkg/collab"
	"github.com/qikoffice/qikoffice-go/pkg/forms"
	"github.com/qikoffice/qikoffice-go/pkg/funnel"
	"github.com/qikoffice/qikoffice-go/pkg/models"
	"github.com/qikoffice/qikoffice-go/pkg/report"
)

const panelHelp = "commands: n <note> | t <task> | x <number> | r reload | q quit"

// Session walks one user through signup, workspace, room and meeting
// creation, then runs the notes and to-dos prompt.
type Session struct {
	client   *qikoffice.Client
	in       *bufio.Scanner
	out      io.Writer
	log      zerolog.Logger
	reporter report.Reporter
	pipeline *funnel.Pipeline
	panel    *collab.Panel
}

func NewSession(client *qikoffice.Client, in io.Reader, out io.Writer, log zerolog.Logger) *Session {
	return &Session{
		client:   client,
		in:       bufio.NewScanner(in),
		out:      out,
		log:      log,
		reporter: report.Log(log),
		pipeline: funnel.New(),
	}
}

// Pipeline exposes how far the session got.
func (s *Session) Pipeline() *funnel.Pipeline {
	return s.pipeline
}

// Panel is nil until a meeting exists.
func (s *Session) Panel() *collab.Panel {
	return s.panel
}

// Run drives the session until the user quits or input ends. Running out of
// input is not an error.
func (s *Session) Run(ctx context.Context) error {
	Hero(s.out)
	defer Footer(s.out)

	steps := []func(context.Context) error{s.signup, s.workspace, s.room, s.meeting, s.collaborate}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

// ask prompts for a value, returning def for an empty answer.
func (s *Session) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(s.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(s.out, "%s: ", label)
	}
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) == "" {
		return def, nil
	}
	return line, nil
}

func (s *Session) showError(msg string) {
	fmt.Fprintf(s.out, "Error: %s\n", msg)
}

func (s *Session) signup(ctx context.Context) error {
	form := forms.NewSignup(s.client, forms.WithReporter(s.reporter))
	form.OnSignedUp = func(u models.User) {
		if err := s.pipeline.SignedUp(u); err != nil {
			s.log.Error().Err(err).Msg("pipeline")
		}
	}
	fmt.Fprintln(s.out, "Create your account")
	for {
		v := form.Values()
		name, err := s.ask("Full name", v.Name)
		if err != nil {
			return err
		}
		email, err := s.ask("Email", v.Email)
		if err != nil {
			return err
		}
		company, err := s.ask("Company", v.Company)
		if err != nil {
			return err
		}
		form.Set(forms.SignupValues{Name: name, Email: email, Company: company})

		fmt.Fprintln(s.out, ButtonLabel(true, "Sign up"))
		if _, err := form.Submit(ctx); err != nil {
			s.showError(form.Message())
			continue
		}
		return nil
	}
}

func (s *Session) workspace(ctx context.Context) error {
	user, _ := s.pipeline.User()
	form := forms.NewWorkspaceCreator(s.client, user, forms.WithReporter(s.reporter))
	form.OnCreated = func(w models.Workspace) {
		_ = s.pipeline.WorkspaceCreated(w)
	}
	fmt.Fprintln(s.out, "\nCreate your workspace")
	for {
		v := form.Values()
		name, err := s.ask("Workspace name", v.Name)
		if err != nil {
			return err
		}
		desc, err := s.ask("Description", v.Description)
		if err != nil {
			return err
		}
		form.Set(forms.WorkspaceValues{Name: name, Description: desc})
		if _, err := form.Submit(ctx); err != nil {
			s.showError(form.Message())
			continue
		}
		return nil
	}
}

func (s *Session) room(ctx context.Context) error {
	ws, _ := s.pipeline.Workspace()
	form := forms.NewRoomCreator(s.client, ws, forms.WithReporter(s.reporter))
	form.OnCreated = func(r models.Room) {
		_ = s.pipeline.RoomCreated(r)
	}
	fmt.Fprintf(s.out, "\nCreate a room in %s\n", ws.Name)
	for {
		v := form.Values()
		name, err := s.ask("Room name", v.Name)
		if err != nil {
			return err
		}
		typ, err := s.ask(fmt.Sprintf("Room type (%s)", joinRoomTypes()), string(v.Type))
		if err != nil {
			return err
		}
		roomType := models.RoomType(strings.TrimSpace(typ))
		if !roomType.Valid() {
			s.showError(fmt.Sprintf("unknown room type %q", typ))
			continue
		}
		form.Set(forms.RoomValues{Name: name, Type: roomType})
		if _, err := form.Submit(ctx); err != nil {
			s.showError(form.Message())
			continue
		}
		return nil
	}
}

func joinRoomTypes() string {
	names := make([]string, len(models.RoomTypes))
	for i, t := range models.RoomTypes {
		names[i] = string(t)
	}
	return strings.Join(names, "/")
}

func (s *Session) meeting(ctx context.Context) error {
	user, _ := s.pipeline.User()
	room, _ := s.pipeline.Room()
	form := forms.NewMeetingCreator(s.client, room, user, forms.WithReporter(s.reporter))
	form.OnCreated = func(m models.Meeting) {
		_ = s.pipeline.MeetingCreated(m)
	}
	fmt.Fprintln(s.out, "\nMeeting, Notes, To-dos")
	for form.Phase() == forms.Creating {
		v := form.Values()
		title, err := s.ask("Title", v.Title)
		if err != nil {
			return err
		}
		at, err := s.ask("Scheduled at", v.ScheduledAt)
		if err != nil {
			return err
		}
		form.Set(forms.MeetingValues{Title: title, ScheduledAt: at})
		if _, err := form.Submit(ctx); err != nil {
			s.showError(form.Message())
		}
	}
	return nil
}

func (s *Session) collaborate(ctx context.Context) error {
	user, _ := s.pipeline.User()
	meeting, _ := s.pipeline.Meeting()
	s.panel = collab.NewPanel(s.client, meeting, user, collab.WithReporter(s.reporter), collab.WithLogger(s.log))

	if err := s.panel.Load(ctx); err != nil {
		s.showError(report.Message(err, "Load failed"))
	}
	Panel(s.out, s.panel)
	fmt.Fprintln(s.out, panelHelp)

	for {
		fmt.Fprint(s.out, "> ")
		line, err := s.readLine()
		if err != nil {
			return err
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")

		switch cmd {
		case "":
			continue
		case "q", "quit":
			return nil
		case "n":
			s.panel.SetNoteDraft(arg)
			err = s.panel.SubmitNoteDraft(ctx)
		case "t":
			s.panel.SetTaskDraft(arg)
			err = s.panel.SubmitTaskDraft(ctx)
		case "x":
			n, convErr := strconv.Atoi(strings.TrimSpace(arg))
			if convErr != nil {
				s.showError("x needs a task number")
				continue
			}
			err = s.panel.ToggleTaskAt(ctx, n-1)
		case "r":
			err = s.panel.Load(ctx)
		default:
			fmt.Fprintln(s.out, panelHelp)
			continue
		}
		if err != nil {
			s.showError(report.Message(err, "Request failed"))
			continue
		}
		Panel(s.out, s.panel)
	}
}
