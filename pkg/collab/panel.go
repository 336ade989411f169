// Package collab implements a meeting's notes and to-dos panel.
//
// Every write is followed by a full reload of both lists; the panel never
// patches its lists locally.
package collab

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	qikoffice "github.com/qikoffice/qikoffice-go"
	"github.com/qikoffice/qikoffice-go/pkg/constants"
	"github.com/qikoffice/qikoffice-go/pkg/models"
	"github.com/qikoffice/qikoffice-go/pkg/report"
)

// Repository is the storage the panel reads and writes. *qikoffice.Client
// implements it.
type Repository interface {
	ListNotes(ctx context.Context, meetingID models.ID) ([]models.Note, error)
	ListTasks(ctx context.Context, meetingID models.ID) ([]models.Task, error)
	CreateNote(ctx context.Context, req qikoffice.CreateNoteRequest) error
	CreateTask(ctx context.Context, req qikoffice.CreateTaskRequest) error
	PatchTaskStatus(ctx context.Context, taskID models.ID, status models.TaskStatus) error
}

var _ Repository = (*qikoffice.Client)(nil)

var ErrNoSuchTask = constants.ErrNoSuchTask

type Option func(*Panel)

func WithReporter(r report.Reporter) Option {
	return func(p *Panel) {
		p.reporter = r
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(p *Panel) {
		p.log = log
	}
}

// Panel is the collaboration view of one meeting. Notes are authored by, and
// tasks assigned to, the panel's user.
type Panel struct {
	repo     Repository
	meeting  models.Meeting
	user     models.User
	reporter report.Reporter
	log      zerolog.Logger

	mu        sync.RWMutex
	notes     []models.Note
	tasks     []models.Task
	noteDraft string
	taskDraft string
}

func NewPanel(repo Repository, meeting models.Meeting, user models.User, opts ...Option) *Panel {
	p := &Panel{
		repo:     repo,
		meeting:  meeting,
		user:     user,
		reporter: report.Discard,
		log:      zerolog.Nop(),
		notes:    []models.Note{},
		tasks:    []models.Task{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Panel) Meeting() models.Meeting {
	return p.meeting
}

// Load fetches notes and tasks in parallel and replaces both lists once both
// requests succeed. On failure the lists are left as they were.
func (p *Panel) Load(ctx context.Context) error {
	var (
		notes []models.Note
		tasks []models.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		notes, err = p.repo.ListNotes(gctx, p.meeting.ID)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = p.repo.ListTasks(gctx, p.meeting.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return p.fail("load", fmt.Errorf("failed to load meeting %s: %w", p.meeting.ID, err))
	}

	p.mu.Lock()
	p.notes = notes
	p.tasks = tasks
	p.mu.Unlock()

	p.log.Debug().Int("notes", len(notes)).Int("tasks", len(tasks)).Msg("panel loaded")
	return nil
}

// AddNote posts a note and reloads. Blank content is ignored without any
// request.
func (p *Panel) AddNote(ctx context.Context, content string) error {
	return p.addNote(ctx, content, nil)
}

// AddTask posts a task assigned to the panel's user and reloads. A blank
// title is ignored without any request.
func (p *Panel) AddTask(ctx context.Context, title string) error {
	return p.addTask(ctx, title, nil)
}

func (p *Panel) addNote(ctx context.Context, content string, written func()) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	err := p.repo.CreateNote(ctx, qikoffice.CreateNoteRequest{
		MeetingID:    p.meeting.ID,
		AuthorUserID: p.user.UserID,
		Content:      content,
	})
	if err != nil {
		return p.fail("add note", err)
	}
	if written != nil {
		written()
	}
	return p.Load(ctx)
}

func (p *Panel) addTask(ctx context.Context, title string, written func()) error {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	err := p.repo.CreateTask(ctx, qikoffice.CreateTaskRequest{
		MeetingID:      p.meeting.ID,
		Title:          title,
		AssigneeUserID: p.user.UserID,
	})
	if err != nil {
		return p.fail("add task", err)
	}
	if written != nil {
		written()
	}
	return p.Load(ctx)
}

// ToggleTask flips a task between done and open, then reloads.
func (p *Panel) ToggleTask(ctx context.Context, task models.Task) error {
	if err := p.repo.PatchTaskStatus(ctx, task.ID, task.Status.Toggled()); err != nil {
		return p.fail("toggle task", err)
	}
	return p.Load(ctx)
}

// ToggleTaskAt toggles the i-th task of the current list, counting from 0.
func (p *Panel) ToggleTaskAt(ctx context.Context, i int) error {
	p.mu.RLock()
	if i < 0 || i >= len(p.tasks) {
		n := len(p.tasks)
		p.mu.RUnlock()
		return fmt.Errorf("%w: index %d of %d", ErrNoSuchTask, i, n)
	}
	task := p.tasks[i]
	p.mu.RUnlock()
	return p.ToggleTask(ctx, task)
}

func (p *Panel) SetNoteDraft(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.noteDraft = s
}

func (p *Panel) NoteDraft() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.noteDraft
}

func (p *Panel) SetTaskDraft(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.taskDraft = s
}

func (p *Panel) TaskDraft() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.taskDraft
}

// SubmitNoteDraft adds the note draft. The draft is cleared once the note
// has been written, even if the reload that follows fails, and is kept when
// the write fails.
func (p *Panel) SubmitNoteDraft(ctx context.Context) error {
	draft := p.NoteDraft()
	return p.addNote(ctx, draft, func() { p.clearDraft(&p.noteDraft, draft) })
}

// SubmitTaskDraft adds the task draft, clearing it like SubmitNoteDraft.
func (p *Panel) SubmitTaskDraft(ctx context.Context) error {
	draft := p.TaskDraft()
	return p.addTask(ctx, draft, func() { p.clearDraft(&p.taskDraft, draft) })
}

// clearDraft empties *field unless it was edited after submitted was read.
func (p *Panel) clearDraft(field *string, submitted string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if *field == submitted {
		*field = ""
	}
}

func (p *Panel) Notes() []models.Note {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.Note(nil), p.notes...)
}

func (p *Panel) Tasks() []models.Task {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.Task(nil), p.tasks...)
}

// Completion is the rounded percentage of done tasks.
func (p *Panel) Completion() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return models.Completion(p.tasks)
}

func (p *Panel) fail(op string, err error) error {
	p.reporter.Report(op, err)
	return err
}
