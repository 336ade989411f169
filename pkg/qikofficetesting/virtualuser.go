// Package qikofficetesting drives the Qik Office funnel end to end with
// simulated users.
//
// A [VirtualUser] signs up, creates a workspace, a room and a meeting through
// the same forms the terminal front end uses, then adds notes and tasks and
// toggles some of them through a [collab.Panel]. Behavior is deterministic
// per user index, so a failing run can be replayed.
//
//	vu := qikofficetesting.NewVirtualUser(0, "http://localhost:8000")
//	if err := vu.RunScenario(ctx); err != nil {
//		t.Fatalf("scenario failed: %v", err)
//	}
//	if err := vu.Verify(ctx); err != nil {
//		t.Fatalf("verification failed: %v", err)
//	}
//
// Several virtual users can run concurrently against one server.
package qikofficetesting

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	qikoffice "github.com/qikoffice/qikoffice-go"
	"github.com/qikoffice/qikoffice-go/pkg/collab"
	"github.com/qikoffice/qikoffice-go/pkg/forms"
	"github.com/qikoffice/qikoffice-go/pkg/funnel"
	"github.com/qikoffice/qikoffice-go/pkg/models"
)

var noteTexts = []string{
	"Client wants a shorter intro",
	"Budget approved for Q3",
	"Review storyboard on Friday",
	"Logo needs more contrast",
}

var taskTitles = []string{
	"Draft agenda",
	"Send follow-up email",
	"Update mood board",
	"Book the studio",
	"Share recording",
}

// VirtualUser is a simulated user walking through the whole funnel.
type VirtualUser struct {
	Index   int // Virtual user index (0, 1, 2...), not the server's user id
	Name    string
	Email   string
	Company string
	Client  *qikoffice.Client
	RNG     *rand.Rand // Seeded with Index

	Pipeline *funnel.Pipeline
	Panel    *collab.Panel

	// What the scenario wrote, for Verify.
	Notes []string
	Tasks map[string]models.TaskStatus

	mu sync.Mutex
}

func NewVirtualUser(index int, baseURL string) *VirtualUser {
	// Timestamp keeps emails unique across runs against a long-lived server.
	timestamp := time.Now().UnixNano()

	return &VirtualUser{
		Index:    index,
		Name:     fmt.Sprintf("Virtual User %d", index),
		Email:    fmt.Sprintf("user%d-%d@test.com", index, timestamp),
		Company:  fmt.Sprintf("Studio %d", index),
		Client:   qikoffice.NewClient(baseURL),
		RNG:      rand.New(rand.NewSource(int64(index))),
		Pipeline: funnel.New(),
		Tasks:    make(map[string]models.TaskStatus),
	}
}

// SetUp runs signup, workspace, room and meeting creation.
func (vu *VirtualUser) SetUp(ctx context.Context) error {
	signup := forms.NewSignup(vu.Client)
	signup.Set(forms.SignupValues{Name: vu.Name, Email: vu.Email, Company: vu.Company})
	user, err := signup.Submit(ctx)
	if err != nil {
		return fmt.Errorf("virtual user %d signup failed: %w", vu.Index, err)
	}
	if err := vu.Pipeline.SignedUp(user); err != nil {
		return err
	}

	ws, err := forms.NewWorkspaceCreator(vu.Client, user).Submit(ctx)
	if err != nil {
		return fmt.Errorf("virtual user %d failed to create workspace: %w", vu.Index, err)
	}
	if err := vu.Pipeline.WorkspaceCreated(ws); err != nil {
		return err
	}

	roomForm := forms.NewRoomCreator(vu.Client, ws)
	roomForm.Set(forms.RoomValues{
		Name: fmt.Sprintf("Room %d", vu.Index),
		Type: models.RoomTypes[vu.RNG.Intn(len(models.RoomTypes))],
	})
	room, err := roomForm.Submit(ctx)
	if err != nil {
		return fmt.Errorf("virtual user %d failed to create room: %w", vu.Index, err)
	}
	if err := vu.Pipeline.RoomCreated(room); err != nil {
		return err
	}

	meeting, err := forms.NewMeetingCreator(vu.Client, room, user).Submit(ctx)
	if err != nil {
		return fmt.Errorf("virtual user %d failed to create meeting: %w", vu.Index, err)
	}
	if err := vu.Pipeline.MeetingCreated(meeting); err != nil {
		return err
	}

	vu.mu.Lock()
	vu.Panel = collab.NewPanel(vu.Client, meeting, user)
	vu.mu.Unlock()
	return vu.Panel.Load(ctx)
}

func (vu *VirtualUser) AddNote(ctx context.Context) error {
	text := noteTexts[vu.RNG.Intn(len(noteTexts))]
	if err := vu.Panel.AddNote(ctx, text); err != nil {
		return fmt.Errorf("virtual user %d failed to add note: %w", vu.Index, err)
	}
	vu.mu.Lock()
	vu.Notes = append(vu.Notes, text)
	vu.mu.Unlock()
	return nil
}

func (vu *VirtualUser) AddTask(ctx context.Context) error {
	title := fmt.Sprintf("%s #%d", taskTitles[vu.RNG.Intn(len(taskTitles))], len(vu.Tasks)+1)
	if err := vu.Panel.AddTask(ctx, title); err != nil {
		return fmt.Errorf("virtual user %d failed to add task: %w", vu.Index, err)
	}
	vu.mu.Lock()
	vu.Tasks[title] = models.TaskOpen
	vu.mu.Unlock()
	return nil
}

// ToggleRandomTask toggles one of the panel's tasks, if there is any.
func (vu *VirtualUser) ToggleRandomTask(ctx context.Context) error {
	tasks := vu.Panel.Tasks()
	if len(tasks) == 0 {
		return nil
	}
	task := tasks[vu.RNG.Intn(len(tasks))]
	if err := vu.Panel.ToggleTask(ctx, task); err != nil {
		return fmt.Errorf("virtual user %d failed to toggle task: %w", vu.Index, err)
	}
	vu.mu.Lock()
	vu.Tasks[task.Title] = task.Status.Toggled()
	vu.mu.Unlock()
	return nil
}

// RunScenario sets up a meeting and performs a deterministic mix of panel
// operations. Even-indexed users lean toward adding, odd-indexed ones toward
// toggling.
func (vu *VirtualUser) RunScenario(ctx context.Context) error {
	if err := vu.SetUp(ctx); err != nil {
		return err
	}
	if err := vu.AddTask(ctx); err != nil {
		return err
	}

	addBias := 70
	if vu.Index%2 == 1 {
		addBias = 40
	}
	for i := 0; i < 8; i++ {
		roll := vu.RNG.Intn(100)
		var err error
		switch {
		case roll < addBias/2:
			err = vu.AddNote(ctx)
		case roll < addBias:
			err = vu.AddTask(ctx)
		default:
			err = vu.ToggleRandomTask(ctx)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Verify reloads the panel and checks it against what the scenario wrote.
func (vu *VirtualUser) Verify(ctx context.Context) error {
	if err := vu.Panel.Load(ctx); err != nil {
		return err
	}
	vu.mu.Lock()
	defer vu.mu.Unlock()

	notes := vu.Panel.Notes()
	if len(notes) != len(vu.Notes) {
		return fmt.Errorf("virtual user %d: expected %d notes, got %d", vu.Index, len(vu.Notes), len(notes))
	}
	for i, n := range notes {
		if n.Content != vu.Notes[i] {
			return fmt.Errorf("virtual user %d: note %d is %q, expected %q", vu.Index, i, n.Content, vu.Notes[i])
		}
	}

	tasks := vu.Panel.Tasks()
	if len(tasks) != len(vu.Tasks) {
		return fmt.Errorf("virtual user %d: expected %d tasks, got %d", vu.Index, len(vu.Tasks), len(tasks))
	}
	for _, t := range tasks {
		want, ok := vu.Tasks[t.Title]
		if !ok {
			return fmt.Errorf("virtual user %d: unexpected task %q", vu.Index, t.Title)
		}
		if t.Status != want {
			return fmt.Errorf("virtual user %d: task %q is %s, expected %s", vu.Index, t.Title, t.Status, want)
		}
	}
	return nil
}
