package fakeapi

import (
	"strings"

	"github.com/qikoffice/qikoffice-go/pkg/models"
)

type userRecord struct {
	ID      string `json:"id"`
	APIKey  string `json:"api_key"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

type workspaceRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerUserID string `json:"owner_user_id"`
	Description string `json:"description"`
}

type roomRecord struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspace_id"`
	Name        string          `json:"name"`
	Type        models.RoomType `json:"type"`
}

type meetingRecord struct {
	ID                 string   `json:"id"`
	RoomID             string   `json:"room_id"`
	Title              string   `json:"title"`
	ScheduledAt        string   `json:"scheduled_at"`
	HostUserID         string   `json:"host_user_id"`
	ParticipantUserIDs []string `json:"participant_user_ids"`
}

type noteRecord struct {
	ID           string `json:"id"`
	MeetingID    string `json:"meeting_id"`
	AuthorUserID string `json:"author_user_id"`
	Content      string `json:"content"`
}

type taskRecord struct {
	ID        string            `json:"id"`
	MeetingID string            `json:"meeting_id"`
	Title     string            `json:"title"`
	Status    models.TaskStatus `json:"status"`
	Assignee  string            `json:"assignee"`
}

// memoryStore holds all entities. Callers hold Server.mu.
type memoryStore struct {
	users      map[string]*userRecord
	emails     map[string]string
	workspaces map[string]*workspaceRecord
	rooms      map[string]*roomRecord
	meetings   map[string]*meetingRecord
	// notes and tasks keep insertion order, which is the listing order.
	notes []*noteRecord
	tasks []*taskRecord
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:      make(map[string]*userRecord),
		emails:     make(map[string]string),
		workspaces: make(map[string]*workspaceRecord),
		rooms:      make(map[string]*roomRecord),
		meetings:   make(map[string]*meetingRecord),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (m *memoryStore) notesFor(meetingID string) []*noteRecord {
	out := make([]*noteRecord, 0)
	for _, n := range m.notes {
		if n.MeetingID == meetingID {
			out = append(out, n)
		}
	}
	return out
}

func (m *memoryStore) tasksFor(meetingID string) []*taskRecord {
	out := make([]*taskRecord, 0)
	for _, t := range m.tasks {
		if t.MeetingID == meetingID {
			out = append(out, t)
		}
	}
	return out
}

func (m *memoryStore) task(id string) *taskRecord {
	for _, t := range m.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
