package qikoffice

import "github.com/qikoffice/qikoffice-go/pkg/models"

type SignupRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

type SignupResponse struct {
	ID     models.ID `json:"id"`
	APIKey string    `json:"api_key"`
}

type CreateWorkspaceRequest struct {
	Name        string    `json:"name"`
	OwnerUserID models.ID `json:"owner_user_id"`
	Description string    `json:"description"`
}

type CreateRoomRequest struct {
	WorkspaceID models.ID       `json:"workspace_id"`
	Name        string          `json:"name"`
	Type        models.RoomType `json:"type"`
}

type CreateMeetingRequest struct {
	RoomID      models.ID `json:"room_id"`
	Title       string    `json:"title"`
	ScheduledAt string    `json:"scheduled_at"`
	HostUserID  models.ID `json:"host_user_id"`
	// ParticipantUserIDs is always sent, as [] when empty.
	ParticipantUserIDs []models.ID `json:"participant_user_ids"`
}

type CreateNoteRequest struct {
	MeetingID    models.ID `json:"meeting_id"`
	AuthorUserID models.ID `json:"author_user_id"`
	Content      string    `json:"content"`
}

type CreateTaskRequest struct {
	MeetingID      models.ID `json:"meeting_id"`
	Title          string    `json:"title"`
	AssigneeUserID models.ID `json:"assignee_user_id"`
}

type TaskStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

// CreatedResponse is the part of a create response the client consumes.
type CreatedResponse struct {
	ID models.ID `json:"id"`
}
