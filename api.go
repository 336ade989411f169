package qikoffice

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/qikoffice/qikoffice-go/pkg/constants"
	"github.com/qikoffice/qikoffice-go/pkg/models"
)

// Signup creates a user. On success the returned api key is also set on the
// client for subsequent requests.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	var result SignupResponse
	if err := c.do(ctx, http.MethodPost, "/api/signup", req, &result); err != nil {
		return nil, err
	}
	if result.ID.IsZero() {
		return nil, fmt.Errorf("%w: signup response has no id", constants.ErrInvalidResponse)
	}
	if result.APIKey != "" {
		c.SetAPIKey(result.APIKey)
	}
	return &result, nil
}

func (c *Client) CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (models.ID, error) {
	return c.create(ctx, "/api/workspaces", req)
}

func (c *Client) CreateRoom(ctx context.Context, req CreateRoomRequest) (models.ID, error) {
	return c.create(ctx, "/api/rooms", req)
}

func (c *Client) CreateMeeting(ctx context.Context, req CreateMeetingRequest) (models.ID, error) {
	if req.ParticipantUserIDs == nil {
		req.ParticipantUserIDs = []models.ID{}
	}
	return c.create(ctx, "/api/meetings", req)
}

func (c *Client) create(ctx context.Context, path string, req any) (models.ID, error) {
	var result CreatedResponse
	if err := c.do(ctx, http.MethodPost, path, req, &result); err != nil {
		return "", err
	}
	if result.ID.IsZero() {
		return "", fmt.Errorf("%w: POST %s response has no id", constants.ErrInvalidResponse, path)
	}
	return result.ID, nil
}

// ListNotes returns the notes of a meeting in server order.
func (c *Client) ListNotes(ctx context.Context, meetingID models.ID) ([]models.Note, error) {
	var result []models.Note
	if err := c.do(ctx, http.MethodGet, "/api/notes?meeting_id="+url.QueryEscape(meetingID.String()), nil, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = []models.Note{}
	}
	return result, nil
}

func (c *Client) CreateNote(ctx context.Context, req CreateNoteRequest) error {
	return c.do(ctx, http.MethodPost, "/api/notes", req, nil)
}

// ListTasks returns the tasks of a meeting in server order.
func (c *Client) ListTasks(ctx context.Context, meetingID models.ID) ([]models.Task, error) {
	var result []models.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks?meeting_id="+url.QueryEscape(meetingID.String()), nil, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = []models.Task{}
	}
	return result, nil
}

func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) error {
	return c.do(ctx, http.MethodPost, "/api/tasks", req, nil)
}

func (c *Client) PatchTaskStatus(ctx context.Context, taskID models.ID, status models.TaskStatus) error {
	path := fmt.Sprintf("/api/tasks/%s/status", url.PathEscape(taskID.String()))
	return c.do(ctx, http.MethodPatch, path, TaskStatusRequest{Status: status}, nil)
}
