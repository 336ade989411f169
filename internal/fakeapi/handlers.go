package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	qikoffice "github.com/qikoffice/qikoffice-go"
	"github.com/qikoffice/qikoffice-go/pkg/models"
)

// routes wires the endpoints:
//
//	GET   /health
//	POST  /api/signup
//	POST  /api/workspaces
//	POST  /api/rooms
//	POST  /api/meetings
//	GET   /api/notes?meeting_id=
//	POST  /api/notes
//	GET   /api/tasks?meeting_id=
//	POST  /api/tasks
//	PATCH /api/tasks/{id}/status
func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.middleware)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/signup", s.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/workspaces", s.handleCreateWorkspace).Methods(http.MethodPost)
	api.HandleFunc("/rooms", s.handleCreateRoom).Methods(http.MethodPost)
	api.HandleFunc("/meetings", s.handleCreateMeeting).Methods(http.MethodPost)
	api.HandleFunc("/notes", s.handleListNotes).Methods(http.MethodGet)
	api.HandleFunc("/notes", s.handleCreateNote).Methods(http.MethodPost)
	api.HandleFunc("/tasks", s.handleListTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", s.handleCreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}/status", s.handlePatchTaskStatus).Methods(http.MethodPatch)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req qikoffice.SignupRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Name is required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "A valid email is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(req.Email)
	if _, exists := s.store.emails[email]; exists {
		respondError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	user := &userRecord{
		ID:      s.NewID(),
		APIKey:  "qk_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
	}
	s.store.users[user.ID] = user
	s.store.emails[email] = user.ID

	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req qikoffice.CreateWorkspaceRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Workspace name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.users[req.OwnerUserID.String()]; !ok {
		respondError(w, http.StatusNotFound, "Owner not found")
		return
	}
	ws := &workspaceRecord{
		ID:          s.NewID(),
		Name:        req.Name,
		OwnerUserID: req.OwnerUserID.String(),
		Description: req.Description,
	}
	s.store.workspaces[ws.ID] = ws

	respondJSON(w, http.StatusOK, ws)
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req qikoffice.CreateRoomRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Room name is required")
		return
	}
	if !req.Type.Valid() {
		respondError(w, http.StatusUnprocessableEntity, "Room type must be online, in-person or hybrid")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.workspaces[req.WorkspaceID.String()]; !ok {
		respondError(w, http.StatusNotFound, "Workspace not found")
		return
	}
	room := &roomRecord{
		ID:          s.NewID(),
		WorkspaceID: req.WorkspaceID.String(),
		Name:        req.Name,
		Type:        req.Type,
	}
	s.store.rooms[room.ID] = room

	respondJSON(w, http.StatusOK, room)
}

func (s *Server) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req qikoffice.CreateMeetingRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Meeting title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.rooms[req.RoomID.String()]; !ok {
		respondError(w, http.StatusNotFound, "Room not found")
		return
	}
	if _, ok := s.store.users[req.HostUserID.String()]; !ok {
		respondError(w, http.StatusNotFound, "Host not found")
		return
	}
	participants := make([]string, 0, len(req.ParticipantUserIDs))
	for _, id := range req.ParticipantUserIDs {
		participants = append(participants, id.String())
	}
	meeting := &meetingRecord{
		ID:                 s.NewID(),
		RoomID:             req.RoomID.String(),
		Title:              req.Title,
		ScheduledAt:        req.ScheduledAt,
		HostUserID:         req.HostUserID.String(),
		ParticipantUserIDs: participants,
	}
	s.store.meetings[meeting.ID] = meeting

	respondJSON(w, http.StatusOK, meeting)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	meetingID := r.URL.Query().Get("meeting_id")

	s.mu.RLock()
	defer s.mu.RUnlock()

	respondJSON(w, http.StatusOK, s.store.notesFor(meetingID))
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req qikoffice.CreateNoteRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Note content is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.meetings[req.MeetingID.String()]; !ok {
		respondError(w, http.StatusNotFound, "Meeting not found")
		return
	}
	note := &noteRecord{
		ID:           s.NewID(),
		MeetingID:    req.MeetingID.String(),
		AuthorUserID: req.AuthorUserID.String(),
		Content:      req.Content,
	}
	s.store.notes = append(s.store.notes, note)

	respondJSON(w, http.StatusOK, note)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	meetingID := r.URL.Query().Get("meeting_id")

	s.mu.RLock()
	defer s.mu.RUnlock()

	respondJSON(w, http.StatusOK, s.store.tasksFor(meetingID))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req qikoffice.CreateTaskRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Task title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.meetings[req.MeetingID.String()]; !ok {
		respondError(w, http.StatusNotFound, "Meeting not found")
		return
	}
	task := &taskRecord{
		ID:        s.NewID(),
		MeetingID: req.MeetingID.String(),
		Title:     req.Title,
		Status:    models.TaskOpen,
		Assignee:  req.AssigneeUserID.String(),
	}
	s.store.tasks = append(s.store.tasks, task)

	respondJSON(w, http.StatusOK, task)
}

func (s *Server) handlePatchTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req qikoffice.TaskStatusRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Status != models.TaskOpen && req.Status != models.TaskDone {
		respondError(w, http.StatusUnprocessableEntity, "Status must be open or done")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.store.task(id)
	if task == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}
	task.Status = req.Status

	respondJSON(w, http.StatusOK, task)
}

// decode reads a JSON body, answering 400 itself when it cannot.
func decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

// respondError answers with the API's error envelope, {"detail": message}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"detail": message})
}
