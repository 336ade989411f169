package forms

import (
	"context"
	"sync"

	qikoffice "github.com/qikoffice/qikoffice-go"
	"github.com/qikoffice/qikoffice-go/pkg/constants"
	"github.com/qikoffice/qikoffice-go/pkg/models"
)

type WorkspaceAPI interface {
	CreateWorkspace(ctx context.Context, req qikoffice.CreateWorkspaceRequest) (models.ID, error)
}

type WorkspaceValues struct {
	Name        string
	Description string
}

// WorkspaceCreator creates the user's workspace.
type WorkspaceCreator struct {
	status
	api  WorkspaceAPI
	user models.User

	valuesMu sync.Mutex
	values   WorkspaceValues

	OnCreated func(models.Workspace)
}

// NewWorkspaceCreator pre-fills the name with the user's company.
func NewWorkspaceCreator(api WorkspaceAPI, user models.User, opts ...Option) *WorkspaceCreator {
	o := buildOptions(opts)
	name := user.Company
	if name == "" {
		name = constants.DefaultCompany
	}
	return &WorkspaceCreator{
		status: status{op: "create workspace", fallback: "Create workspace failed", reporter: o.reporter},
		api:    api,
		user:   user,
		values: WorkspaceValues{Name: name, Description: constants.DefaultWorkspaceDescription},
	}
}

func (f *WorkspaceCreator) Values() WorkspaceValues {
	f.valuesMu.Lock()
	defer f.valuesMu.Unlock()
	return f.values
}

func (f *WorkspaceCreator) Set(v WorkspaceValues) {
	f.valuesMu.Lock()
	defer f.valuesMu.Unlock()
	f.values = v
}

func (f *WorkspaceCreator) Submit(ctx context.Context) (models.Workspace, error) {
	if err := f.begin(); err != nil {
		return models.Workspace{}, err
	}
	v := f.Values()
	id, err := f.api.CreateWorkspace(ctx, qikoffice.CreateWorkspaceRequest{
		Name:        v.Name,
		OwnerUserID: f.user.UserID,
		Description: v.Description,
	})
	if err != nil {
		return models.Workspace{}, f.finish(err)
	}
	ws := models.Workspace{ID: id, Name: v.Name}
	f.finish(nil)
	if f.OnCreated != nil {
		f.OnCreated(ws)
	}
	return ws, nil
}

type RoomAPI interface {
	CreateRoom(ctx context.Context, req qikoffice.CreateRoomRequest) (models.ID, error)
}

type RoomValues struct {
	Name string
	Type models.RoomType
}

// RoomCreator creates a room inside a workspace.
type RoomCreator struct {
	status
	api       RoomAPI
	workspace models.Workspace

	valuesMu sync.Mutex
	values   RoomValues

	OnCreated func(models.Room)
}

func NewRoomCreator(api RoomAPI, workspace models.Workspace, opts ...Option) *RoomCreator {
	o := buildOptions(opts)
	return &RoomCreator{
		status:    status{op: "create room", fallback: "Create room failed", reporter: o.reporter},
		api:       api,
		workspace: workspace,
		values:    RoomValues{Name: constants.DefaultRoomName, Type: models.RoomOnline},
	}
}

func (f *RoomCreator) Values() RoomValues {
	f.valuesMu.Lock()
	defer f.valuesMu.Unlock()
	return f.values
}

func (f *RoomCreator) Set(v RoomValues) {
	f.valuesMu.Lock()
	defer f.valuesMu.Unlock()
	f.values = v
}

func (f *RoomCreator) Submit(ctx context.Context) (models.Room, error) {
	if err := f.begin(); err != nil {
		return models.Room{}, err
	}
	v := f.Values()
	id, err := f.api.CreateRoom(ctx, qikoffice.CreateRoomRequest{
		WorkspaceID: f.workspace.ID,
		Name:        v.Name,
		Type:        v.Type,
	})
	if err != nil {
		return models.Room{}, f.finish(err)
	}
	room := models.Room{ID: id, Name: v.Name}
	f.finish(nil)
	if f.OnCreated != nil {
		f.OnCreated(room)
	}
	return room, nil
}
