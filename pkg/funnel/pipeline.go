// Package funnel tracks how far a session has progressed through
// signup, workspace, room and meeting creation.
package funnel

import (
	"fmt"
	"sync"

	"github.com/qikoffice/qikoffice-go/pkg/constants"
	"github.com/qikoffice/qikoffice-go/pkg/models"
)

var ErrInvalidTransition = constants.ErrInvalidTransition

// Stage is the furthest step a session has completed.
type Stage int

const (
	Anonymous Stage = iota
	HasUser
	HasWorkspace
	HasRoom
	HasMeeting
)

func (s Stage) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case HasUser:
		return "has-user"
	case HasWorkspace:
		return "has-workspace"
	case HasRoom:
		return "has-room"
	case HasMeeting:
		return "has-meeting"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Pipeline holds the entities created so far. Each transition is legal from
// exactly one stage, so a payload exists iff its stage has been reached.
type Pipeline struct {
	mu        sync.RWMutex
	stage     Stage
	user      models.User
	workspace models.Workspace
	room      models.Room
	meeting   models.Meeting
}

func New() *Pipeline {
	return &Pipeline{}
}

func (p *Pipeline) Stage() Stage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stage
}

func (p *Pipeline) advance(from Stage, apply func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stage != from {
		return fmt.Errorf("%w: at %s, need %s", ErrInvalidTransition, p.stage, from)
	}
	apply()
	p.stage = from + 1
	return nil
}

func (p *Pipeline) SignedUp(u models.User) error {
	return p.advance(Anonymous, func() { p.user = u })
}

func (p *Pipeline) WorkspaceCreated(w models.Workspace) error {
	return p.advance(HasUser, func() { p.workspace = w })
}

func (p *Pipeline) RoomCreated(r models.Room) error {
	return p.advance(HasWorkspace, func() { p.room = r })
}

func (p *Pipeline) MeetingCreated(m models.Meeting) error {
	return p.advance(HasRoom, func() { p.meeting = m })
}

func (p *Pipeline) User() (models.User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user, p.stage >= HasUser
}

func (p *Pipeline) Workspace() (models.Workspace, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.workspace, p.stage >= HasWorkspace
}

func (p *Pipeline) Room() (models.Room, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.room, p.stage >= HasRoom
}

func (p *Pipeline) Meeting() (models.Meeting, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meeting, p.stage >= HasMeeting
}
