package forms

import (
	"context"
	"sync"
	"time"

	qikoffice "github.com/qikoffice/qikoffice-go"
	"github.com/qikoffice/qikoffice-go/pkg/constants"
	"github.com/qikoffice/qikoffice-go/pkg/models"
)

type MeetingAPI interface {
	CreateMeeting(ctx context.Context, req qikoffice.CreateMeetingRequest) (models.ID, error)
}

// Phase is the meeting form's lifecycle. It only moves forward.
type Phase int

const (
	Creating Phase = iota
	Active
)

func (p Phase) String() string {
	if p == Active {
		return "active"
	}
	return "creating"
}

type MeetingValues struct {
	Title string
	// ScheduledAt is sent verbatim.
	ScheduledAt string
}

// MeetingCreator starts a meeting in a room, hosted by the current user.
type MeetingCreator struct {
	status
	api  MeetingAPI
	room models.Room
	host models.User

	valuesMu sync.Mutex
	values   MeetingValues
	phase    Phase
	meeting  models.Meeting

	OnCreated func(models.Meeting)
}

// NewMeetingCreator defaults the schedule to the current time, RFC 3339 in UTC.
func NewMeetingCreator(api MeetingAPI, room models.Room, host models.User, opts ...Option) *MeetingCreator {
	o := buildOptions(opts)
	return &MeetingCreator{
		status: status{op: "create meeting", fallback: "Create meeting failed", reporter: o.reporter},
		api:    api,
		room:   room,
		host:   host,
		values: MeetingValues{
			Title:       constants.DefaultMeetingTitle,
			ScheduledAt: o.now().UTC().Format(time.RFC3339),
		},
	}
}

func (f *MeetingCreator) Values() MeetingValues {
	f.valuesMu.Lock()
	defer f.valuesMu.Unlock()
	return f.values
}

func (f *MeetingCreator) Set(v MeetingValues) {
	f.valuesMu.Lock()
	defer f.valuesMu.Unlock()
	f.values = v
}

func (f *MeetingCreator) Phase() Phase {
	f.valuesMu.Lock()
	defer f.valuesMu.Unlock()
	return f.phase
}

// Meeting returns the created meeting once the form is Active.
func (f *MeetingCreator) Meeting() (models.Meeting, bool) {
	f.valuesMu.Lock()
	defer f.valuesMu.Unlock()
	return f.meeting, f.phase == Active
}

func (f *MeetingCreator) Submit(ctx context.Context) (models.Meeting, error) {
	if f.Phase() == Active {
		return models.Meeting{}, ErrAlreadyActive
	}
	if err := f.begin(); err != nil {
		return models.Meeting{}, err
	}
	v := f.Values()
	id, err := f.api.CreateMeeting(ctx, qikoffice.CreateMeetingRequest{
		RoomID:             f.room.ID,
		Title:              v.Title,
		ScheduledAt:        v.ScheduledAt,
		HostUserID:         f.host.UserID,
		ParticipantUserIDs: []models.ID{},
	})
	if err != nil {
		return models.Meeting{}, f.finish(err)
	}
	meeting := models.Meeting{ID: id, Title: v.Title}

	f.valuesMu.Lock()
	f.phase = Active
	f.meeting = meeting
	f.valuesMu.Unlock()

	f.finish(nil)
	if f.OnCreated != nil {
		f.OnCreated(meeting)
	}
	return meeting, nil
}
