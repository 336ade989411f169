package term_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qikoffice "github.com/qikoffice/qikoffice-go"
	"github.com/qikoffice/qikoffice-go/internal/fakeapi"
	"github.com/qikoffice/qikoffice-go/pkg/funnel"
	"github.com/qikoffice/qikoffice-go/pkg/models"
	"github.com/qikoffice/qikoffice-go/pkg/term"
)

func startServer(t *testing.T) *fakeapi.Server {
	t.Helper()
	server := fakeapi.NewServer("127.0.0.1:0", fakeapi.WithSequentialIDs())
	require.NoError(t, server.Start())
	t.Cleanup(func() { _ = server.Stop() })
	return server
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestSessionFullRun(t *testing.T) {
	server := startServer(t)
	client := qikoffice.NewClient(server.URL())
	var out bytes.Buffer

	in := script(
		"Ana", "ana@example.com", "Acme", // signup
		"", "", // workspace defaults
		"", "hybrid", // room
		"", "2026-01-02T10:00:00Z", // meeting
		"n Discuss the brief",
		"t Draft agenda",
		"x 1",
		"q",
	)
	session := term.NewSession(client, in, &out, zerolog.Nop())
	require.NoError(t, session.Run(context.Background()))

	assert.Equal(t, funnel.HasMeeting, session.Pipeline().Stage())
	ws, ok := session.Pipeline().Workspace()
	require.True(t, ok)
	assert.Equal(t, "Acme", ws.Name)

	panel := session.Panel()
	require.NotNil(t, panel)
	assert.Equal(t, 100, panel.Completion())
	require.Len(t, panel.Notes(), 1)

	text := out.String()
	assert.Contains(t, text, "Qik Office")
	assert.Contains(t, text, "Workspace name [Acme]: ")
	assert.Contains(t, text, "Room type (online/in-person/hybrid) [online]: ")
	assert.Contains(t, text, "1. [x] Draft agenda  (x 1: Reopen)")
	assert.Contains(t, text, "Completion: 100%")
	assert.True(t, strings.HasSuffix(text, term.Phases+"\n"))
}

func TestSessionRetriesFailedSignup(t *testing.T) {
	server := startServer(t)
	server.AddStubResponse(fakeapi.StubResponse{
		Matcher: fakeapi.RequestMatcher{Method: http.MethodPost, Path: "/api/signup"},
		Status:  http.StatusBadRequest,
		Body:    map[string]string{"detail": "Email already registered"},
		Times:   1,
	})
	client := qikoffice.NewClient(server.URL())
	var out bytes.Buffer

	in := script(
		"Ana", "ana@example.com", "",
		"", "", "",
	)
	session := term.NewSession(client, in, &out, zerolog.Nop())
	require.NoError(t, session.Run(context.Background()))

	assert.Contains(t, out.String(), "Error: Email already registered")
	assert.Equal(t, funnel.HasUser, session.Pipeline().Stage())
	user, _ := session.Pipeline().User()
	assert.Equal(t, "Bright Media", user.Company)
}

func TestSessionPanelErrors(t *testing.T) {
	server := startServer(t)
	client := qikoffice.NewClient(server.URL())
	var out bytes.Buffer

	in := script(
		"Ana", "ana@example.com", "",
		"", "",
		"", "",
		"", "",
		"x 3",
		"x abc",
		"help",
	)
	session := term.NewSession(client, in, &out, zerolog.Nop())
	require.NoError(t, session.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Error: no such task: index 2 of 0")
	assert.Contains(t, text, "Error: x needs a task number")
	assert.Contains(t, text, "commands: n <note>")
}

func TestPanelRendering(t *testing.T) {
	assert.Equal(t, "Creating...", term.ButtonLabel(true, "Create room"))
	assert.Equal(t, "Create room", term.ButtonLabel(false, "Create room"))
	assert.Equal(t, "Reopen", term.ToggleLabel(models.Task{Status: models.TaskDone}))
	assert.Equal(t, "Done", term.ToggleLabel(models.Task{Status: models.TaskOpen}))

	var out bytes.Buffer
	term.Hero(&out)
	assert.Contains(t, out.String(), "[ Try the MVP ]  [ Explore Rooms ]")
}
