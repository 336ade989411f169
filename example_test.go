package qikoffice_test

import (
	"context"
	"fmt"

	qikoffice "github.com/qikoffice/qikoffice-go"
	"github.com/qikoffice/qikoffice-go/internal/fakeapi"
	"github.com/qikoffice/qikoffice-go/pkg/models"
)

func ExampleClient_Signup() {
	server := fakeapi.NewServer("127.0.0.1:0", fakeapi.WithSequentialIDs())
	if err := server.Start(); err != nil {
		panic(err)
	}
	defer server.Stop()

	c := qikoffice.NewClient(server.URL())
	user, err := c.Signup(context.Background(), qikoffice.SignupRequest{
		Name:    "Ana",
		Email:   "ana@example.com",
		Company: "Acme",
	})
	if err != nil {
		panic(err)
	}
	fmt.Println("user id:", user.ID)
	fmt.Println("has api key:", c.APIKey() != "")

	_, err = c.Signup(context.Background(), qikoffice.SignupRequest{Name: "Ana", Email: "ana@example.com"})
	detail, _ := qikoffice.DetailOf(err)
	fmt.Println("second signup:", detail)

	// Output:
	// user id: 1
	// has api key: true
	// second signup: Email already registered
}

func ExampleClient_ListTasks() {
	server := fakeapi.NewServer("127.0.0.1:0", fakeapi.WithSequentialIDs())
	if err := server.Start(); err != nil {
		panic(err)
	}
	defer server.Stop()

	ctx := context.Background()
	c := qikoffice.NewClient(server.URL())
	user, _ := c.Signup(ctx, qikoffice.SignupRequest{Name: "Ana", Email: "ana@example.com"})
	ws, _ := c.CreateWorkspace(ctx, qikoffice.CreateWorkspaceRequest{Name: "Acme", OwnerUserID: user.ID})
	room, _ := c.CreateRoom(ctx, qikoffice.CreateRoomRequest{WorkspaceID: ws, Name: "Client Review Room", Type: models.RoomOnline})
	meeting, _ := c.CreateMeeting(ctx, qikoffice.CreateMeetingRequest{RoomID: room, Title: "Kickoff", HostUserID: user.ID})

	_ = c.CreateTask(ctx, qikoffice.CreateTaskRequest{MeetingID: meeting, Title: "Draft agenda", AssigneeUserID: user.ID})
	_ = c.CreateTask(ctx, qikoffice.CreateTaskRequest{MeetingID: meeting, Title: "Book the studio", AssigneeUserID: user.ID})

	tasks, _ := c.ListTasks(ctx, meeting)
	_ = c.PatchTaskStatus(ctx, tasks[0].ID, tasks[0].Status.Toggled())

	tasks, _ = c.ListTasks(ctx, meeting)
	for _, t := range tasks {
		fmt.Printf("%s: %s\n", t.Title, t.Status)
	}
	fmt.Printf("completion: %d%%\n", models.Completion(tasks))

	// Output:
	// Draft agenda: done
	// Book the studio: open
	// completion: 50%
}
