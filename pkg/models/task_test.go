package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  int
	}{
		{name: "empty", tasks: nil, want: 0},
		{name: "one of three", tasks: []Task{{Status: TaskDone}, {Status: TaskOpen}, {Status: TaskOpen}}, want: 33},
		{name: "two of three", tasks: []Task{{Status: TaskDone}, {Status: TaskDone}, {Status: TaskOpen}}, want: 67},
		{name: "all done", tasks: []Task{{Status: TaskDone}, {Status: TaskDone}}, want: 100},
		{name: "unknown status is not done", tasks: []Task{{Status: "blocked"}}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Completion(tt.tasks))
		})
	}
}

func TestTaskStatusToggled(t *testing.T) {
	assert.Equal(t, TaskOpen, TaskDone.Toggled())
	assert.Equal(t, TaskDone, TaskOpen.Toggled())
	assert.Equal(t, TaskDone, TaskStatus("in_progress").Toggled())
	assert.Equal(t, TaskDone, TaskStatus("").Toggled())
}

func TestIDUnmarshalJSON(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "title": "t", "status": "open", "assignee": "u1"}`), &task))
	assert.Equal(t, ID("42"), task.ID)
	assert.Equal(t, ID("u1"), task.Assignee)

	var note Note
	require.NoError(t, json.Unmarshal([]byte(`{"id": "65f0c1", "content": "hello"}`), &note))
	assert.Equal(t, ID("65f0c1"), note.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &note))
	assert.True(t, note.ID.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"id": true}`), &note))
}

func TestRoomTypeValid(t *testing.T) {
	for _, rt := range RoomTypes {
		assert.True(t, rt.Valid(), rt)
	}
	assert.False(t, RoomType("virtual").Valid())
}
