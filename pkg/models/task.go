package models

import "math"

// TaskStatus is the completion state of a to-do.
type TaskStatus string

const (
	TaskOpen TaskStatus = "open"
	TaskDone TaskStatus = "done"
)

// Toggled returns the status a toggle moves to: done becomes open, anything
// else (including unknown values sent by the server) becomes done.
func (s TaskStatus) Toggled() TaskStatus {
	if s == TaskDone {
		return TaskOpen
	}
	return TaskDone
}

type Task struct {
	ID       ID         `json:"id"`
	Title    string     `json:"title"`
	Status   TaskStatus `json:"status"`
	Assignee ID         `json:"assignee"`
}

func (t Task) Done() bool { return t.Status == TaskDone }

// Completion is the rounded percentage of done tasks, 0 for an empty list.
func Completion(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Done() {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100))
}
