// Package term is the terminal front end: static sections, panel rendering
// and the interactive funnel session.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/qikoffice/qikoffice-go/pkg/collab"
	"github.com/qikoffice/qikoffice-go/pkg/models"
)

const (
	Title    = "Qik Office"
	Tagline  = "Meet, capture, and act: one workspace for meetings, notes, and to-dos."
	TryLabel = "Try the MVP"
	Explore  = "Explore Rooms"
	Phases   = "Phase 1: Meetings, Notes, To-dos. Phase 2: AI summaries, whiteboard, analytics."
)

func Hero(w io.Writer) {
	fmt.Fprintln(w, Title)
	fmt.Fprintln(w, strings.Repeat("=", len(Title)))
	fmt.Fprintln(w, Tagline)
	fmt.Fprintf(w, "[ %s ]  [ %s ]\n\n", TryLabel, Explore)
}

func Footer(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", Phases)
}

// ButtonLabel is the submit button text: "Creating..." while busy.
func ButtonLabel(busy bool, idle string) string {
	if busy {
		return "Creating..."
	}
	return idle
}

// ToggleLabel names the action a task's toggle performs.
func ToggleLabel(t models.Task) string {
	if t.Done() {
		return "Reopen"
	}
	return "Done"
}

// Panel writes both lists and the completion line. Tasks are numbered from 1,
// done tasks are marked [x].
func Panel(w io.Writer, p *collab.Panel) {
	meeting := p.Meeting()
	fmt.Fprintf(w, "\n-- %s --\n", meeting.Title)

	fmt.Fprintln(w, "Notes")
	notes := p.Notes()
	if len(notes) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, n := range notes {
		fmt.Fprintf(w, "  - %s\n", n.Content)
	}

	fmt.Fprintln(w, "To-dos")
	tasks := p.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, t := range tasks {
		mark := " "
		if t.Done() {
			mark = "x"
		}
		fmt.Fprintf(w, "  %d. [%s] %s  (x %d: %s)\n", i+1, mark, t.Title, i+1, ToggleLabel(t))
	}
	fmt.Fprintf(w, "Completion: %d%%\n", p.Completion())
}
