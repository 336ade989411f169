// Package qikoffice is a Go client for the Qik Office meeting and workspace API.
//
// # Onboarding funnel
//
// A Qik Office session walks a fixed funnel: sign up, create a workspace,
// create a room, create a meeting, then collaborate on the meeting's notes and
// to-dos. [Client] exposes one method per API call; the funnel itself lives in
// [github.com/qikoffice/qikoffice-go/pkg/funnel] and the forms that drive it in
// [github.com/qikoffice/qikoffice-go/pkg/forms].
//
// # Notes and to-dos
//
// [github.com/qikoffice/qikoffice-go/pkg/collab] loads and mutates a meeting's
// notes and tasks. Every write is followed by a full reload of both lists; the
// client keeps no incremental state.
//
// # Errors
//
// Any non-2xx response is returned as an [*APIError]. Transport failures are
// returned wrapped, so errors.Is(err, context.Canceled) and friends work.
//
// # Identifiers
//
// All identifiers are assigned by the server and passed back verbatim as
// [github.com/qikoffice/qikoffice-go/pkg/models.ID].
package qikoffice
