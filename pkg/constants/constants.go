package constants

import "time"

const (
	DefaultBackendURL  = "http://localhost:8000"
	DefaultListenAddr  = "127.0.0.1:8000"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultLogLevel    = "info"
)

// Form defaults shown pre-filled to the user.
const (
	DefaultCompany              = "Bright Media"
	DefaultWorkspaceDescription = "Creative team collaboration space"
	DefaultRoomName             = "Client Review Room"
	DefaultMeetingTitle         = "Kickoff"
)

var (
	HTTPScheme       = "http"
	HTTPSecureScheme = "https"
)
