package models

// User is the session's signed-up user: the server-issued id and key merged
// with the values typed into the signup form.
type User struct {
	UserID  ID     `json:"user_id"`
	APIKey  string `json:"api_key"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

type Workspace struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// RoomType is where a room's meetings take place.
type RoomType string

const (
	RoomOnline   RoomType = "online"
	RoomInPerson RoomType = "in-person"
	RoomHybrid   RoomType = "hybrid"
)

// RoomTypes lists the accepted room types in display order.
var RoomTypes = []RoomType{RoomOnline, RoomInPerson, RoomHybrid}

func (t RoomType) Valid() bool {
	for _, v := range RoomTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Room struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type Meeting struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

type Note struct {
	ID      ID     `json:"id"`
	Content string `json:"content"`
}
