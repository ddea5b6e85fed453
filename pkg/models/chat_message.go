package models

// Role identifies the author of a chat message
type Role string

const (
	RoleUser   Role = "user"
	RoleModel  Role = "model"
	RoleSystem Role = "system"
)

// ChatMessage is one immutable entry of a conversation log
type ChatMessage struct {
	ID          string `json:"id"`
	Role        Role   `json:"role"`
	Text        string `json:"text"`
	Sender      string `json:"sender,omitempty"`
	Timestamp   string `json:"timestamp"` // HH:MM
	AvatarColor string `json:"avatar_color"`
}
