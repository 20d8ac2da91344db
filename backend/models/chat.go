package models

import "time"

type ChatSender string

// Only professor messages are produced server side; the user's side of the
// conversation stays with the client.
const SenderProfessor ChatSender = "professor"

type ChatMessage struct {
	ID        string     `json:"id"`
	Type      ChatSender `json:"type"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
}
