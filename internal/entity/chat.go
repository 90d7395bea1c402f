package entity

import "time"

type Conversation struct {
	ID           int       `json:"id"`
	ProductID    *int      `json:"product_id,omitempty"`
	Participants []int     `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Message struct {
	ID             int       `json:"id"`
	ConversationID int       `json:"conversation_id"`
	SenderID       int       `json:"sender_id"`
	Content        string    `json:"content"`
	ReadStatus     bool      `json:"read_status"`
	CreatedAt      time.Time `json:"created_at"`
}
