package domain

import "time"

type Message struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	SenderID   int64     `gorm:"column:sender_id;not null;index" json:"sender_id"`
	ReceiverID int64     `gorm:"column:receiver_id;not null;index" json:"receiver_id"`
	Content    string    `gorm:"column:content;not null" json:"content"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Message) TableName() string { return "Messages" }

// Counterpart returns the other participant relative to userID.
func (m *Message) Counterpart(userID int64) int64 {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// Conversation is one inbox row: a partner and the latest message exchanged.
type Conversation struct {
	Partner     UserSummary `json:"partner"`
	LastMessage *Message    `json:"last_message,omitempty"`
}
