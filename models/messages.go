package models

// Message is a single chat message. Ordering is implied by its position in Chat.Messages.
type Message struct {
	Content string `dynamodbav:"content" json:"content"`
}
