// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a chat message scoped to one group. Messages are immutable
// after insert and are bulk-deleted when their group is deleted.
type Message struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID  primitive.ObjectID `bson:"group_id" json:"groupId"`
	SenderID primitive.ObjectID `bson:"sender_id" json:"senderId"`
	Content  string             `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
