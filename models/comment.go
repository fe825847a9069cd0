package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment doubles as a review: rating is optional.
type Comment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Description string             `bson:"description,omitempty" json:"description"`
	UserID      string             `bson:"userId" json:"userId"`
	Rating      int                `bson:"rating,omitempty" json:"rating,omitempty"`
	Abuse       int                `bson:"abuse" json:"abuse"`
	CreatedAt   int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   int64              `bson:"updatedAt" json:"updatedAt"`
}
