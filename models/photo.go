package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Photo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	PhotoURL  string             `bson:"photoUrl" json:"photoUrl"`
	Abuse     int                `bson:"abuse" json:"abuse"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64              `bson:"updatedAt" json:"updatedAt"`
}
