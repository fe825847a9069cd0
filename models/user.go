package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	FirstName    string             `bson:"firstName,omitempty" json:"firstName"`
	LastName     string             `bson:"lastName,omitempty" json:"lastName"`
	PhoneNumber  string             `bson:"phoneNumber,omitempty" json:"phoneNumber"`
	Groups       []GroupRef         `bson:"groups" json:"groups"`
	PasswordHash string             `bson:"password" json:"-"`
	CreatedAt    int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt    int64              `bson:"updatedAt" json:"updatedAt"`
}

// GroupRef embeds a group value in a user document.
type GroupRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Group Group              `bson:"group" json:"group"`
}
