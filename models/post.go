package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Post is the aggregate root: comments and photos live inside the post
// document and are only addressable through it.
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description"`
	UserID      string             `bson:"userId,omitempty" json:"userId"`
	CategoryID  string             `bson:"categoryId,omitempty" json:"categoryId"`
	Active      bool               `bson:"active" json:"active"`
	Abuse       int                `bson:"abuse" json:"abuse"`
	Comments    []CommentRef       `bson:"comments" json:"comments"`
	Photos      []PhotoRef         `bson:"photos" json:"photos"`
	CreatedAt   int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   int64              `bson:"updatedAt" json:"updatedAt"`
}

// CommentRef embeds a comment value in a post. The id is assigned by the
// store on insert and is only meaningful together with the parent post id.
type CommentRef struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Comment Comment            `bson:"comment" json:"comment"`
}

// PhotoRef embeds a photo value in a post.
type PhotoRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Photo Photo              `bson:"photo" json:"photo"`
}
