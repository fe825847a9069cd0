package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"postboard/logger"
	"postboard/models"
)

// CommentStore holds standalone comments. These are independent of the
// comments embedded in posts, which only exist inside their post document.
type CommentStore struct {
	coll Collection
	log  *logger.Logger
}

type CommentPatch struct {
	Description *string `json:"description"`
	Rating      *int    `json:"rating"`
	Abuse       *int    `json:"abuse"`
}

func NewCommentStore(coll Collection, baseLog *logger.Logger) *CommentStore {
	return &CommentStore{coll: coll, log: baseLog.With("store", "comments")}
}

func (s *CommentStore) GetOne(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("comments: fetch %s: %w", id.Hex(), err)
	}
	return &comment, nil
}

func (s *CommentStore) GetAll(ctx context.Context) ([]models.Comment, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("comments: list: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("comments: decode list: %w", err)
	}
	return comments, nil
}

func (s *CommentStore) Create(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	if comment.UserID == "" {
		return nil, &ValidationError{Field: "userId"}
	}

	now := time.Now().Unix()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, comment); err != nil {
		return nil, fmt.Errorf("comments: insert: %w", err)
	}
	return &comment, nil
}

func (s *CommentStore) Update(ctx context.Context, id primitive.ObjectID, patch CommentPatch) error {
	set := bson.M{"updatedAt": time.Now().Unix()}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}
	if patch.Abuse != nil {
		set["abuse"] = *patch.Abuse
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("comments: update %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (s *CommentStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("comments: delete %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}
