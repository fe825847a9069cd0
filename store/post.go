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

// PostDraft carries the fields accepted when creating a post. Title is the
// only required field; initial comments and photos are optional and get ids
// assigned on insert.
type PostDraft struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	UserID      string           `json:"userId"`
	CategoryID  string           `json:"categoryId"`
	Active      bool             `json:"active"`
	Abuse       int              `json:"abuse"`
	Comments    []models.Comment `json:"comments"`
	Photos      []models.Photo   `json:"photos"`
}

// PostPatch is a partial update. Pointer fields distinguish "omitted" from an
// explicit zero value: nil leaves the stored field untouched, a pointer to
// false or 0 overwrites it.
type PostPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CategoryID  *string `json:"categoryId"`
	Active      *bool   `json:"active"`
	Abuse       *int    `json:"abuse"`
}

// PostStore owns persistence of the post aggregate and its embedded comment
// and photo collections.
type PostStore struct {
	coll Collection
	log  *logger.Logger
	add  *keyMutex
}

func NewPostStore(coll Collection, baseLog *logger.Logger) *PostStore {
	return &PostStore{
		coll: coll,
		log:  baseLog.With("store", "posts"),
		add:  newKeyMutex(),
	}
}

func (s *PostStore) GetOne(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("posts: fetch %s: %w", id.Hex(), err)
	}
	return &post, nil
}

func (s *PostStore) GetAll(ctx context.Context) ([]models.Post, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("posts: list: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("posts: decode list: %w", err)
	}
	return posts, nil
}

func (s *PostStore) Create(ctx context.Context, draft PostDraft) (*models.Post, error) {
	if draft.Title == "" {
		return nil, &ValidationError{Field: "title"}
	}

	now := time.Now().Unix()
	post := models.Post{
		ID:          primitive.NewObjectID(),
		Title:       draft.Title,
		Description: draft.Description,
		UserID:      draft.UserID,
		CategoryID:  draft.CategoryID,
		Active:      draft.Active,
		Abuse:       draft.Abuse,
		Comments:    make([]models.CommentRef, 0, len(draft.Comments)),
		Photos:      make([]models.PhotoRef, 0, len(draft.Photos)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, comment := range draft.Comments {
		post.Comments = append(post.Comments, models.CommentRef{ID: primitive.NewObjectID(), Comment: comment})
	}
	for _, photo := range draft.Photos {
		post.Photos = append(post.Photos, models.PhotoRef{ID: primitive.NewObjectID(), Photo: photo})
	}

	if _, err := s.coll.InsertOne(ctx, post); err != nil {
		return nil, fmt.Errorf("posts: insert: %w", err)
	}

	s.log.Debug("post created", "postId", post.ID.Hex())
	return &post, nil
}

func (s *PostStore) Update(ctx context.Context, id primitive.ObjectID, patch PostPatch) error {
	if patch.Title != nil && *patch.Title == "" {
		return &ValidationError{Field: "title"}
	}

	set := bson.M{"updatedAt": time.Now().Unix()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.CategoryID != nil {
		set["categoryId"] = *patch.CategoryID
	}
	if patch.Active != nil {
		set["active"] = *patch.Active
	}
	if patch.Abuse != nil {
		set["abuse"] = *patch.Abuse
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("posts: update %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete removes the post document; embedded comments and photos go with it.
func (s *PostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("posts: delete %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return ErrPostNotFound
	}
	s.log.Debug("post deleted", "postId", id.Hex())
	return nil
}
