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

// PhotoStore holds standalone photo records, independent of the photos
// embedded in posts.
type PhotoStore struct {
	coll Collection
	log  *logger.Logger
}

type PhotoPatch struct {
	Title    *string `json:"title"`
	PhotoURL *string `json:"photoUrl"`
	Abuse    *int    `json:"abuse"`
}

func NewPhotoStore(coll Collection, baseLog *logger.Logger) *PhotoStore {
	return &PhotoStore{coll: coll, log: baseLog.With("store", "photos")}
}

func (s *PhotoStore) GetOne(ctx context.Context, id primitive.ObjectID) (*models.Photo, error) {
	var photo models.Photo
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&photo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("photos: fetch %s: %w", id.Hex(), err)
	}
	return &photo, nil
}

func (s *PhotoStore) GetAll(ctx context.Context) ([]models.Photo, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("photos: list: %w", err)
	}
	defer cursor.Close(ctx)

	photos := []models.Photo{}
	if err := cursor.All(ctx, &photos); err != nil {
		return nil, fmt.Errorf("photos: decode list: %w", err)
	}
	return photos, nil
}

func (s *PhotoStore) Create(ctx context.Context, photo models.Photo) (*models.Photo, error) {
	if photo.Title == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if photo.PhotoURL == "" {
		return nil, &ValidationError{Field: "photoUrl"}
	}

	now := time.Now().Unix()
	photo.ID = primitive.NewObjectID()
	photo.CreatedAt = now
	photo.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, photo); err != nil {
		return nil, fmt.Errorf("photos: insert: %w", err)
	}
	return &photo, nil
}

func (s *PhotoStore) Update(ctx context.Context, id primitive.ObjectID, patch PhotoPatch) error {
	set := bson.M{"updatedAt": time.Now().Unix()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.PhotoURL != nil {
		set["photoUrl"] = *patch.PhotoURL
	}
	if patch.Abuse != nil {
		set["abuse"] = *patch.Abuse
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("photos: update %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (s *PhotoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("photos: delete %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return ErrPhotoNotFound
	}
	return nil
}
