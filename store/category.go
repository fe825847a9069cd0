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

type CategoryPatch struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

type CategoryStore struct {
	coll Collection
	log  *logger.Logger
}

func NewCategoryStore(coll Collection, baseLog *logger.Logger) *CategoryStore {
	return &CategoryStore{coll: coll, log: baseLog.With("store", "categories")}
}

func (s *CategoryStore) GetOne(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("categories: fetch %s: %w", id.Hex(), err)
	}
	return &category, nil
}

func (s *CategoryStore) GetAll(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("categories: list: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("categories: decode list: %w", err)
	}
	return categories, nil
}

func (s *CategoryStore) Create(ctx context.Context, category models.Category) (*models.Category, error) {
	if category.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}

	now := time.Now().Unix()
	category.ID = primitive.NewObjectID()
	category.CreatedAt = now
	category.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, category); err != nil {
		return nil, fmt.Errorf("categories: insert: %w", err)
	}
	return &category, nil
}

func (s *CategoryStore) Update(ctx context.Context, id primitive.ObjectID, patch CategoryPatch) error {
	set := bson.M{"updatedAt": time.Now().Unix()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Active != nil {
		set["active"] = *patch.Active
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("categories: update %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("categories: delete %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
