package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"postboard/logger"
	"postboard/models"
)

type GroupPatch struct {
	Name  *string `json:"name"`
	Value *int    `json:"value"`
}

type GroupStore struct {
	coll Collection
	log  *logger.Logger
}

func NewGroupStore(coll Collection, baseLog *logger.Logger) *GroupStore {
	return &GroupStore{coll: coll, log: baseLog.With("store", "groups")}
}

func (s *GroupStore) GetOne(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var group models.Group
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("groups: fetch %s: %w", id.Hex(), err)
	}
	return &group, nil
}

func (s *GroupStore) GetAll(ctx context.Context) ([]models.Group, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("groups: list: %w", err)
	}
	defer cursor.Close(ctx)

	groups := []models.Group{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("groups: decode list: %w", err)
	}
	return groups, nil
}

func (s *GroupStore) Create(ctx context.Context, group models.Group) (*models.Group, error) {
	if group.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}

	group.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, group); err != nil {
		return nil, fmt.Errorf("groups: insert: %w", err)
	}
	return &group, nil
}

func (s *GroupStore) Update(ctx context.Context, id primitive.ObjectID, patch GroupPatch) error {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Value != nil {
		set["value"] = *patch.Value
	}
	if len(set) == 0 {
		return nil
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("groups: update %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrGroupNotFound
	}
	return nil
}

func (s *GroupStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("groups: delete %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return ErrGroupNotFound
	}
	return nil
}
