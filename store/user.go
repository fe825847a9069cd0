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

// UserDraft carries the fields accepted when creating a user. PasswordHash is
// expected to be bcrypt output; the store never sees the plaintext.
type UserDraft struct {
	Name         string
	Email        string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Groups       []models.Group
	PasswordHash string
}

type UserPatch struct {
	Name        *string         `json:"name"`
	Email       *string         `json:"email"`
	FirstName   *string         `json:"firstName"`
	LastName    *string         `json:"lastName"`
	PhoneNumber *string         `json:"phoneNumber"`
	Groups      *[]models.Group `json:"groups"`
}

type UserStore struct {
	coll Collection
	log  *logger.Logger
}

func NewUserStore(coll Collection, baseLog *logger.Logger) *UserStore {
	return &UserStore{coll: coll, log: baseLog.With("store", "users")}
}

func (s *UserStore) GetOne(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: fetch %s: %w", id.Hex(), err)
	}
	return &user, nil
}

func (s *UserStore) GetOneByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: fetch by email: %w", err)
	}
	return &user, nil
}

func (s *UserStore) GetAll(ctx context.Context) ([]models.User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("users: decode list: %w", err)
	}
	return users, nil
}

func (s *UserStore) Create(ctx context.Context, draft UserDraft) (*models.User, error) {
	if draft.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}
	if draft.PasswordHash == "" {
		return nil, &ValidationError{Field: "password"}
	}

	now := time.Now().Unix()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         draft.Name,
		Email:        draft.Email,
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		PhoneNumber:  draft.PhoneNumber,
		Groups:       make([]models.GroupRef, 0, len(draft.Groups)),
		PasswordHash: draft.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, group := range draft.Groups {
		user.Groups = append(user.Groups, models.GroupRef{ID: primitive.NewObjectID(), Group: group})
	}

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		return nil, fmt.Errorf("users: insert: %w", err)
	}

	s.log.Debug("user created", "userId", user.ID.Hex())
	return &user, nil
}

func (s *UserStore) Update(ctx context.Context, id primitive.ObjectID, patch UserPatch) error {
	set := bson.M{"updatedAt": time.Now().Unix()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		set["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["lastName"] = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		set["phoneNumber"] = *patch.PhoneNumber
	}
	if patch.Groups != nil {
		refs := make([]models.GroupRef, 0, len(*patch.Groups))
		for _, group := range *patch.Groups {
			refs = append(refs, models.GroupRef{ID: primitive.NewObjectID(), Group: group})
		}
		set["groups"] = refs
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("users: update %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("users: delete %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
