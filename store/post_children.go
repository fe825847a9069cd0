package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"postboard/models"
)

// Mutations of the comments and photos embedded in a post.
//
// Appending fetches the whole document, mutates it in memory and writes it
// back, because the store has to assign the new child id and report the
// element it appended. Two concurrent appends to one post would otherwise
// overwrite each other's save, so appends are serialized by a per-post lock
// held until the write is acknowledged.
//
// Update and delete act on an already-identified child, so they are issued as
// single targeted updates the server applies atomically and need no lock.
// MatchedCount answers "does the post exist" and ModifiedCount answers "did a
// child change", which keeps the two not-found causes apart.

func (s *PostStore) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (*models.CommentRef, error) {
	s.add.Lock(postID.Hex())
	defer s.add.Unlock(postID.Hex())

	post, err := s.GetOne(ctx, postID)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	post.Comments = append(post.Comments, models.CommentRef{ID: primitive.NewObjectID(), Comment: comment})
	post.UpdatedAt = now

	if err := s.replace(ctx, post); err != nil {
		return nil, err
	}

	ref := &post.Comments[len(post.Comments)-1]
	s.log.Debug("comment added", "postId", postID.Hex(), "commentId", ref.ID.Hex())
	return ref, nil
}

func (s *PostStore) UpdateComment(ctx context.Context, postID, commentID primitive.ObjectID, comment models.Comment) error {
	// Stamping updatedAt here means the write is never a byte-level no-op, so
	// ModifiedCount == 0 can only mean the comment does not exist.
	comment.UpdatedAt = time.Now().Unix()

	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"c._id": commentID}},
	})
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{"comments.$[c].comment": comment}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("posts: update comment %s/%s: %w", postID.Hex(), commentID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrPostNotFound
	}
	if result.ModifiedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (s *PostStore) DeleteComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}},
	)
	if err != nil {
		return fmt.Errorf("posts: delete comment %s/%s: %w", postID.Hex(), commentID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrPostNotFound
	}
	if result.ModifiedCount == 0 {
		return ErrCommentNotFound
	}
	s.log.Debug("comment deleted", "postId", postID.Hex(), "commentId", commentID.Hex())
	return nil
}

func (s *PostStore) AddPhoto(ctx context.Context, postID primitive.ObjectID, photo models.Photo) (*models.PhotoRef, error) {
	s.add.Lock(postID.Hex())
	defer s.add.Unlock(postID.Hex())

	post, err := s.GetOne(ctx, postID)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	photo.CreatedAt = now
	photo.UpdatedAt = now
	post.Photos = append(post.Photos, models.PhotoRef{ID: primitive.NewObjectID(), Photo: photo})
	post.UpdatedAt = now

	if err := s.replace(ctx, post); err != nil {
		return nil, err
	}

	ref := &post.Photos[len(post.Photos)-1]
	s.log.Debug("photo added", "postId", postID.Hex(), "photoId", ref.ID.Hex())
	return ref, nil
}

func (s *PostStore) UpdatePhoto(ctx context.Context, postID, photoID primitive.ObjectID, photo models.Photo) error {
	photo.UpdatedAt = time.Now().Unix()

	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"p._id": photoID}},
	})
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{"photos.$[p].photo": photo}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("posts: update photo %s/%s: %w", postID.Hex(), photoID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrPostNotFound
	}
	if result.ModifiedCount == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (s *PostStore) DeletePhoto(ctx context.Context, postID, photoID primitive.ObjectID) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"photos": bson.M{"_id": photoID}}},
	)
	if err != nil {
		return fmt.Errorf("posts: delete photo %s/%s: %w", postID.Hex(), photoID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrPostNotFound
	}
	if result.ModifiedCount == 0 {
		return ErrPhotoNotFound
	}
	s.log.Debug("photo deleted", "postId", postID.Hex(), "photoId", photoID.Hex())
	return nil
}

func (s *PostStore) replace(ctx context.Context, post *models.Post) error {
	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return fmt.Errorf("posts: save %s: %w", post.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		// The post was deleted between fetch and save; the per-post lock only
		// fences other appends.
		return ErrPostNotFound
	}
	return nil
}
