package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"postboard/logger"
	"postboard/models"
)

func newTestPostStore(t *testing.T) (*PostStore, *fakePosts) {
	t.Helper()
	coll := newFakePosts()
	return NewPostStore(coll, logger.NewNop()), coll
}

func TestCreateAndGetOne(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, PostDraft{Title: "T"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.ID.IsZero() {
		t.Fatalf("Create: expected assigned id")
	}

	got, err := s.GetOne(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if got.Title != "T" {
		t.Fatalf("GetOne: title = %q, want %q", got.Title, "T")
	}
	if len(got.Comments) != 0 || len(got.Photos) != 0 {
		t.Fatalf("GetOne: expected empty children, got %d comments, %d photos", len(got.Comments), len(got.Photos))
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	s, _ := newTestPostStore(t)

	_, err := s.Create(context.Background(), PostDraft{Description: "no title"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Create without title: got %v, want ValidationError", err)
	}
	if verr.Field != "title" {
		t.Fatalf("ValidationError field = %q, want %q", verr.Field, "title")
	}
}

func TestCreateAssignsInitialChildIDs(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, PostDraft{
		Title:    "with children",
		Comments: []models.Comment{{UserID: "u1", Description: "first"}},
		Photos:   []models.Photo{{Title: "p", PhotoURL: "http://x/p.jpg"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(post.Comments) != 1 || post.Comments[0].ID.IsZero() {
		t.Fatalf("expected initial comment with assigned id, got %+v", post.Comments)
	}
	if len(post.Photos) != 1 || post.Photos[0].ID.IsZero() {
		t.Fatalf("expected initial photo with assigned id, got %+v", post.Photos)
	}
}

func TestGetOneMissing(t *testing.T) {
	s, _ := newTestPostStore(t)

	_, err := s.GetOne(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("GetOne missing: got %v, want ErrPostNotFound", err)
	}
}

func TestGetAll(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Create(ctx, PostDraft{Title: fmt.Sprintf("post %d", i)}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	posts, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("GetAll: got %d posts, want 3", len(posts))
	}
}

func TestUpdatePartial(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, PostDraft{Title: "A", Description: "B", Active: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	desc := "C"
	if err := s.Update(ctx, post.ID, PostPatch{Description: &desc}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.GetOne(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if got.Title != "A" {
		t.Fatalf("untouched title overwritten: %q", got.Title)
	}
	if got.Description != "C" {
		t.Fatalf("description = %q, want %q", got.Description, "C")
	}
	if !got.Active {
		t.Fatalf("untouched active flag overwritten")
	}

	// An explicit false must be applied, not skipped as a zero value.
	inactive := false
	if err := s.Update(ctx, post.ID, PostPatch{Active: &inactive}); err != nil {
		t.Fatalf("Update active=false: %v", err)
	}
	got, err = s.GetOne(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if got.Active {
		t.Fatalf("explicit active=false was not applied")
	}
}

func TestUpdateMissingPost(t *testing.T) {
	s, _ := newTestPostStore(t)

	title := "x"
	err := s.Update(context.Background(), primitive.NewObjectID(), PostPatch{Title: &title})
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("Update missing: got %v, want ErrPostNotFound", err)
	}
}

func TestDeleteCascades(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, PostDraft{Title: "doomed"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := s.AddComment(ctx, post.ID, models.Comment{UserID: "u", Description: "c"}); err != nil {
			t.Fatalf("AddComment: %v", err)
		}
	}
	if _, err := s.AddPhoto(ctx, post.ID, models.Photo{Title: "p", PhotoURL: "http://x"}); err != nil {
		t.Fatalf("AddPhoto: %v", err)
	}

	if err := s.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.GetOne(ctx, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("GetOne after delete: got %v, want ErrPostNotFound", err)
	}
	if err := s.Delete(ctx, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("second Delete: got %v, want ErrPostNotFound", err)
	}
}

func TestCommentLifecycle(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, PostDraft{Title: "Trip"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ref, err := s.AddComment(ctx, post.ID, models.Comment{UserID: "u1", Description: "nice"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if ref.ID.IsZero() {
		t.Fatalf("AddComment: expected assigned id")
	}
	if ref.Comment.Description != "nice" {
		t.Fatalf("AddComment: payload = %+v", ref.Comment)
	}

	got, err := s.GetOne(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if len(got.Comments) != 1 || got.Comments[0].ID != ref.ID {
		t.Fatalf("GetOne: comments = %+v, want the one added", got.Comments)
	}

	if err := s.DeleteComment(ctx, post.ID, ref.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	got, err = s.GetOne(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if len(got.Comments) != 0 {
		t.Fatalf("GetOne after delete: comments = %+v, want empty", got.Comments)
	}

	// Deleting the same comment again: the post still matches but nothing
	// is pulled, so the failure names the comment, not the post.
	if err := s.DeleteComment(ctx, post.ID, ref.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("second DeleteComment: got %v, want ErrCommentNotFound", err)
	}
}

func TestUpdateCommentClassification(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, PostDraft{Title: "classified"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	ref, err := s.AddComment(ctx, post.ID, models.Comment{UserID: "u1", Description: "v1"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	err = s.UpdateComment(ctx, primitive.NewObjectID(), ref.ID, models.Comment{UserID: "u1"})
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("UpdateComment on missing post: got %v, want ErrPostNotFound", err)
	}

	err = s.UpdateComment(ctx, post.ID, primitive.NewObjectID(), models.Comment{UserID: "u1"})
	if !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("UpdateComment on missing comment: got %v, want ErrCommentNotFound", err)
	}

	if err := s.UpdateComment(ctx, post.ID, ref.ID, models.Comment{UserID: "u1", Description: "v2"}); err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}
	got, err := s.GetOne(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if got.Comments[0].Comment.Description != "v2" {
		t.Fatalf("comment not updated: %+v", got.Comments[0].Comment)
	}
}

func TestPhotoLifecycle(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, PostDraft{Title: "gallery"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ref, err := s.AddPhoto(ctx, post.ID, models.Photo{Title: "sunset", PhotoURL: "http://x/1.jpg"})
	if err != nil {
		t.Fatalf("AddPhoto: %v", err)
	}

	err = s.UpdatePhoto(ctx, post.ID, primitive.NewObjectID(), models.Photo{Title: "other", PhotoURL: "http://x/2.jpg"})
	if !errors.Is(err, ErrPhotoNotFound) {
		t.Fatalf("UpdatePhoto on missing photo: got %v, want ErrPhotoNotFound", err)
	}

	if err := s.UpdatePhoto(ctx, post.ID, ref.ID, models.Photo{Title: "sunrise", PhotoURL: "http://x/1.jpg"}); err != nil {
		t.Fatalf("UpdatePhoto: %v", err)
	}

	if err := s.DeletePhoto(ctx, post.ID, ref.ID); err != nil {
		t.Fatalf("DeletePhoto: %v", err)
	}
	if err := s.DeletePhoto(ctx, post.ID, ref.ID); !errors.Is(err, ErrPhotoNotFound) {
		t.Fatalf("second DeletePhoto: got %v, want ErrPhotoNotFound", err)
	}
	if err := s.DeletePhoto(ctx, primitive.NewObjectID(), ref.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("DeletePhoto on missing post: got %v, want ErrPostNotFound", err)
	}
}

func TestAddCommentMissingPost(t *testing.T) {
	s, _ := newTestPostStore(t)

	_, err := s.AddComment(context.Background(), primitive.NewObjectID(), models.Comment{UserID: "u"})
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("AddComment missing post: got %v, want ErrPostNotFound", err)
	}
}

// Concurrent appends to one post must not lose updates: every id handed back
// has to be present afterwards.
func TestAddCommentConcurrent(t *testing.T) {
	s, _ := newTestPostStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, PostDraft{Title: "contended"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const n = 32
	ids := make(chan primitive.ObjectID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref, err := s.AddComment(ctx, post.ID, models.Comment{UserID: "u", Description: fmt.Sprintf("c%d", i)})
			if err != nil {
				t.Errorf("AddComment %d: %v", i, err)
				return
			}
			ids <- ref.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[primitive.ObjectID]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate comment id %s", id.Hex())
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("got %d successful appends, want %d", len(seen), n)
	}

	got, err := s.GetOne(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if len(got.Comments) != n {
		t.Fatalf("lost update: %d comments stored, want %d", len(got.Comments), n)
	}
	for _, ref := range got.Comments {
		if !seen[ref.ID] {
			t.Fatalf("stored comment %s was never returned to a caller", ref.ID.Hex())
		}
	}
}
