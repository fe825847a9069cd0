package store

import (
	"context"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"postboard/models"
)

// fakePosts is an in-memory stand-in for the posts collection. It implements
// exactly the operator shapes PostStore issues and reports matched/modified
// counts the way the server would, so the classification logic and the
// fetch-then-replace append race are both exercised for real.
type fakePosts struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Post
}

func newFakePosts() *fakePosts {
	return &fakePosts{docs: make(map[primitive.ObjectID]models.Post)}
}

func filterID(filter interface{}) primitive.ObjectID {
	id, _ := filter.(bson.M)["_id"].(primitive.ObjectID)
	return id
}

func (f *fakePosts) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[filterID(filter)]
	if !ok {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(doc, nil, nil)
}

func (f *fakePosts) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	docs := make([]interface{}, 0, len(f.docs))
	for _, doc := range f.docs {
		docs = append(docs, doc)
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

func (f *fakePosts) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc := document.(models.Post)
	f.docs[doc.ID] = doc
	return &mongo.InsertOneResult{InsertedID: doc.ID}, nil
}

func (f *fakePosts) ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOneOptions) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := filterID(filter)
	if _, ok := f.docs[id]; !ok {
		return &mongo.UpdateResult{}, nil
	}
	doc := *replacement.(*models.Post)
	f.docs[id] = doc
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakePosts) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := filterID(filter)
	doc, ok := f.docs[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}

	modified := int64(0)
	u := update.(bson.M)

	if set, ok := u["$set"].(bson.M); ok {
		if f.applySet(&doc, set, arrayFilterID(opts)) {
			modified = 1
		}
	}
	if pull, ok := u["$pull"].(bson.M); ok {
		if applyPull(&doc, pull) {
			modified = 1
		}
	}

	f.docs[id] = doc
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
}

func (f *fakePosts) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := filterID(filter)
	if _, ok := f.docs[id]; !ok {
		return &mongo.DeleteResult{}, nil
	}
	delete(f.docs, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

// arrayFilterID digs the child id out of an arrayFilters option like
// {"c._id": <oid>}.
func arrayFilterID(opts []*options.UpdateOptions) primitive.ObjectID {
	for _, o := range opts {
		if o == nil || o.ArrayFilters == nil {
			continue
		}
		for _, raw := range o.ArrayFilters.Filters {
			for _, v := range raw.(bson.M) {
				if id, ok := v.(primitive.ObjectID); ok {
					return id
				}
			}
		}
	}
	return primitive.NilObjectID
}

func (f *fakePosts) applySet(doc *models.Post, set bson.M, childID primitive.ObjectID) bool {
	changed := false
	for key, value := range set {
		switch key {
		case "title":
			if doc.Title != value.(string) {
				doc.Title = value.(string)
				changed = true
			}
		case "description":
			if doc.Description != value.(string) {
				doc.Description = value.(string)
				changed = true
			}
		case "categoryId":
			if doc.CategoryID != value.(string) {
				doc.CategoryID = value.(string)
				changed = true
			}
		case "active":
			if doc.Active != value.(bool) {
				doc.Active = value.(bool)
				changed = true
			}
		case "abuse":
			if doc.Abuse != value.(int) {
				doc.Abuse = value.(int)
				changed = true
			}
		case "updatedAt":
			if doc.UpdatedAt != value.(int64) {
				doc.UpdatedAt = value.(int64)
				changed = true
			}
		case "comments.$[c].comment":
			comment := value.(models.Comment)
			for i := range doc.Comments {
				if doc.Comments[i].ID == childID && !reflect.DeepEqual(doc.Comments[i].Comment, comment) {
					doc.Comments[i].Comment = comment
					changed = true
				}
			}
		case "photos.$[p].photo":
			photo := value.(models.Photo)
			for i := range doc.Photos {
				if doc.Photos[i].ID == childID && !reflect.DeepEqual(doc.Photos[i].Photo, photo) {
					doc.Photos[i].Photo = photo
					changed = true
				}
			}
		}
	}
	return changed
}

func applyPull(doc *models.Post, pull bson.M) bool {
	changed := false
	if cond, ok := pull["comments"].(bson.M); ok {
		id := cond["_id"].(primitive.ObjectID)
		kept := doc.Comments[:0]
		for _, ref := range doc.Comments {
			if ref.ID == id {
				changed = true
				continue
			}
			kept = append(kept, ref)
		}
		doc.Comments = kept
	}
	if cond, ok := pull["photos"].(bson.M); ok {
		id := cond["_id"].(primitive.ObjectID)
		kept := doc.Photos[:0]
		for _, ref := range doc.Photos {
			if ref.ID == id {
				changed = true
				continue
			}
			kept = append(kept, ref)
		}
		doc.Photos = kept
	}
	return changed
}
