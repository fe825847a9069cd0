package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"postboard/logger"
	"postboard/store"
)

// Stores bundles everything the handler functions talk to.
type Stores struct {
	Posts      *store.PostStore
	Users      *store.UserStore
	Groups     *store.GroupStore
	Categories *store.CategoryStore
	Comments   *store.CommentStore
	Photos     *store.PhotoStore
}

var (
	log    *logger.Logger
	stores Stores
)

// Init wires the logger and stores; must run before SetupRouter.
func Init(baseLog *logger.Logger, s Stores) {
	log = baseLog.With("component", "handlers")
	stores = s
}

// respondError maps store failures onto HTTP statuses: bad input is 400,
// the not-found family is 404, anything else is a 500 that gets logged but
// never leaks driver details to the client.
func respondError(c *gin.Context, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case store.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error("store failure", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return primitive.NilObjectID, false
	}
	return id, true
}
