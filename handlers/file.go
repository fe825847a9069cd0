package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/gridfs"

	"postboard/database"
)

// Uploaded files live in a GridFS bucket rather than a regular collection.

func UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer src.Close()

	fileID, err := database.Uploads.UploadFromStream(header.Filename, src)
	if err != nil {
		log.Error("file upload failed", "filename", header.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"file": gin.H{
			"id":       fileID.Hex(),
			"filename": header.Filename,
			"size":     header.Size,
		},
	})
}

func GetFiles(c *gin.Context) {
	ctx, cancel := storeContext()
	defer cancel()

	cursor, err := database.Uploads.Find(bson.M{})
	if err != nil {
		log.Error("file listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list files"})
		return
	}
	defer cursor.Close(ctx)

	files := []gridfs.File{}
	if err := cursor.All(ctx, &files); err != nil {
		log.Error("file listing decode failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list files"})
		return
	}

	out := make([]gin.H, 0, len(files))
	for _, f := range files {
		out = append(out, gin.H{
			"id":         f.ID,
			"filename":   f.Name,
			"length":     f.Length,
			"uploadDate": f.UploadDate,
		})
	}
	c.JSON(http.StatusOK, gin.H{"files": out})
}

func DownloadFile(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	c.Header("Content-Type", "application/octet-stream")
	if _, err := database.Uploads.DownloadToStream(id, c.Writer); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		log.Error("file download failed", "fileId", id.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
	}
}

func DeleteFile(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := database.Uploads.Delete(id); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		log.Error("file delete failed", "fileId", id.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
