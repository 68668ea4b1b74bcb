// internal/app/features/announcements/handler.go
package announcements

import (
	"github.com/dalemusser/schoolboard/internal/app/store/announcement"
	teacherstore "github.com/dalemusser/schoolboard/internal/app/store/teachers"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all Announcements handlers.
type Handler struct {
	DB       *mongo.Database
	Store    *announcement.Store
	Teachers *teacherstore.Store
	Log      *zap.Logger
}

// NewHandler constructs an Announcements Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Store:    announcement.New(db),
		Teachers: teacherstore.New(db),
		Log:      logger,
	}
}
