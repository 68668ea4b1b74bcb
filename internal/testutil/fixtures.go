// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/schoolboard/internal/app/system/isodate"
	"github.com/dalemusser/schoolboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateTeacher creates a teacher directory entry with the given username.
// The password hash is a placeholder; nothing in this service verifies it.
func (f *Fixtures) CreateTeacher(ctx context.Context, username string) models.Teacher {
	f.t.Helper()

	teacher := models.Teacher{
		Username:     username,
		DisplayName:  "Test Teacher",
		Role:         "teacher",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}

	_, err := f.db.Collection("teachers").InsertOne(ctx, teacher)
	if err != nil {
		f.t.Fatalf("failed to create test teacher: %v", err)
	}

	return teacher
}

// AnnouncementSpec describes a test announcement. Zero values get
// sensible defaults: an open window ending far in the future, active on.
type AnnouncementSpec struct {
	Message   string
	StartDate *string
	EndDate   string
	CreatedBy string
	CreatedAt string
	Active    *bool
}

// CreateAnnouncement inserts an announcement document directly,
// bypassing the store, so tests can build legacy and edge-case shapes.
func (f *Fixtures) CreateAnnouncement(ctx context.Context, spec AnnouncementSpec) models.Announcement {
	f.t.Helper()

	if spec.EndDate == "" {
		spec.EndDate = "2099-01-01T00:00:00"
	}
	if spec.CreatedBy == "" {
		spec.CreatedBy = "teacher1"
	}
	if spec.CreatedAt == "" {
		spec.CreatedAt = isodate.Now()
	}
	if spec.Active == nil {
		active := true
		spec.Active = &active
	}

	ann := models.Announcement{
		ID:        primitive.NewObjectID(),
		Message:   spec.Message,
		StartDate: spec.StartDate,
		EndDate:   spec.EndDate,
		CreatedBy: spec.CreatedBy,
		CreatedAt: spec.CreatedAt,
		Active:    spec.Active,
	}

	_, err := f.db.Collection("announcements").InsertOne(ctx, ann)
	if err != nil {
		f.t.Fatalf("failed to create test announcement: %v", err)
	}

	return ann
}

// StrPtr returns a pointer to s, for optional string fields in specs.
func StrPtr(s string) *string { return &s }

// BoolPtr returns a pointer to b, for the Active field in specs.
func BoolPtr(b bool) *bool { return &b }
