// internal/app/store/announcement/store.go
package announcement

import (
	"context"
	"errors"

	"github.com/dalemusser/schoolboard/internal/app/system/isodate"
	"github.com/dalemusser/schoolboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no announcement matches the given ID.
var ErrNotFound = errors.New("announcement not found")

// Store wraps the announcements collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("announcements")}
}

// sortNewestFirst orders results by created_at descending. created_at
// strings share one fixed layout, so the string sort is chronological.
var sortNewestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

// Active returns announcements whose manual switch is on and whose window
// contains now, newest first. now must be in isodate.Layout; the window
// bounds are compared as strings inside Mongo.
func (s *Store) Active(ctx context.Context, now string) ([]models.Announcement, error) {
	filter := bson.M{
		"active": true,
		"$or": bson.A{
			bson.M{"start_date": nil},                 // no start date means immediately active
			bson.M{"start_date": bson.M{"$lte": now}}, // start date has passed
		},
		"end_date": bson.M{"$gte": now}, // end date hasn't passed
	}
	return s.find(ctx, filter)
}

// List returns every announcement, newest first, regardless of active
// state or window.
func (s *Store) List(ctx context.Context) ([]models.Announcement, error) {
	return s.find(ctx, bson.M{})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Announcement, error) {
	cur, err := s.c.Find(ctx, filter, sortNewestFirst)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var anns []models.Announcement
	if err := cur.All(ctx, &anns); err != nil {
		return nil, err
	}
	return anns, nil
}

// GetByID loads one announcement. Returns ErrNotFound if no document
// matches.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Announcement, error) {
	var a models.Announcement
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CreateInput holds the caller-supplied fields for a new announcement.
// Message must already be trimmed and sanitized; dates must already be
// validated.
type CreateInput struct {
	Message   string
	StartDate *string
	EndDate   string
	CreatedBy string
}

// Create inserts a new announcement. The store assigns the ID and
// created_at, and new announcements start with the manual switch on.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.Announcement, error) {
	active := true
	a := models.Announcement{
		ID:        primitive.NewObjectID(),
		Message:   in.Message,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		CreatedBy: in.CreatedBy,
		CreatedAt: isodate.Now(),
		Active:    &active,
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// UpdateInput holds the replacement values for an announcement's mutable
// fields. A nil StartDate stores null (no lower bound); id, created_by,
// and created_at are never touched.
type UpdateInput struct {
	Message   string
	StartDate *string
	EndDate   string
	Active    bool
}

// Update replaces the mutable fields of the matching announcement.
// Returns ErrNotFound if no document matches.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) error {
	set := bson.M{
		"message":    in.Message,
		"start_date": in.StartDate,
		"end_date":   in.EndDate,
		"active":     in.Active,
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive flips the manual switch on the matching announcement.
// Returns ErrNotFound if no document matches.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"active": active}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete physically removes the matching announcement.
// Returns ErrNotFound if nothing was deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
