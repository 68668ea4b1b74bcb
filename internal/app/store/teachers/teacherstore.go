// internal/app/store/teachers/teacherstore.go
package teacherstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/schoolboard/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Store wraps the teachers collection. Usernames are the document _id, so
// every lookup here is a primary-key read.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teachers")}
}

var (
	// ErrDuplicateUsername is returned when creating a teacher whose
	// username already exists.
	ErrDuplicateUsername = errors.New("a teacher with this username already exists")
	errEmptyUsername     = errors.New("username must not be empty")
)

// Exists reports whether a teacher account with the given username exists.
// This is the sole authentication check the announcement service performs.
func (s *Store) Exists(ctx context.Context, username string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": username}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// GetByUsername loads a teacher account. Returns mongo.ErrNoDocuments if
// not found.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	var t models.Teacher
	if err := s.c.FindOne(ctx, bson.M{"_id": username}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateInput holds the fields for a new teacher account.
type CreateInput struct {
	Username    string
	DisplayName string
	Role        string
	Password    string
}

// Create inserts a new teacher account, hashing the password with bcrypt.
// Sign-in itself is owned by the authentication subsystem; this path
// exists for seeding and administration.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.Teacher, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return models.Teacher{}, errEmptyUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Teacher{}, err
	}

	role := in.Role
	if role == "" {
		role = "teacher"
	}

	t := models.Teacher{
		Username:     username,
		DisplayName:  in.DisplayName,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Teacher{}, ErrDuplicateUsername
		}
		return models.Teacher{}, err
	}
	return t, nil
}
