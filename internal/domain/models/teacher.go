// internal/domain/models/teacher.go
package models

import "time"

// Teacher is a staff account in the teacher directory.
//
// The username is the document _id, so existence checks are a primary-key
// lookup. This service only ever asks "does this username exist";
// PasswordHash is stored for the authentication subsystem that owns
// sign-in, and is never serialized.
type Teacher struct {
	Username     string    `bson:"_id" json:"username"`
	DisplayName  string    `bson:"display_name" json:"display_name"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
