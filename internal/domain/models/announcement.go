// internal/domain/models/announcement.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is a time-windowed notice shown to everyone while its
// window is open and its manual switch is on.
//
// Date fields are ISO-8601 strings, not time.Time. The activation window
// is evaluated inside Mongo with $lte/$gte on these strings, so they must
// stay in a single consistent layout where lexicographic order equals
// chronological order (see the isodate package). Decoding them into
// time.Time would change the comparison semantics for mixed-offset input.
type Announcement struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Message string             `bson:"message" json:"message"`

	// StartDate is optional; nil (stored as null) means the announcement
	// is active immediately, with no lower bound.
	StartDate *string `bson:"start_date" json:"start_date"`
	EndDate   string  `bson:"end_date" json:"end_date"`

	CreatedBy string `bson:"created_by" json:"created_by"`
	CreatedAt string `bson:"created_at" json:"created_at"`

	// Active is the manual on/off switch, independent of the date window.
	// A pointer so that records written before the flag existed decode as
	// nil rather than false; IsActive treats those as on.
	Active *bool `bson:"active" json:"active"`
}

// IsActive reports the manual switch, treating a missing flag as on.
func (a *Announcement) IsActive() bool {
	return a.Active == nil || *a.Active
}
