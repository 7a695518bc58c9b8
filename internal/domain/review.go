package domain

import "time"

// Ratings holds the five review sub-scores, each an integer in [1,5].
// Overall drives the aircraft's derived average rating.
type Ratings struct {
	Overall         int `bson:"overall" json:"overall" validate:"required,gte=1,lte=5"`
	Performance     int `bson:"performance" json:"performance" validate:"required,gte=1,lte=5"`
	VisualQuality   int `bson:"visual_quality" json:"visual_quality" validate:"required,gte=1,lte=5"`
	FlightModel     int `bson:"flight_model" json:"flight_model" validate:"required,gte=1,lte=5"`
	SystemsAccuracy int `bson:"systems_accuracy" json:"systems_accuracy" validate:"required,gte=1,lte=5"`
}

// Review is a user-submitted multi-criteria review tied to one aircraft and
// one user. UserName and UserAvatar are denormalized snapshots taken at
// creation time. At most one review exists per (aircraft_id, user_id) pair.
type Review struct {
	ID           string    `bson:"id" json:"id"`
	AircraftID   string    `bson:"aircraft_id" json:"aircraft_id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	UserName     string    `bson:"user_name" json:"user_name"`
	UserAvatar   string    `bson:"user_avatar,omitempty" json:"user_avatar,omitempty"`
	Title        string    `bson:"title" json:"title"`
	Content      string    `bson:"content" json:"content"`
	Ratings      Ratings   `bson:"ratings" json:"ratings"`
	HelpfulCount int       `bson:"helpful_count" json:"helpful_count"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// AircraftSummary is the compact aircraft annotation attached to reviews
// when listing a user's review history.
type AircraftSummary struct {
	Name                 string `bson:"name" json:"name"`
	Developer            string `bson:"developer" json:"developer"`
	AircraftManufacturer string `bson:"aircraft_manufacturer" json:"aircraft_manufacturer"`
	AircraftModel        string `bson:"aircraft_model" json:"aircraft_model"`
}

// UserReview is a review annotated with a summary of the aircraft it belongs
// to, used on user profile pages.
type UserReview struct {
	Review
	Aircraft *AircraftSummary `json:"aircraft,omitempty"`
}
