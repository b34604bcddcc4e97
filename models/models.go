package models

// Roles
const (
	RoleStudent = "Student"
	RoleAdmin   = "Admin"
)

// Facility types
const (
	TypeSnooker   = "Snooker"
	TypeFootball  = "Football"
	TypeBadminton = "Badminton"
)

// Facility statuses
const (
	FacilityActive      = "Active"
	FacilityMaintenance = "Maintenance"
)

// Booking statuses
const (
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
)

type User struct {
	UserID       string `json:"userid" bson:"userid"`
	Name         string `json:"name" bson:"name"`
	StudentID    string `json:"studentId" bson:"studentid"`
	Email        string `json:"email" bson:"email"`
	Password     string `json:"-" bson:"password"`
	Role         string `json:"role" bson:"role"`
	ProfileImage string `json:"profileImage,omitempty" bson:"profileimage,omitempty"`
	CreatedAt    int64  `json:"createdAt" bson:"createdat"`
}

type Facility struct {
	FacilityID string `json:"facilityid" bson:"facilityid"`
	Name       string `json:"name" bson:"name"`
	Type       string `json:"type" bson:"type"`
	Location   string `json:"location" bson:"location"`
	Capacity   int    `json:"capacity" bson:"capacity"`
	Status     string `json:"status" bson:"status"`
	CreatedAt  int64  `json:"createdAt" bson:"createdat"`
}

// Booking stores date as "YYYY-MM-DD" and times as zero-padded "HH:MM"
// local wall-clock strings. Fixed-width strings compare correctly with
// plain lexicographic ordering, which every overlap and expiry query
// relies on.
type Booking struct {
	BookingID  string `json:"bookingid" bson:"bookingid"`
	UserID     string `json:"userid" bson:"userid"`
	FacilityID string `json:"facilityid" bson:"facilityid"`
	Date       string `json:"date" bson:"date"`
	StartTime  string `json:"startTime" bson:"starttime"`
	EndTime    string `json:"endTime" bson:"endtime"`
	Status     string `json:"status" bson:"status"`
	CreatedAt  int64  `json:"createdAt" bson:"createdat"`
}

// Slot is a derived one-hour candidate interval. Never persisted.
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SlotClaim reserves one booked hour for one Confirmed booking. The _id is
// the natural key "facilityid|date|HH:MM", so a second claim for the same
// hour loses with a duplicate-key error no matter how the writers interleave.
type SlotClaim struct {
	ID        string `bson:"_id"`
	BookingID string `bson:"bookingid"`
}
