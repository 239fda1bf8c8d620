package domain

import "time"

// Role is the discriminant of the User sum type.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleVendor Role = "vendor"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleVendor
}

// Department is the fixed set of admin departments.
type Department string

var Departments = []Department{"CSE", "IT", "DS", "ECE", "EEE", "ME", "CE", "Other"}

func (d Department) Valid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// GeoPoint is a GeoJSON point; Coordinates is [lng, lat].
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// NewGeoPoint normalises a coordinate pair into a GeoJSON point.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// WorkingHours is a daily window in 24h HH:MM notation.
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AdminProfile holds the fields only admins carry.
type AdminProfile struct {
	Name       string     `json:"name"`
	Department Department `json:"department"`
}

// VendorProfile holds the fields only vendors carry.
type VendorProfile struct {
	Address          string       `json:"address"`
	Location         GeoPoint     `json:"location"`
	ServiceRadiusKm  float64      `json:"serviceRadiusKm"`
	CapacityKgPerDay float64      `json:"capacityKgPerDay"`
	WorkingHours     WorkingHours `json:"workingHours"`
}

// User models an authenticated actor in the system. Exactly one of Admin or
// Vendor is set, matching Role.
type User struct {
	ID           string         `json:"id"`
	Role         Role           `json:"role"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	WhatsApp     string         `json:"whatsapp,omitempty"`
	Admin        *AdminProfile  `json:"admin,omitempty"`
	Vendor       *VendorProfile `json:"vendor,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// DisplayName returns the public name of the user, if the variant has one.
func (u *User) DisplayName() string {
	switch u.Role {
	case RoleAdmin:
		if u.Admin != nil {
			return u.Admin.Name
		}
	}
	return ""
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID string
	Role   Role
}
