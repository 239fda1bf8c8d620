package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type locationRequest struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates"`
}

type workingHoursRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// registerRequest covers both roles; which fields are required depends on role.
type registerRequest struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
	WhatsApp string `json:"whatsapp,omitempty"`

	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`

	Address          string               `json:"address,omitempty"`
	Location         *locationRequest     `json:"location,omitempty"`
	ServiceRadiusKm  *float64             `json:"serviceRadiusKm,omitempty"`
	CapacityKgPerDay *float64             `json:"capacityKgPerDay,omitempty"`
	WorkingHours     *workingHoursRequest `json:"workingHours,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type geoPointResponse struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type workingHoursResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// userResponse flattens the role variant. The password hash is never included.
type userResponse struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp,omitempty"`

	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`

	Address          string                `json:"address,omitempty"`
	Location         *geoPointResponse     `json:"location,omitempty"`
	ServiceRadiusKm  *float64              `json:"serviceRadiusKm,omitempty"`
	CapacityKgPerDay *float64              `json:"capacityKgPerDay,omitempty"`
	WorkingHours     *workingHoursResponse `json:"workingHours,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type authResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
	Token   string       `json:"token"`
}
