package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

var validate = validator.New()

// normalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if err := validate.Var(email, "email"); err != nil {
		return domain.Invalid("email", "email must be a valid email")
	}
	return nil
}

// validateClock checks a 24h HH:MM value.
func validateClock(field, value string) error {
	if value == "" {
		return domain.Required(field)
	}
	if err := validate.Var(value, "len=5,datetime=15:04"); err != nil {
		return domain.Invalid(field, "%s must be in HH:MM 24-hour format", field)
	}
	return nil
}

func validateNonNegative(field string, v *float64) error {
	if v == nil {
		return domain.Required(field)
	}
	if *v < 0 {
		return domain.Invalid(field, "%s must be at least 0", field)
	}
	return nil
}

// validateCoordinates rejects points the 2dsphere index on users cannot hold.
func validateCoordinates(lng, lat float64) error {
	if err := validate.Var(lng, "longitude"); err != nil {
		return domain.Invalid("location", "longitude must be between -180 and 180")
	}
	if err := validate.Var(lat, "latitude"); err != nil {
		return domain.Invalid("location", "latitude must be between -90 and 90")
	}
	return nil
}

func validateAdmin(in ports.RegisterInput) (*domain.AdminProfile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Required("name")
	}
	if in.Department == "" {
		return nil, domain.Required("department")
	}
	dept := domain.Department(in.Department)
	if !dept.Valid() {
		return nil, domain.Invalid("department", "department must be one of: %s", joinDepartments())
	}
	return &domain.AdminProfile{Name: name, Department: dept}, nil
}

func validateVendor(in ports.RegisterInput) (*domain.VendorProfile, error) {
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, domain.Required("address")
	}
	if in.Location == nil || in.Location.Coordinates == nil {
		return nil, domain.Required("location")
	}
	if len(in.Location.Coordinates) != 2 {
		return nil, domain.Invalid("location", "location.coordinates must be [lng, lat]")
	}
	if err := validateCoordinates(in.Location.Coordinates[0], in.Location.Coordinates[1]); err != nil {
		return nil, err
	}
	if err := validateNonNegative("serviceRadiusKm", in.ServiceRadiusKm); err != nil {
		return nil, err
	}
	if err := validateNonNegative("capacityKgPerDay", in.CapacityKgPerDay); err != nil {
		return nil, err
	}
	if in.WorkingHours == nil {
		return nil, domain.Required("workingHours")
	}
	if err := validateClock("workingHours.start", in.WorkingHours.Start); err != nil {
		return nil, err
	}
	if err := validateClock("workingHours.end", in.WorkingHours.End); err != nil {
		return nil, err
	}

	return &domain.VendorProfile{
		Address:          address,
		Location:         domain.NewGeoPoint(in.Location.Coordinates[0], in.Location.Coordinates[1]),
		ServiceRadiusKm:  *in.ServiceRadiusKm,
		CapacityKgPerDay: *in.CapacityKgPerDay,
		WorkingHours: domain.WorkingHours{
			Start: in.WorkingHours.Start,
			End:   in.WorkingHours.End,
		},
	}, nil
}

func joinDepartments() string {
	names := make([]string, len(domain.Departments))
	for i, d := range domain.Departments {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
