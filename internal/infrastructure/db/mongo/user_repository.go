package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository stores both user variants in one collection, discriminated
// by role. Variant fields are flattened onto the document.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoGeoPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type mongoWorkingHours struct {
	Start string `bson:"start"`
	End   string `bson:"end"`
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id"`
	Role         string             `bson:"role"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	WhatsApp     string             `bson:"whatsapp,omitempty"`

	// admin
	Name       string `bson:"name,omitempty"`
	Department string `bson:"department,omitempty"`

	// vendor
	Address          string             `bson:"address,omitempty"`
	Location         *mongoGeoPoint     `bson:"location,omitempty"`
	ServiceRadiusKm  *float64           `bson:"service_radius_km,omitempty"`
	CapacityKgPerDay *float64           `bson:"capacity_kg_per_day,omitempty"`
	WorkingHours     *mongoWorkingHours `bson:"working_hours,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	doc := mongoUser{
		Role:         string(u.Role),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		WhatsApp:     u.WhatsApp,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
	switch u.Role {
	case domain.RoleAdmin:
		if u.Admin != nil {
			doc.Name = u.Admin.Name
			doc.Department = string(u.Admin.Department)
		}
	case domain.RoleVendor:
		if v := u.Vendor; v != nil {
			radius, capacity := v.ServiceRadiusKm, v.CapacityKgPerDay
			doc.Address = v.Address
			doc.Location = &mongoGeoPoint{Type: v.Location.Type, Coordinates: v.Location.Coordinates}
			doc.ServiceRadiusKm = &radius
			doc.CapacityKgPerDay = &capacity
			doc.WorkingHours = &mongoWorkingHours{Start: v.WorkingHours.Start, End: v.WorkingHours.End}
		}
	}
	return doc
}

func (m mongoUser) toDomain() *domain.User {
	u := &domain.User{
		ID:           m.ID.Hex(),
		Role:         domain.Role(m.Role),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		WhatsApp:     m.WhatsApp,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	switch u.Role {
	case domain.RoleAdmin:
		u.Admin = &domain.AdminProfile{Name: m.Name, Department: domain.Department(m.Department)}
	case domain.RoleVendor:
		v := &domain.VendorProfile{Address: m.Address}
		if m.Location != nil {
			v.Location = domain.GeoPoint{Type: m.Location.Type, Coordinates: m.Location.Coordinates}
		}
		if m.ServiceRadiusKm != nil {
			v.ServiceRadiusKm = *m.ServiceRadiusKm
		}
		if m.CapacityKgPerDay != nil {
			v.CapacityKgPerDay = *m.CapacityKgPerDay
		}
		if m.WorkingHours != nil {
			v.WorkingHours = domain.WorkingHours{Start: m.WorkingHours.Start, End: m.WorkingHours.End}
		}
		u.Vendor = v
	}
	return u
}

// Create inserts a new user. A duplicate email maps to domain.ErrEmailInUse.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoUser(user)
	doc.ID = primitive.NewObjectID()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailInUse
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID looks a user up by hex id. A malformed id is reported as not found.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique email index and the indexes reserved for
// vendor discovery.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}, Options: options.Index().SetSparse(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
