package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "test." + collectionUsers

	mt.Run("create vendor", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := &UserRepository{col: mt.Coll}

		created, err := repo.Create(context.Background(), &domain.User{
			Role:         domain.RoleVendor,
			Email:        "v@x.com",
			PasswordHash: "hash",
			Vendor: &domain.VendorProfile{
				Address:          "12 Green St",
				Location:         domain.NewGeoPoint(77.5, 12.9),
				ServiceRadiusKm:  10,
				CapacityKgPerDay: 50,
				WorkingHours:     domain.WorkingHours{Start: "09:00", End: "18:00"},
			},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
		require.NoError(mt, err)
		assert.NotEmpty(mt, created.ID)
		require.NotNil(mt, created.Vendor)
		assert.Nil(mt, created.Admin)
		assert.Equal(mt, []float64{77.5, 12.9}, created.Vendor.Location.Coordinates)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: email_1",
		}))
		repo := &UserRepository{col: mt.Coll}

		_, err := repo.Create(context.Background(), &domain.User{
			Role:  domain.RoleAdmin,
			Email: "a@b.com",
			Admin: &domain.AdminProfile{Name: "A", Department: "IT"},
		})
		assert.ErrorIs(mt, err, domain.ErrEmailInUse)
		assert.ErrorIs(mt, err, domain.ErrConflict)
	})

	mt.Run("find admin by email", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "role", Value: "admin"},
			{Key: "email", Value: "asha@campus.edu"},
			{Key: "password_hash", Value: "hash"},
			{Key: "name", Value: "Asha"},
			{Key: "department", Value: "CSE"},
		}))
		repo := &UserRepository{col: mt.Coll}

		u, err := repo.FindByEmail(context.Background(), "asha@campus.edu")
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), u.ID)
		assert.Equal(mt, domain.RoleAdmin, u.Role)
		require.NotNil(mt, u.Admin)
		assert.Nil(mt, u.Vendor)
		assert.Equal(mt, "Asha", u.Admin.Name)
		assert.Equal(mt, "hash", u.PasswordHash)
	})

	mt.Run("find by email not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := &UserRepository{col: mt.Coll}

		_, err := repo.FindByEmail(context.Background(), "ghost@x.com")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("find by malformed id", func(mt *mtest.T) {
		repo := &UserRepository{col: mt.Coll}

		_, err := repo.FindByID(context.Background(), "123")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}
