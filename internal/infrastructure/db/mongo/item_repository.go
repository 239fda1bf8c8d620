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
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

const collectionItems = "ewaste_items"

type ItemRepository struct {
	col *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{col: db.Collection(collectionItems)}
}

type mongoHistoryEntry struct {
	Status    string             `bson:"status"`
	UpdatedBy primitive.ObjectID `bson:"updated_by"`
	Timestamp time.Time          `bson:"timestamp"`
}

type mongoItem struct {
	ID            primitive.ObjectID  `bson:"_id"`
	ItemName      string              `bson:"item_name"`
	Description   string              `bson:"description,omitempty"`
	Category      string              `bson:"category"`
	WeightKg      *float64            `bson:"weight_kg,omitempty"`
	LookupCode    string              `bson:"lookup_code"`
	ReportedBy    primitive.ObjectID  `bson:"reported_by"`
	Status        string              `bson:"status"`
	StatusHistory []mongoHistoryEntry `bson:"status_history"`
	CreatedAt     time.Time           `bson:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at"`
}

func toMongoHistoryEntry(e domain.StatusHistoryEntry) (mongoHistoryEntry, error) {
	by, err := primitive.ObjectIDFromHex(e.UpdatedBy)
	if err != nil {
		return mongoHistoryEntry{}, fmt.Errorf("invalid actor id %q: %w", e.UpdatedBy, err)
	}
	return mongoHistoryEntry{Status: string(e.Status), UpdatedBy: by, Timestamp: e.Timestamp.UTC()}, nil
}

func (m mongoItem) toDomain() *domain.EwasteItem {
	history := make([]domain.StatusHistoryEntry, len(m.StatusHistory))
	for i, h := range m.StatusHistory {
		history[i] = domain.StatusHistoryEntry{
			Status:    domain.ItemStatus(h.Status),
			UpdatedBy: h.UpdatedBy.Hex(),
			Timestamp: h.Timestamp,
		}
	}
	return &domain.EwasteItem{
		ID:            m.ID.Hex(),
		ItemName:      m.ItemName,
		Description:   m.Description,
		Category:      domain.Category(m.Category),
		WeightKg:      m.WeightKg,
		LookupCode:    m.LookupCode,
		ReportedBy:    m.ReportedBy.Hex(),
		Status:        domain.ItemStatus(m.Status),
		StatusHistory: history,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// Create inserts a new item document and sets item.ID. A duplicate lookup
// code maps to domain.ErrLookupCodeCollision.
func (r *ItemRepository) Create(ctx context.Context, item *domain.EwasteItem) error {
	reporter, err := primitive.ObjectIDFromHex(item.ReportedBy)
	if err != nil {
		return fmt.Errorf("invalid reporter id %q: %w", item.ReportedBy, err)
	}

	doc := mongoItem{
		ID:          primitive.NewObjectID(),
		ItemName:    item.ItemName,
		Description: item.Description,
		Category:    string(item.Category),
		WeightKg:    item.WeightKg,
		LookupCode:  item.LookupCode,
		ReportedBy:  reporter,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
	for _, e := range item.StatusHistory {
		h, err := toMongoHistoryEntry(e)
		if err != nil {
			return err
		}
		doc.StatusHistory = append(doc.StatusHistory, h)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrLookupCodeCollision
		}
		return fmt.Errorf("insert item: %w", err)
	}

	item.ID = doc.ID.Hex()
	return nil
}

// FindByID retrieves an item by hex id. A malformed id is reported as not found.
func (r *ItemRepository) FindByID(ctx context.Context, id string) (*domain.EwasteItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ItemRepository) FindByLookupCode(ctx context.Context, code string) (*domain.EwasteItem, error) {
	return r.findOne(ctx, bson.M{"lookup_code": code})
}

func (r *ItemRepository) findOne(ctx context.Context, filter bson.M) (*domain.EwasteItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoItem
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return doc.toDomain(), nil
}

// AppendStatus atomically sets the current status and appends a history entry.
// Without from, concurrent callers race: the last $set wins, every $push
// lands. With from, only the caller that still sees that status writes.
func (r *ItemRepository) AppendStatus(ctx context.Context, id string, from domain.ItemStatus, entry domain.StatusHistoryEntry) (*domain.EwasteItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}
	h, err := toMongoHistoryEntry(entry)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set":  bson.M{"status": h.Status, "updated_at": h.Timestamp},
		"$push": bson.M{"status_history": h},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	filter := bson.M{"_id": oid}
	if from != "" {
		filter["status"] = string(from)
	}

	var doc mongoItem
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if from != "" {
				return nil, domain.ErrInvalidTransition
			}
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("update item status: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns a page of items, newest first, plus the total match count.
func (r *ItemRepository) List(ctx context.Context, f ports.ListItemsFilter) ([]*domain.EwasteItem, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.ReportedBy != "" {
		oid, err := primitive.ObjectIDFromHex(f.ReportedBy)
		if err != nil {
			// no item can match a malformed reporter id
			return []*domain.EwasteItem{}, 0, nil
		}
		filter["reported_by"] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find items: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]*domain.EwasteItem, 0, limit)
	for cur.Next(ctx) {
		var doc mongoItem
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode item: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items: %w", err)
	}
	return items, total, nil
}

// EnsureIndexes creates the unique lookup code index and the browse indexes.
func (r *ItemRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "lookup_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reported_by", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
