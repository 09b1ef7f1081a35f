package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Gautam3767/product-catalog-backend/models"
)

// ContactRepo pushes contact filters down to MongoDB.
type ContactRepo struct {
	coll *mongo.Collection
}

func NewContactRepo(coll *mongo.Collection) *ContactRepo {
	return &ContactRepo{coll: coll}
}

func (r *ContactRepo) Create(ctx context.Context, c *models.Contact) error {
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	result, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return translate(err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

func (r *ContactRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Contact, error) {
	var c models.Contact
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Update applies u to one contact and returns the updated document.
func (r *ContactRepo) Update(ctx context.Context, id primitive.ObjectID, u models.ContactUpdate) (*models.Contact, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c models.Contact
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, contactUpdate(u), opts).Decode(&c)
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ContactRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of matching contacts, newest first, and the total match count.
func (r *ContactRepo) List(ctx context.Context, f models.ContactFilter, p models.Page) ([]models.Contact, int64, error) {
	filter := contactFilter(f)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(p.Skip()))
	if p.Limit > 0 {
		opts.SetLimit(int64(p.Limit))
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find contacts: %w", err)
	}
	defer cursor.Close(ctx)

	contacts := make([]models.Contact, 0)
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, 0, fmt.Errorf("decode contacts: %w", err)
	}
	return contacts, total, nil
}

func (r *ContactRepo) Count(ctx context.Context, f models.ContactFilter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, contactFilter(f))
	if err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

// UpdateMany applies u to every matching contact in a single multi-document
// update and returns the number of documents actually modified.
func (r *ContactRepo) UpdateMany(ctx context.Context, f models.ContactFilter, u models.ContactUpdate) (int64, error) {
	result, err := r.coll.UpdateMany(ctx, contactFilter(f), contactUpdate(u))
	if err != nil {
		return 0, fmt.Errorf("update contacts: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *ContactRepo) DeleteMany(ctx context.Context, f models.ContactFilter) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, contactFilter(f))
	if err != nil {
		return 0, fmt.Errorf("delete contacts: %w", err)
	}
	return result.DeletedCount, nil
}

// CountByField groups matching contacts by a top-level string field (status, service, priority).
func (r *ContactRepo) CountByField(ctx context.Context, field string, f models.ContactFilter) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: contactFilter(f)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	return r.groupCounts(ctx, pipeline)
}

// DailyCounts buckets contacts created in [from, to) by UTC calendar day ("2006-01-02").
func (r *ContactRepo) DailyCounts(ctx context.Context, from, to time.Time) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: contactFilter(models.ContactFilter{From: from, To: to})}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$createdAt"},
				{Key: "timezone", Value: "UTC"},
			}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	return r.groupCounts(ctx, pipeline)
}

func (r *ContactRepo) groupCounts(ctx context.Context, pipeline mongo.Pipeline) (map[string]int64, error) {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate contacts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Key   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode contact counts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

func contactFilter(f models.ContactFilter) bson.M {
	filter := bson.M{}
	if len(f.IDs) > 0 {
		filter["_id"] = bson.M{"$in": f.IDs}
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.Service != "" {
		filter["service"] = f.Service
	}
	if f.IsRead != nil {
		filter["isRead"] = *f.IsRead
	}

	created := bson.M{}
	if !f.From.IsZero() {
		created["$gte"] = f.From
	}
	if !f.To.IsZero() {
		created["$lt"] = f.To
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}

	if f.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"fullName": rx},
			bson.M{"email": rx},
			bson.M{"company": rx},
			bson.M{"subject": rx},
			bson.M{"message": rx},
		}
	}
	return filter
}

func contactUpdate(u models.ContactUpdate) bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.Priority != nil {
		set["priority"] = *u.Priority
	}
	if u.IsRead != nil {
		set["isRead"] = *u.IsRead
	}
	return bson.M{"$set": set}
}
