package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "github.com/xChrisxY/orders-service/internal/entity"
	"github.com/xChrisxY/orders-service/internal/usecase"
)

// Persistence shape, kept out of domain. The _id is the store's native
// ObjectID; it is rendered as a hex string at the boundary.
type orderDoc struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	UserID                string             `bson:"user_id"`
	RestaurantID          string             `bson:"restaurant_id"`
	Items                 []itemDoc          `bson:"items"`
	DeliveryAddress       addressDoc         `bson:"delivery_address"`
	Status                string             `bson:"status"`
	TotalAmount           float64            `bson:"total_amount"`
	DeliveryFee           float64            `bson:"delivery_fee"`
	TaxAmount             float64            `bson:"tax_amount"`
	FinalAmount           float64            `bson:"final_amount"`
	Notes                 string             `bson:"notes,omitempty"`
	CreatedAt             time.Time          `bson:"created_at"`
	UpdatedAt             time.Time          `bson:"updated_at"`
	EstimatedDeliveryTime *time.Time         `bson:"estimated_delivery_time,omitempty"`
	DeliveredAt           *time.Time         `bson:"delivered_at,omitempty"`
}

type itemDoc struct {
	ProductID   string  `bson:"product_id"`
	ProductName string  `bson:"product_name"`
	Quantity    int     `bson:"quantity"`
	UnitPrice   float64 `bson:"unit_price"`
	Subtotal    float64 `bson:"subtotal"`
}

type addressDoc struct {
	Street         string `bson:"street"`
	City           string `bson:"city"`
	State          string `bson:"state"`
	PostalCode     string `bson:"postal_code"`
	Country        string `bson:"country"`
	AdditionalInfo string `bson:"additional_info,omitempty"`
}

type MongoOrderRepo struct {
	coll *mongo.Collection
}

func NewMongoOrderRepo(db *mongo.Database) *MongoOrderRepo {
	return &MongoOrderRepo{coll: db.Collection("orders")}
}

func (r *MongoOrderRepo) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	doc := toDoc(o)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("unexpected inserted id type")
	}
	created := *o
	created.ID = id.Hex()
	return &created, nil
}

// GetByID returns (nil, nil) for missing or malformed ids; the caller maps
// absence to its NotFound outcome.
func (r *MongoOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc orderDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return fromDoc(&doc), nil
}

func (r *MongoOrderRepo) GetByUserID(ctx context.Context, userID string, limit, skip int64) ([]domain.Order, int64, error) {
	return r.findPage(ctx, bson.M{"user_id": userID}, limit, skip)
}

func (r *MongoOrderRepo) GetByRestaurantID(ctx context.Context, restaurantID string, limit, skip int64) ([]domain.Order, int64, error) {
	return r.findPage(ctx, bson.M{"restaurant_id": restaurantID}, limit, skip)
}

func (r *MongoOrderRepo) GetByStatus(ctx context.Context, status domain.OrderStatus, limit, skip int64) ([]domain.Order, int64, error) {
	return r.findPage(ctx, bson.M{"status": string(status)}, limit, skip)
}

func (r *MongoOrderRepo) findPage(ctx context.Context, filter bson.M, limit, skip int64) ([]domain.Order, int64, error) {
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var orders []domain.Order
	for cur.Next(ctx) {
		var doc orderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		orders = append(orders, *fromDoc(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *MongoOrderRepo) Update(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(o.ID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	doc := toDoc(o)
	doc.ID = oid
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	updated := *o
	return &updated, nil
}

func (r *MongoOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoOrderRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

var _ usecase.OrderRepository = (*MongoOrderRepo)(nil)

func toDoc(o *domain.Order) *orderDoc {
	items := make([]itemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemDoc{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return &orderDoc{
		UserID:       o.UserID,
		RestaurantID: o.RestaurantID,
		Items:        items,
		DeliveryAddress: addressDoc{
			Street:         o.DeliveryAddress.Street,
			City:           o.DeliveryAddress.City,
			State:          o.DeliveryAddress.State,
			PostalCode:     o.DeliveryAddress.PostalCode,
			Country:        o.DeliveryAddress.Country,
			AdditionalInfo: o.DeliveryAddress.AdditionalInfo,
		},
		Status:                string(o.Status),
		TotalAmount:           o.TotalAmount,
		DeliveryFee:           o.DeliveryFee,
		TaxAmount:             o.TaxAmount,
		FinalAmount:           o.FinalAmount,
		Notes:                 o.Notes,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		DeliveredAt:           o.DeliveredAt,
	}
}

func fromDoc(d *orderDoc) *domain.Order {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return &domain.Order{
		ID:           d.ID.Hex(),
		UserID:       d.UserID,
		RestaurantID: d.RestaurantID,
		Items:        items,
		DeliveryAddress: domain.DeliveryAddress{
			Street:         d.DeliveryAddress.Street,
			City:           d.DeliveryAddress.City,
			State:          d.DeliveryAddress.State,
			PostalCode:     d.DeliveryAddress.PostalCode,
			Country:        d.DeliveryAddress.Country,
			AdditionalInfo: d.DeliveryAddress.AdditionalInfo,
		},
		Status:                domain.OrderStatus(d.Status),
		TotalAmount:           d.TotalAmount,
		DeliveryFee:           d.DeliveryFee,
		TaxAmount:             d.TaxAmount,
		FinalAmount:           d.FinalAmount,
		Notes:                 d.Notes,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
		EstimatedDeliveryTime: d.EstimatedDeliveryTime,
		DeliveredAt:           d.DeliveredAt,
	}
}
