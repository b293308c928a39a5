package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/res-landing/restaurant-system/internal/core/domain"
)

const menuCollection = "menu_items"

// MenuRepository persists the menu catalog in MongoDB.
type MenuRepository struct {
	coll *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{coll: db.Collection(menuCollection)}
}

type mongoMenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Image       string             `bson:"image"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MenuRepository) List(ctx context.Context) ([]*domain.MenuItem, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]*domain.MenuItem, 0)
	for cursor.Next(ctx) {
		var mi mongoMenuItem
		if err := cursor.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode menu item: %w", err)
		}
		items = append(items, mi.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMenuItemNotFound
	}

	var mi mongoMenuItem
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("find menu item: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *MenuRepository) Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	doc := mongoMenuItem{
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		Image:       item.Image,
		CreatedAt:   item.CreatedAt.Unix(),
		UpdatedAt:   item.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMenuItemExists
		}
		return nil, fmt.Errorf("insert menu item: %w", err)
	}

	created := *item
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MenuRepository) Update(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return nil, domain.ErrMenuItemNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"category":    item.Category,
		"image":       item.Image,
		"updated_at":  item.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMenuItemExists
		}
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrMenuItemNotFound
	}
	return item, nil
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMenuItemNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (mi *mongoMenuItem) toDomain() *domain.MenuItem {
	return &domain.MenuItem{
		ID:          mi.ID.Hex(),
		Name:        mi.Name,
		Description: mi.Description,
		Price:       mi.Price,
		Category:    mi.Category,
		Image:       mi.Image,
		CreatedAt:   unixToTime(mi.CreatedAt),
		UpdatedAt:   unixToTime(mi.UpdatedAt),
	}
}
