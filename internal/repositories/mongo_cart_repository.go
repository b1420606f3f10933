package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shresthasriv/ecom-nexora/internal/models"
	"github.com/shresthasriv/ecom-nexora/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cartsCollection = "carts"

type cartDocument struct {
	ID        string         `bson:"_id"`
	OwnerKey  string         `bson:"owner_key"`
	Items     []itemDocument `bson:"items"`
	Version   int64          `bson:"version"`
	CreatedAt time.Time      `bson:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

type itemDocument struct {
	ItemID    string               `bson:"item_id"`
	ProductID int64                `bson:"product_id"`
	Title     string               `bson:"title"`
	Price     primitive.Decimal128 `bson:"price"`
	Quantity  int                  `bson:"quantity"`
	Image     string               `bson:"image,omitempty"`
}

type mongoCartRepository struct {
	collection *mongo.Collection
}

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// NewMongoCartRepo returns a repository over the carts collection after
// making sure its indexes exist.
func NewMongoCartRepo(ctx context.Context, db *mongo.Database) (CartRepository, error) {
	repo := &mongoCartRepository{collection: db.Collection(cartsCollection)}

	if err := repo.createIndexes(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

// one cart per owner key
func (m *mongoCartRepository) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "updated_at", Value: 1}},
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func (m *mongoCartRepository) FindOrCreate(ctx context.Context, owner string) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()

	filter := bson.M{"owner_key": owner}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"items":      bson.A{},
			"version":    int64(1),
			"created_at": now,
			"updated_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc cartDocument

	err := m.collection.FindOneAndUpdate(dbCtx, filter, update, opts).Decode(&doc)
	if err != nil {
		// two concurrent upserts for a new owner: the loser reads the winner's cart
		if mongo.IsDuplicateKeyError(err) {
			return m.GetByOwner(dbCtx, owner)
		}
		return nil, fmt.Errorf("failed to find or create cart: %w", err)
	}

	return doc.toModel()
}

func (m *mongoCartRepository) GetByOwner(ctx context.Context, owner string) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var doc cartDocument

	err := m.collection.FindOne(dbCtx, bson.M{"owner_key": owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return doc.toModel()
}

func (m *mongoCartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	items, err := toItemDocuments(cart.Items)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	filter := bson.M{"_id": cart.ID.String(), "version": cart.Version}
	update := bson.M{
		"$set": bson.M{"items": items, "updated_at": now},
		"$inc": bson.M{"version": 1},
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := m.collection.UpdateOne(dbCtx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update the cart: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}

	cart.Version++
	cart.UpdatedAt = now

	return nil
}

func toItemDocuments(items []models.CartItem) ([]itemDocument, error) {
	docs := make([]itemDocument, 0, len(items))

	for _, item := range items {
		price, err := primitive.ParseDecimal128(item.Price.String())
		if err != nil {
			return nil, fmt.Errorf("failed to encode price of product %d: %w", item.ProductID, err)
		}

		docs = append(docs, itemDocument{
			ItemID:    item.ItemID.String(),
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	return docs, nil
}

func (d *cartDocument) toModel() (*models.Cart, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid cart id %q: %w", d.ID, err)
	}

	cart := &models.Cart{
		ID:        id,
		OwnerKey:  d.OwnerKey,
		Items:     make([]models.CartItem, 0, len(d.Items)),
		Version:   d.Version,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}

	for _, doc := range d.Items {
		itemID, err := uuid.Parse(doc.ItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q: %w", doc.ItemID, err)
		}

		price, err := decimal.NewFromString(doc.Price.String())
		if err != nil {
			return nil, fmt.Errorf("invalid price for item %s: %w", doc.ItemID, err)
		}

		cart.Items = append(cart.Items, models.CartItem{
			ItemID:    itemID,
			ProductID: doc.ProductID,
			Title:     doc.Title,
			Price:     price,
			Quantity:  doc.Quantity,
			Image:     doc.Image,
		})
	}

	return cart, nil
}
