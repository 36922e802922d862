package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillswap/realtime-service/internal/models"
)

var (
	ErrExchangeNotFound  = errors.New("exchange not found")
	ErrExchangeNotActive = errors.New("exchange not active")
	ErrUserNotFound      = errors.New("user not found")
)

// ExchangeRepository reads and mutates the exchange and user collections
// owned by the marketplace API.
type ExchangeRepository struct {
	exchanges *mongo.Collection
	users     *mongo.Collection
}

func NewExchangeRepository(db *mongo.Database) *ExchangeRepository {
	return &ExchangeRepository{
		exchanges: db.Collection("exchanges"),
		users:     db.Collection("users"),
	}
}

// FindExchange loads an exchange by its hex id.
func (r *ExchangeRepository) FindExchange(ctx context.Context, id string) (*models.Exchange, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrExchangeNotFound, id)
	}
	var ex models.Exchange
	err = r.exchanges.FindOne(ctx, bson.M{"_id": oid}).Decode(&ex)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrExchangeNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// AppendMessage appends msg to the exchange's history and updates the
// last-message fields in one atomic update. The filter re-checks the status
// at append time, so a concurrently completed or declined exchange never
// accepts a message. Returns the post-update document.
func (r *ExchangeRepository) AppendMessage(ctx context.Context, id string, msg models.Message) (*models.Exchange, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrExchangeNotFound, id)
	}

	filter := bson.M{"_id": oid, "status": models.StatusActive}
	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set": bson.M{
			"lastMessageTimestamp": msg.Timestamp,
			"lastMessageSender":    msg.Sender,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ex models.Exchange
	err = r.exchanges.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ex)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the exchange is gone or its status changed under us.
		if _, ferr := r.FindExchange(ctx, id); ferr != nil {
			return nil, ferr
		}
		return nil, fmt.Errorf("%w: %s", ErrExchangeNotActive, id)
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// UserDisplay resolves the name and avatar of a user for message enrichment.
func (r *ExchangeRepository) UserDisplay(ctx context.Context, id string) (models.UserDisplay, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.UserDisplay{}, fmt.Errorf("%w: %q", ErrUserNotFound, id)
	}
	opts := options.FindOne().SetProjection(bson.M{"name": 1, "avatar": 1})
	var u models.UserDisplay
	err = r.users.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.UserDisplay{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	if err != nil {
		return models.UserDisplay{}, err
	}
	return u, nil
}
