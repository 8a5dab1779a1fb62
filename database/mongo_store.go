package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/CUknot/realtime_chat/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	roomsCollection    = "rooms"
	messagesCollection = "messages"
)

type roomDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description *string            `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d roomDocument) toModel() models.Room {
	return models.Room{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}

type messageDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RoomID    string             `bson:"roomId"`
	Username  string             `bson:"username"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d messageDocument) toModel() models.Message {
	return models.Message{
		ID:        d.ID.Hex(),
		RoomID:    d.RoomID,
		Username:  d.Username,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
}

// MongoStore persists rooms and messages in MongoDB.
type MongoStore struct {
	client   *mongo.Client
	rooms    *mongo.Collection
	messages *mongo.Collection
	now      func() time.Time
}

// ConnectMongo dials uri, verifies the connection and ensures indexes.
func ConnectMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	store := NewMongoStore(client, dbName)
	if err := store.ensureIndexes(connectCtx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	log.Printf("Database connection established (mongodb %s)", dbName)
	return store, nil
}

// NewMongoStore binds the room and message collections of dbName.
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		client:   client,
		rooms:    db.Collection(roomsCollection),
		messages: db.Collection(messagesCollection),
		now:      time.Now,
	}
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.rooms.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create room name index: %w", err)
	}

	_, err = s.messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "roomId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create message index: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateRoom(ctx context.Context, name string, description *string) (*models.Room, error) {
	in, err := normalizeRoom(name, description)
	if err != nil {
		return nil, err
	}

	doc := roomDocument{
		ID:          primitive.NewObjectID(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.rooms.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, persistenceError("create room", err)
	}

	room := doc.toModel()
	return &room, nil
}

func (s *MongoStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.rooms.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, persistenceError("list rooms", err)
	}

	var docs []roomDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, persistenceError("list rooms", err)
	}

	rooms := make([]models.Room, 0, len(docs))
	for _, d := range docs {
		rooms = append(rooms, d.toModel())
	}
	return rooms, nil
}

func (s *MongoStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc roomDocument
	if err := s.rooms.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, persistenceError("get room", err)
	}

	room := doc.toModel()
	return &room, nil
}

func (s *MongoStore) CreateMessage(ctx context.Context, roomID, username, content string) (*models.Message, error) {
	in, err := normalizeMessage(roomID, username, content)
	if err != nil {
		return nil, err
	}

	doc := messageDocument{
		ID:        primitive.NewObjectID(),
		RoomID:    in.RoomID,
		Username:  in.Username,
		Content:   in.Content,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.messages.InsertOne(ctx, doc); err != nil {
		return nil, persistenceError("create message", err)
	}

	message := doc.toModel()
	return &message, nil
}

func (s *MongoStore) ListMessages(ctx context.Context, roomID string, limit int) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.messages.Find(ctx, bson.M{"roomId": roomID}, opts)
	if err != nil {
		return nil, persistenceError("list messages", err)
	}

	var docs []messageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, persistenceError("list messages", err)
	}

	messages := make([]models.Message, 0, len(docs))
	for _, d := range docs {
		messages = append(messages, d.toModel())
	}
	return messages, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return persistenceError("ping", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
