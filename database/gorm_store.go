package database

import (
	"context"
	"errors"
	"time"

	"github.com/CUknot/realtime_chat/models"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormStore persists rooms and messages in postgres or SQLite.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore wraps an already migrated connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

// DB exposes the underlying connection.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) CreateRoom(ctx context.Context, name string, description *string) (*models.Room, error) {
	in, err := normalizeRoom(name, description)
	if err != nil {
		return nil, err
	}

	// Check if room already exists
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Room{}).Where("name = ?", in.Name).Count(&count).Error; err != nil {
		return nil, persistenceError("check room name", err)
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	room := models.Room{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&room).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, persistenceError("create room", err)
	}
	return &room, nil
}

func (s *GormStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms := []models.Room{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id").Find(&rooms).Error; err != nil {
		return nil, persistenceError("list rooms", err)
	}
	return rooms, nil
}

func (s *GormStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistenceError("get room", err)
	}
	return &room, nil
}

func (s *GormStore) CreateMessage(ctx context.Context, roomID, username, content string) (*models.Message, error) {
	in, err := normalizeMessage(roomID, username, content)
	if err != nil {
		return nil, err
	}

	message := models.Message{
		RoomID:    in.RoomID,
		Username:  in.Username,
		Content:   in.Content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, persistenceError("create message", err)
	}
	return &message, nil
}

func (s *GormStore) ListMessages(ctx context.Context, roomID string, limit int) ([]models.Message, error) {
	messages := []models.Message{}
	q := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&messages).Error; err != nil {
		return nil, persistenceError("list messages", err)
	}
	return messages, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return persistenceError("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return persistenceError("ping", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isDuplicateKeyError reports whether err is a unique constraint violation.
// TranslateError covers both dialects; the pgconn check catches raw errors
// from connections opened without it.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
