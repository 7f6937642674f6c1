package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IvanBondariev/telegram-bot/internal/domain"
)

type Users struct{ db *gorm.DB }

func NewUsers(db *gorm.DB) *Users { return &Users{db: db} }

// EnsureSeen upserts the user directory entry. first_seen survives the
// upsert, last_seen and the profile fields are refreshed every time.
func (r *Users) EnsureSeen(ctx context.Context, userID int64, username, firstName *string) error {
	now := time.Now().UTC()
	u := domain.User{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		FirstSeen: now,
		LastSeen:  now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"username":   username,
			"first_name": firstName,
			"last_seen":  now,
		}),
	}).Create(&u).Error
}

func (r *Users) FirstSeen(ctx context.Context, userID int64) (*time.Time, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u.FirstSeen, nil
}
