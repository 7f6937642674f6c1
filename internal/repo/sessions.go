package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IvanBondariev/telegram-bot/internal/domain"
)

// Sessions persists dialog state on every transition so a process restart
// resumes the dialog instead of dropping it.
type Sessions struct{ db *gorm.DB }

func NewSessions(db *gorm.DB) *Sessions { return &Sessions{db: db} }

// Save upserts the user's single session row, replacing whatever dialog was
// in flight. UpdatedAt is bumped here, which restarts the inactivity window.
func (r *Sessions) Save(ctx context.Context, s *domain.Session) error {
	s.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(s).Error
}

func (r *Sessions) Get(ctx context.Context, userID int64) (*domain.Session, error) {
	var s domain.Session
	err := r.db.WithContext(ctx).First(&s, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete reports whether a row was actually removed, which is how the
// timeout sweeper and late input agree on who tore the session down.
func (r *Sessions) Delete(ctx context.Context, userID int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Session{}, "user_id = ?", userID)
	return res.RowsAffected > 0, res.Error
}

// Expired returns dialog sessions idle since before cutoff. The approver's
// edit pointer is not a dialog and never expires.
func (r *Sessions) Expired(ctx context.Context, cutoff time.Time) ([]domain.Session, error) {
	var out []domain.Session
	err := r.db.WithContext(ctx).
		Where("updated_at < ? AND stage <> ?", cutoff, domain.StageAwaitEdit).
		Find(&out).Error
	return out, err
}
