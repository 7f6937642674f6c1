package repo

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/IvanBondariev/telegram-bot/internal/domain"
)

// Profits is the authoritative submissions table. Every mutation here is a
// self-contained transaction; the mirror is projected afterwards, best-effort.
type Profits struct{ db *gorm.DB }

func NewProfits(db *gorm.DB) *Profits { return &Profits{db: db} }

func (r *Profits) Create(ctx context.Context, userID int64, username, firstName *string, amount decimal.Decimal, note string) (int64, error) {
	p := domain.Profit{
		UserID:         userID,
		Username:       username,
		FirstName:      firstName,
		OriginalAmount: amount,
		FinalAmount:    amount,
		Note:           note,
		Status:         domain.StatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *Profits) Get(ctx context.Context, id int64) (*domain.Profit, error) {
	var p domain.Profit
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Profits) ByUser(ctx context.Context, userID int64) ([]domain.Profit, error) {
	var out []domain.Profit
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&out).Error
	return out, err
}

// Resolve flips a pending submission to approved or rejected. The WHERE on
// status makes a second invocation a no-op: it reports changed=false and
// touches nothing.
func (r *Profits) Resolve(ctx context.Context, id int64, status string, approverID int64) (bool, error) {
	values := map[string]any{
		"status":      status,
		"approver_id": approverID,
		"approved_at": nil,
	}
	if status == domain.StatusApproved {
		values["approved_at"] = time.Now().UTC()
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Profit{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Updates(values)
	return res.RowsAffected > 0, res.Error
}

// UpdateFinalAmount is the single path that changes an amount after creation,
// resolved or not.
func (r *Profits) UpdateFinalAmount(ctx context.Context, id int64, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&domain.Profit{}).
		Where("id = ?", id).
		Update("final_amount", amount).Error
}

// ApprovedBetween returns approved submissions with approved_at >= from.
// A nil from means all-time.
func (r *Profits) ApprovedBetween(ctx context.Context, from *time.Time) ([]domain.Profit, error) {
	q := r.db.WithContext(ctx).Where("status = ?", domain.StatusApproved)
	if from != nil {
		q = q.Where("approved_at >= ?", *from)
	}
	var out []domain.Profit
	err := q.Order("id").Find(&out).Error
	return out, err
}

func (r *Profits) ResetAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Profit{}).
		Where("status <> ?", domain.StatusRejected).
		Updates(map[string]any{
			"status":      domain.StatusRejected,
			"approved_at": nil,
			"approver_id": nil,
		})
	return res.RowsAffected, res.Error
}

func (r *Profits) ResetUser(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Profit{}).
		Where("user_id = ? AND status <> ?", userID, domain.StatusRejected).
		Updates(map[string]any{
			"status":      domain.StatusRejected,
			"approved_at": nil,
			"approver_id": nil,
		})
	return res.RowsAffected, res.Error
}

func (r *Profits) UserIDsByUsername(ctx context.Context, username string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Profit{}).
		Distinct("user_id").
		Where("username = ?", username).
		Pluck("user_id", &ids).Error
	return ids, err
}
