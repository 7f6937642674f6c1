package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profit statuses. Transitions are monotone: pending -> approved|rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Session stages.
const (
	StageAwaitAmount     = "await_amount"     // profit dialog, waiting for the sum
	StageAwaitSuggestion = "await_suggestion" // standalone /suggest dialog
	StageAwaitEdit       = "await_edit"       // approver is entering a new final amount
)

type Profit struct {
	ID             int64 `gorm:"primaryKey;autoIncrement"`
	UserID         int64 `gorm:"index;not null"`
	Username       *string
	FirstName      *string
	OriginalAmount decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(20,2)"`
	Note           string
	Status         string     `gorm:"index:idx_profits_status_approved_at;not null;default:pending"`
	CreatedAt      time.Time  `gorm:"not null"`
	ApprovedAt     *time.Time `gorm:"index:idx_profits_status_approved_at"`
	ApproverID     *int64
}

// User is the directory of everyone the bot has ever seen.
// FirstSeen is written once; LastSeen is bumped on every interaction.
type User struct {
	UserID    int64 `gorm:"primaryKey"`
	Username  *string
	FirstName *string
	FirstSeen time.Time `gorm:"not null"`
	LastSeen  time.Time `gorm:"index"`
}

// Session is the durable per-user dialog state. One row per user; the row is
// rewritten on every transition so a restarted process picks up where the
// dialog left off and edits the original prompt instead of sending a new one.
type Session struct {
	UserID             int64  `gorm:"primaryKey"`
	Stage              string `gorm:"not null"`
	ChatID             int64
	PromptMessageID    int
	TimeTag            *time.Time
	AwaitingSuggestion bool
	EditProfitID       int64 // set only for the approver's await_edit session
	UpdatedAt          time.Time
}
