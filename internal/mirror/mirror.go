// Package mirror keeps a derived, denormalized copy of every submission as a
// JSON document partitioned by status: pending/, approved/<YYYY-MM>/,
// rejected/. The relational store is authoritative; documents here are a
// best-effort projection written after each DB transition and are never
// atomic with it. A crash between the two writes leaves a stale or missing
// document; the next write touching the same submission repairs it, because
// Save always clears the stale pending copy first. There is no background
// repair pass.
package mirror

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IvanBondariev/telegram-bot/internal/domain"
)

type Document struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	Username       *string         `json:"username"`
	FirstName      *string         `json:"first_name"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	Note           string          `json:"note"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	ApprovedAt     *time.Time      `json:"approved_at"`
	ApproverID     *int64          `json:"approver_id"`
}

type Store struct{ root string }

func New(root string) *Store { return &Store{root: root} }

func (s *Store) pendingDir() string  { return filepath.Join(s.root, "pending") }
func (s *Store) approvedDir() string { return filepath.Join(s.root, "approved") }
func (s *Store) rejectedDir() string { return filepath.Join(s.root, "rejected") }

func (s *Store) EnsureDirs() error {
	for _, d := range []string{s.pendingDir(), s.approvedDir(), s.rejectedDir()} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func docName(id int64) string { return fmt.Sprintf("profit_%d.json", id) }

// Save writes the submission's document into the partition matching its
// current status, removing any stale pending copy first. Approved documents
// live under approved/<YYYY-MM> of the resolution timestamp.
func (s *Store) Save(p domain.Profit) error {
	if err := s.EnsureDirs(); err != nil {
		return err
	}

	if p.Status != domain.StatusPending {
		_ = os.Remove(filepath.Join(s.pendingDir(), docName(p.ID)))
	}

	dir := s.pendingDir()
	switch p.Status {
	case domain.StatusApproved:
		dir = s.approvedDir()
		if p.ApprovedAt != nil {
			dir = filepath.Join(dir, p.ApprovedAt.UTC().Format("2006-01"))
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
	case domain.StatusRejected:
		dir = s.rejectedDir()
	}

	doc := Document{
		ID:             p.ID,
		UserID:         p.UserID,
		Username:       p.Username,
		FirstName:      p.FirstName,
		OriginalAmount: p.OriginalAmount,
		FinalAmount:    p.FinalAmount,
		Note:           p.Note,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		ApprovedAt:     p.ApprovedAt,
		ApproverID:     p.ApproverID,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, docName(p.ID)), data, 0o644)
}

// RemoveAll deletes one submission's documents from pending, rejected and
// every approved month partition.
func (s *Store) RemoveAll(id int64) error {
	if err := s.EnsureDirs(); err != nil {
		return err
	}
	_ = os.Remove(filepath.Join(s.pendingDir(), docName(id)))
	_ = os.Remove(filepath.Join(s.rejectedDir(), docName(id)))

	entries, err := os.ReadDir(s.approvedDir())
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			_ = os.Remove(filepath.Join(s.approvedDir(), e.Name(), docName(id)))
		}
	}
	_ = os.Remove(filepath.Join(s.approvedDir(), docName(id)))
	return nil
}

// PurgeActive wipes pending/ and approved/ wholesale after a global reset.
// rejected/ is kept as the audit trail.
func (s *Store) PurgeActive() error {
	for _, d := range []string{s.approvedDir(), s.pendingDir()} {
		if err := os.RemoveAll(d); err != nil {
			return err
		}
	}
	return s.EnsureDirs()
}
