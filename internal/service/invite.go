package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quietstudy/studytrack/internal/domain"
	"github.com/quietstudy/studytrack/internal/store"
	"github.com/quietstudy/studytrack/pkg/cryptox"
	"github.com/quietstudy/studytrack/pkg/idx"
	"github.com/quietstudy/studytrack/pkg/slogx"
)

var ErrInvalidInviteTTL = errors.New("invalid invite expiry")

// DefaultInviteTTLDays is applied when the caller does not specify an
// expiry.
const DefaultInviteTTLDays = 30

// maxCodeAttempts bounds regeneration when a generated code collides with
// an existing one. Collisions are vanishingly rare with an 8-char code over
// a 32-symbol alphabet, so hitting the bound means something is broken.
const maxCodeAttempts = 5

type InviteService struct {
	Store store.Store
}

// Mint creates a new single-use invite code owned by createdBy. ttlDays of
// zero falls back to the default; negative values are rejected.
func (s *InviteService) Mint(ctx context.Context, createdBy string, ttlDays int) (domain.InviteCode, error) {
	log := slogx.FromContext(ctx)

	// 1. Resolve the expiry window.
	if ttlDays < 0 {
		return domain.InviteCode{}, ErrInvalidInviteTTL
	}
	if ttlDays == 0 {
		ttlDays = DefaultInviteTTLDays
	}

	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(ttlDays) * 24 * time.Hour)

	// 2. Generate and insert, regenerating on the unique-code constraint.
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := cryptox.GenerateInviteCode()
		if err != nil {
			log.Error("failed to generate invite code", slog.Any("error", err))
			return domain.InviteCode{}, err
		}

		inv := domain.InviteCode{
			ID:        idx.New().String(),
			Code:      code,
			CreatedBy: createdBy,
			CreatedAt: now,
			ExpiresAt: &expiresAt,
		}

		err = s.Store.InviteCodes().CreateInviteCode(ctx, inv)
		if err == nil {
			log.Info("invite code minted",
				slog.String("invite_id", inv.ID),
				slog.String("created_by", createdBy),
				slog.Time("expires_at", expiresAt),
			)
			return inv, nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			log.Error("failed to create invite code", slog.Any("error", err))
			return domain.InviteCode{}, err
		}

		log.Warn("invite code collision, regenerating", slog.Int("attempt", attempt+1))
	}

	return domain.InviteCode{}, errors.New("exhausted invite code attempts")
}
