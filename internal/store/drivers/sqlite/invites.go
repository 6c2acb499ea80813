package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quietstudy/studytrack/internal/domain"
	"github.com/quietstudy/studytrack/internal/store"
)

type inviteCodesRepo struct {
	db dbtx
}

func (r *inviteCodesRepo) CreateInviteCode(ctx context.Context, inv domain.InviteCode) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invite_codes (id, code, created_by, used_by, used_at, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Code, mapStringNull(inv.CreatedBy), mapOptionalString(inv.UsedBy),
		mapOptionalTime(inv.UsedAt), inv.CreatedAt, mapOptionalTime(inv.ExpiresAt))
	return mapConstraint(err)
}

func (r *inviteCodesRepo) GetInviteCodeByCode(ctx context.Context, code string) (domain.InviteCode, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, code, created_by, used_by, used_at, created_at, expires_at
		 FROM invite_codes WHERE code = ?`, code)

	var (
		inv       domain.InviteCode
		createdBy sql.NullString
		usedBy    sql.NullString
		usedAt    sql.NullTime
		expiresAt sql.NullTime
	)
	err := row.Scan(&inv.ID, &inv.Code, &createdBy, &usedBy, &usedAt, &inv.CreatedAt, &expiresAt)
	if err != nil {
		return domain.InviteCode{}, mapNotFound(err)
	}

	inv.CreatedBy = mapNullString(createdBy)
	inv.UsedBy = mapNullStringPtr(usedBy)
	inv.UsedAt = mapNullTimePtr(usedAt)
	inv.ExpiresAt = mapNullTimePtr(expiresAt)
	return inv, nil
}

// ConsumeInviteCode claims the code in a single conditional update so two
// concurrent registrations cannot both redeem it.
func (r *inviteCodesRepo) ConsumeInviteCode(ctx context.Context, code string, usedBy string, usedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invite_codes SET used_by = ?, used_at = ?
		 WHERE code = ? AND used_by IS NULL`,
		usedBy, usedAt, code)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
