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
	"github.com/quietstudy/studytrack/pkg/jwtx"
	"github.com/quietstudy/studytrack/pkg/slogx"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInviteInvalid       = errors.New("invite code is invalid")
	ErrInviteUsed          = errors.New("invite code has already been used")
	ErrInviteExpired       = errors.New("invite code has expired")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

type AuthService struct {
	Store  store.Store
	Tokens *jwtx.Issuer
}

// Register creates an account gated by a single-use invite code and returns
// the new user with a fresh token pair.
func (s *AuthService) Register(ctx context.Context, email, password, nickname, inviteCode string) (domain.User, domain.TokenPair, error) {
	log := slogx.FromContext(ctx)

	// 1. Check the email is free. The unique index is the real guard; the
	// early check reports the taken email before any invite error and
	// avoids hashing a password for a doomed registration.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, domain.TokenPair{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email", slog.Any("error", err))
		return domain.User{}, domain.TokenPair{}, err
	}

	// 2. Look up the invite code.
	inv, err := s.Store.InviteCodes().GetInviteCodeByCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("registration with unknown invite code")
			return domain.User{}, domain.TokenPair{}, ErrInviteInvalid
		}
		log.Error("failed to fetch invite code", slog.Any("error", err))
		return domain.User{}, domain.TokenPair{}, err
	}

	// 3. Reject consumed or expired codes up front so the caller gets a
	// precise error before any write happens.
	now := time.Now().UTC()
	if inv.Consumed() {
		return domain.User{}, domain.TokenPair{}, ErrInviteUsed
	}
	if inv.Expired(now) {
		return domain.User{}, domain.TokenPair{}, ErrInviteExpired
	}

	// 4. Hash the password.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, domain.TokenPair{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Nickname:     nickname,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 5. Create the user and consume the code atomically. The conditional
	// consume means a concurrent registration racing on the same code loses
	// here and the whole transaction rolls back.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		if err := tx.InviteCodes().ConsumeInviteCode(ctx, inv.Code, user.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteUsed
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrEmailTaken) && !errors.Is(err, ErrInviteUsed) {
			log.Error("registration transaction failed", slog.Any("error", err))
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	// 6. Issue tokens.
	pair, err := s.issueTokens(user)
	if err != nil {
		log.Error("failed to issue tokens", slog.Any("error", err))
		return domain.User{}, domain.TokenPair{}, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("invite_id", inv.ID),
	)
	return user, pair, nil
}

// Login verifies credentials and returns a fresh token pair. Unknown email
// and wrong password collapse into the same error so the endpoint does not
// leak which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, domain.TokenPair, error) {
	log := slogx.FromContext(ctx)

	// 1. Fetch the user.
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, domain.TokenPair{}, err
	}

	// 2. Verify the password.
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("failed login attempt", slog.String("user_id", user.ID))
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	// 3. Issue tokens.
	pair, err := s.issueTokens(user)
	if err != nil {
		log.Error("failed to issue tokens", slog.Any("error", err))
		return domain.User{}, domain.TokenPair{}, err
	}

	log.Debug("user logged in", slog.String("user_id", user.ID))
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair. Access
// tokens are rejected here; only tokens minted with the refresh use class
// are accepted.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	log := slogx.FromContext(ctx)

	// 1. Verify signature, expiry and token class.
	claims, err := s.Tokens.Verify(refreshToken)
	if err != nil {
		return domain.TokenPair{}, ErrInvalidRefreshToken
	}
	if err := claims.RequireUse(jwtx.TokenUseRefresh); err != nil {
		return domain.TokenPair{}, ErrInvalidRefreshToken
	}

	// 2. The subject is the email; the account must still exist.
	user, err := s.Store.Users().GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidRefreshToken
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.TokenPair{}, err
	}

	// 3. Issue a fresh pair.
	pair, err := s.issueTokens(user)
	if err != nil {
		log.Error("failed to issue tokens", slog.Any("error", err))
		return domain.TokenPair{}, err
	}

	log.Debug("token refreshed", slog.String("user_id", user.ID))
	return pair, nil
}

func (s *AuthService) issueTokens(user domain.User) (domain.TokenPair, error) {
	access, err := s.Tokens.IssueAccessToken(user.Email, user.ID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.Tokens.IssueRefreshToken(user.Email)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
