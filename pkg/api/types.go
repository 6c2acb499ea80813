// Package api holds the request and response types of the studytrack HTTP
// API. Handlers and client code share these so the wire shapes live in one
// place.
package api

// ErrorResponse is the standard error body returned by every endpoint.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invalid_request")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Auth
// ============================================================================

// RegisterRequest creates an account. Registration is invite-gated; the
// code must be unconsumed and unexpired.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Nickname   string `json:"nickname" validate:"omitempty,max=64"`
	InviteCode string `json:"inviteCode" validate:"required"`
}

// LoginRequest authenticates with email and password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenResponse carries a fresh access/refresh pair. The access token goes
// in the Authorization header of subsequent requests.
type TokenResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	TokenType    string        `json:"tokenType"`
	User         *UserResponse `json:"user,omitempty"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname,omitempty"`
}

// ============================================================================
// Invite codes
// ============================================================================

// InviteMintRequest creates a new invite code. ExpiresInDays arrives as a
// string so an empty field can fall back to the default window.
type InviteMintRequest struct {
	ExpiresInDays string `json:"expiresInDays,omitempty"`
}

// InviteCodeResponse returns a freshly minted code.
type InviteCodeResponse struct {
	Code      string `json:"code"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// ============================================================================
// Subjects
// ============================================================================

type SubjectCreateRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	ColorHex    string `json:"colorHex" validate:"omitempty,hexcolor"`
	StudyType   string `json:"studyType" validate:"omitempty,oneof=MINUTES WORDS"`
	DailyTarget int    `json:"dailyTarget" validate:"omitempty,min=0"`
}

// SubjectUpdateRequest is a partial update; absent fields stay unchanged.
type SubjectUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	ColorHex    *string `json:"colorHex,omitempty" validate:"omitempty,hexcolor"`
	Archived    *bool   `json:"archived,omitempty"`
	StudyType   *string `json:"studyType,omitempty" validate:"omitempty,oneof=MINUTES WORDS"`
	DailyTarget *int    `json:"dailyTarget,omitempty" validate:"omitempty,min=0"`
}

type SubjectResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ColorHex    string `json:"colorHex,omitempty"`
	Archived    bool   `json:"archived"`
	StudyType   string `json:"studyType"`
	DailyTarget int    `json:"dailyTarget"`
	CreatedAt   string `json:"createdAt"`
}

// ============================================================================
// Study sessions
// ============================================================================

type StudySessionCreateRequest struct {
	SubjectID string `json:"subjectId" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Note      string `json:"note" validate:"omitempty,max=500"`
}

type StudySessionResponse struct {
	ID        string `json:"id"`
	SubjectID string `json:"subjectId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Minutes   int    `json:"minutes"`
	Note      string `json:"note,omitempty"`
}

// StudyDayResponse is one calendar day of sessions plus the minute total.
type StudyDayResponse struct {
	Date         string                 `json:"date"`
	Sessions     []StudySessionResponse `json:"sessions"`
	TotalMinutes int                    `json:"totalMinutes"`
}

// ============================================================================
// Word logs
// ============================================================================

type WordLogCreateRequest struct {
	SubjectID *string `json:"subjectId,omitempty"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Book      string  `json:"book" validate:"omitempty,max=100"`
	Count     int     `json:"count" validate:"required,min=1"`
	Note      string  `json:"note" validate:"omitempty,max=500"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

type WordLogResponse struct {
	ID        string  `json:"id"`
	SubjectID *string `json:"subjectId,omitempty"`
	Date      string  `json:"date"`
	Book      string  `json:"book,omitempty"`
	Count     int     `json:"count"`
	Note      string  `json:"note,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// ============================================================================
// Goals
// ============================================================================

type GoalUpdateRequest struct {
	DailyMinutesTarget int `json:"dailyMinutesTarget" validate:"required,min=1"`
	DailyWordsTarget   int `json:"dailyWordsTarget" validate:"required,min=1"`
}

type GoalResponse struct {
	DailyMinutesTarget int `json:"dailyMinutesTarget"`
	DailyWordsTarget   int `json:"dailyWordsTarget"`
}

// ============================================================================
// Analytics
// ============================================================================

// DailyBucketResponse is one day of aggregated activity. Quiet days appear
// with zero totals so charts render a full window.
type DailyBucketResponse struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
	Words   int    `json:"words"`
}

type DailyAnalyticsResponse struct {
	Range string                `json:"range"`
	Days  []DailyBucketResponse `json:"days"`
}

// ============================================================================
// Health
// ============================================================================

type HealthChecks struct {
	Database string `json:"database"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
