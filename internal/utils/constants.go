package utils

import "time"

// Application Constants
const (
	AppName    = "BidaPOS"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "VND"
	DefaultTimeZone = "Asia/Ho_Chi_Minh"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 6
	PasswordMaxLength  = 128

	// Sessions
	MaxSessionItemQty  = 99
	SessionGracePeriod = 5 * time.Minute

	// Billing
	DefaultRatePerHour = 40000.0
	MaxBillQueryRange  = 92 * 24 * time.Hour
	MaxBillQueryLimit  = 500

	// Promotions
	PromotionCodeMaxLength = 20
	PromotionCacheTTL      = 10 * time.Minute

	// Rate Limiting
	DefaultRateLimit = 100
	LoginRateLimit   = 5
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrStaffNotFound      = "staff not found"
	ErrStaffExists        = "staff already exists"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrConflict           = "conflict"
	ErrValidationFailed   = "validation failed"
	ErrPromotionNotFound  = "promotion not found"
	ErrTableNotFound      = "table not found"
	ErrTableOccupied      = "table already has an open session"
	ErrSessionNotFound    = "session not found"
	ErrSessionNotOpen     = "session is not open"
	ErrBillNotFound       = "bill not found"
	ErrBillAlreadyPaid    = "bill already paid"
	ErrPromotionCodeTaken = "promotion code already in use"
	ErrPromotionImmutable = "scope and code cannot change after creation"
)

// Cache Keys
const (
	CachePromotionPrefix      = "promotion:"
	CachePromotionCodePrefix  = "promotion_code:"
	CacheActivePromotionsKey  = "promotions:active"
	CacheTablePrefix          = "table:"
	CacheOpenSessionPrefix    = "session_open:"
	CacheReportSummaryPrefix  = "report_summary:"
	CacheRateLimitPrefix      = "rate_limit:"
	CacheRefreshSessionPrefix = "auth_session:"
)

// Event Types (websocket broadcast)
const (
	EventTableUpdated     = "table_updated"
	EventTablesReordered  = "tables_reordered"
	EventSessionOpened    = "session_opened"
	EventSessionUpdated   = "session_updated"
	EventSessionClosed    = "session_closed"
	EventSessionVoided    = "session_voided"
	EventBillPaid         = "bill_paid"
	EventPromotionChanged = "promotion_changed"
)
