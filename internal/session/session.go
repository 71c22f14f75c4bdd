package session

import (
	"context"
	"net/http"
)

// Manager is an interface that abstracts the session management implementation.
// This allows for easier testing and dependency injection.
type Manager interface {
	LoadAndSave(next http.Handler) http.Handler
	Put(ctx context.Context, key string, val interface{})
	GetString(ctx context.Context, key string) string
	GetInt64(ctx context.Context, key string) int64
	GetBool(ctx context.Context, key string) bool
	PopString(ctx context.Context, key string) string
	RenewToken(ctx context.Context) error
	Destroy(ctx context.Context) error
	Remove(ctx context.Context, key string)
}

// Session keys shared by the auth handler and the authorizer.
const (
	KeyUserID    = "user_id"
	KeyUsername  = "user_name"
	KeyIsAdmin   = "user_is_admin"
	KeyFlash     = "flash"
	KeyFlashKind = "flash_kind"
)
