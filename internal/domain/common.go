package domain

import (
	"context"
	"errors"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// PaginatedResult for list responses
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// Caller extracts the authenticated user id and role placed in ctx by the auth middleware.
func Caller(ctx context.Context) (userID, role string) {
	userID, _ = ctx.Value(KeyUserID).(string)
	role, _ = ctx.Value(KeyUserRole).(string)
	return userID, role
}
