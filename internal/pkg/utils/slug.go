package utils

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SlugExists reports whether slug is taken by a record other than excludeID.
type SlugExists func(ctx context.Context, slug string, excludeID int64) (bool, error)

const maxSlugAttempts = 50

// UniqueSlug returns base, or base-1, base-2, ... for the first free slug.
func UniqueSlug(ctx context.Context, base string, excludeID int64, exists SlugExists) (string, error) {
	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		taken, err := exists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}
