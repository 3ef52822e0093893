package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"blog-api/ability"
	"blog-api/logger"
	"blog-api/models"
)

func abilityFor(user *models.User) *ability.Ability {
	if user == nil {
		// anonymous callers get no rules at all
		return ability.NewBuilder().Build()
	}
	return ability.ForUser(ability.Identity{ID: user.ID, IsAdmin: user.IsAdmin})
}

// authorize turns an ability denial into a Forbidden error carrying the reason.
func authorize(user *models.User, action ability.Action, subject ability.Subject, instance any) error {
	err := abilityFor(user).Check(action, subject, instance)
	if err == nil {
		return nil
	}
	var denied *ability.ForbiddenError
	if errors.As(err, &denied) {
		return models.ErrorForbidden{Message: denied.Error()}
	}
	return models.ErrorForbidden{Message: err.Error()}
}

// internal logs an unexpected failure and hides it behind a generic error.
func internal(ctx context.Context, msg string, err error, attrs ...any) error {
	logger.FromContext(ctx).Error(msg, append(attrs, "error", err.Error())...)
	return models.NewInternal(err)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// firstMissing returns the smallest requested id absent from found.
func firstMissing(requested, found []uint) (uint, bool) {
	have := make(map[uint]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var missing []uint
	for _, id := range requested {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return 0, false
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing[0], true
}

func notFoundWithID(kind string, id uint) error {
	return models.ErrorNotFound{Message: fmt.Sprintf("%s with id %d not found", kind, id)}
}
