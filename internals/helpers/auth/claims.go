// file: internals/helpers/auth/claims.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

// Locals keys written by the auth middleware.
const (
	LocalsUserID      = "user_id"
	LocalsCollegeID   = "college_id"
	LocalsPermissions = "permissions"
)

// GetUserID returns the authenticated caller's id from Locals.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(LocalsUserID).(string)
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, errs.Denied("missing or invalid user identity")
	}
	return id, nil
}

// GetCollegeID returns the caller's tenant from Locals.
func GetCollegeID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(LocalsCollegeID).(string)
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, errs.Denied("missing or invalid college scope")
	}
	return id, nil
}

// GetPermissions returns the caller's effective "resource:action" set.
func GetPermissions(c *fiber.Ctx) []string {
	switch v := c.Locals(LocalsPermissions).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// RequirePermission fails with AuthorizationDenied unless the caller's
// claim set carries resource:action. Checked before payload validation so
// unauthorized callers learn nothing about request shape.
func RequirePermission(c *fiber.Ctx, resource, action string) error {
	want := resource + ":" + action
	for _, p := range GetPermissions(c) {
		if p == want {
			return nil
		}
	}
	return errs.Denied("missing permission %s", want)
}

// EnsureCollege fails with TenantMismatch unless the caller belongs to
// the given college.
func EnsureCollege(c *fiber.Ctx, collegeID uuid.UUID) error {
	own, err := GetCollegeID(c)
	if err != nil {
		return err
	}
	if own != collegeID {
		return errs.TenantMismatch("resource belongs to another college")
	}
	return nil
}
