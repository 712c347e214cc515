// Package authz decides whether a caller may perform an operation. It reads
// nothing but its arguments.
package authz

import (
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/pkg/errs"

	"github.com/google/uuid"
)

// Claims is the verified identity of a caller.
type Claims struct {
	UserID    uuid.UUID
	Role      user.Role
	ProfileID uuid.UUID
}

type Reason string

const (
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonWrongRole       Reason = "wrong role"
	ReasonNotOwner        Reason = "not owner"
)

const MessageUnauthorized = "Unauthorized"

type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r Reason) Decision { return Decision{Reason: r} }

// Authorize checks, in order: that claims are present, that the caller holds
// required, and, when owner is given, that the caller's profile owns the
// resource.
func Authorize(claims *Claims, required user.Role, owner *uuid.UUID) Decision {
	if claims == nil || claims.UserID == uuid.Nil {
		return deny(ReasonUnauthenticated)
	}
	if claims.Role != required {
		return deny(ReasonWrongRole)
	}
	if owner != nil && *owner != claims.ProfileID {
		return deny(ReasonNotOwner)
	}
	return allow()
}

// Err converts a denial into the domain error the HTTP layer maps to 401.
func (d Decision) Err() error {
	switch {
	case d.Allowed:
		return nil
	case d.Reason == ReasonUnauthenticated:
		return errs.Authentication(MessageUnauthorized, nil)
	default:
		return errs.Authorization(MessageUnauthorized, nil)
	}
}

// Require is Authorize without an owner, returned as an error.
func Require(claims *Claims, role user.Role) error {
	return Authorize(claims, role, nil).Err()
}
