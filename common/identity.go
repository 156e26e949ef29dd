package common

import (
	"context"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
)

type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

var roleRank = map[Role]int{
	RoleMember:  1,
	RoleManager: 2,
	RoleAdmin:   3,
}

func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// Identity is the authenticated caller. OrgID is bound from the session
// token, never from request payloads.
type Identity struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
	Role   Role
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (*Identity, error) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	if !ok || id == nil {
		return nil, billing_core.Forbiddenf("not authenticated")
	}
	return id, nil
}

// RequireManager gates mutations. Reads only need org membership, which
// holding any identity already proves.
func RequireManager(id *Identity) error {
	if !id.Role.AtLeast(RoleManager) {
		return billing_core.Forbiddenf("manager role required")
	}
	return nil
}
