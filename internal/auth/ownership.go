package auth

import "restaurant-graphql-api/internal/apperr"

// CheckOwnership allows a mutation by the resource's creator or a superadmin.
func CheckOwnership(actor Identity, creatorID string) error {
	if actor.Role.AtLeast(RoleSuperadmin) {
		return nil
	}
	if actor.ID != "" && actor.ID == creatorID {
		return nil
	}
	return apperr.PermissionDenied("could not modify")
}
