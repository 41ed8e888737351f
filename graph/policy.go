package graph

import (
	"context"
	"fmt"

	"restaurant-graphql-api/internal/auth"
)

// operationPolicies declares the minimum role of every protected operation,
// keyed by its GraphQL field name. Public operations are not listed and their
// resolvers never call authorize; authorize rejects a name missing here.
var operationPolicies = map[string]auth.Policy{
	"user":        {MinRole: auth.RoleUser},
	"getAllUsers": {MinRole: auth.RoleSuperadmin},
	"changeRole":  {MinRole: auth.RoleSuperadmin},

	"createRestaurant": {MinRole: auth.RoleAdmin},
	"updateRestaurant": {MinRole: auth.RoleAdmin},
	"deleteRestaurant": {MinRole: auth.RoleAdmin},

	"createFood": {MinRole: auth.RoleAdmin},
	"updateFood": {MinRole: auth.RoleAdmin},
	"deleteFood": {MinRole: auth.RoleAdmin},

	"createReview": {MinRole: auth.RoleUser},
}

// authorize resolves the caller of a protected operation.
func (r *Resolver) authorize(ctx context.Context, operation string) (auth.Identity, error) {
	p, ok := operationPolicies[operation]
	if !ok {
		return auth.Identity{}, fmt.Errorf("no authorization policy for operation %q", operation)
	}
	return r.Guard.Authorize(ctx, p)
}
