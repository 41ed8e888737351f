package auth

import (
	"fmt"
	"io"
	"strconv"
)

// Role is a totally ordered permission level. Stored numerically.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
	RoleSuperadmin
)

var roleNames = [...]string{
	RoleUser:       "user",
	RoleAdmin:      "admin",
	RoleSuperadmin: "superadmin",
}

// AtLeast reports whether r is the same as or above min. Every permission
// comparison goes through here.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

func (r Role) IsValid() bool {
	return r >= RoleUser && r <= RoleSuperadmin
}

func (r Role) String() string {
	if !r.IsValid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole maps a role name to its Role.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return Role(r), nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid Role", s)
}

// UnmarshalGQL implements graphql.Unmarshaler for the Role enum.
func (r *Role) UnmarshalGQL(v any) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("enums must be strings")
	}
	parsed, err := ParseRole(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalGQL implements graphql.Marshaler for the Role enum.
func (r Role) MarshalGQL(w io.Writer) {
	_, _ = io.WriteString(w, strconv.Quote(r.String()))
}
