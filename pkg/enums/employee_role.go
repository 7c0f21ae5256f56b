package enums

import "fmt"

// EmployeeRole is the back-office profile carried in access tokens.
type EmployeeRole string

const (
	EmployeeRoleAdmin        EmployeeRole = "admin"
	EmployeeRoleOrderManager EmployeeRole = "order_manager"
	EmployeeRoleViewer       EmployeeRole = "viewer"
)

var validEmployeeRoles = []EmployeeRole{
	EmployeeRoleAdmin,
	EmployeeRoleOrderManager,
	EmployeeRoleViewer,
}

// String implements fmt.Stringer.
func (r EmployeeRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known EmployeeRole.
func (r EmployeeRole) IsValid() bool {
	for _, candidate := range validEmployeeRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseEmployeeRole converts raw input into an EmployeeRole.
func ParseEmployeeRole(value string) (EmployeeRole, error) {
	for _, candidate := range validEmployeeRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid employee role %q", value)
}
