package domain

// Role type to distinguish between caller roles
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

// Caller is the authenticated identity attached to every request.
// It is established upstream from the access token and trusted as-is.
type Caller struct {
	ID    string
	Role  Role
	Token string // raw bearer credential, forwarded to the user service
}

func (c Caller) IsTrainer() bool { return c.Role == RoleTrainer }
func (c Caller) IsClient() bool  { return c.Role == RoleClient }
func (c Caller) IsAdmin() bool   { return c.Role == RoleAdmin }

// User is the record the user service declares for an identity reference.
// Only ID and Role are relied upon; the rest is passed through for display.
type User struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// RoleInfo is the role-specific profile returned by the user service
// (trainer specialisations, client goals, ...). Its shape is owned remotely.
type RoleInfo map[string]any
