package domain

// Analyst roles
const (
	RoleAnalyst = "analyst" // Can add, import and delete single records
	RoleLead    = "lead"    // Can also bulk delete
)

// Analyst Model
type Analyst struct {
	ID       uint   `gorm:"primaryKey"`        // Primary key
	Username string `gorm:"unique;not null"`   // Unique login name
	Password string `gorm:"not null" json:"-"` // Hashed password
	Role     string `gorm:"default:analyst"`   // analyst or lead
}
