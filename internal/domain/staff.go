package domain

import "time"

// Staff position values, closed set.
const (
	PositionManager = "manager"
	PositionStaff   = "staff"
	PositionCashier = "cashier"
)

// ValidPosition reports whether p is one of the known staff positions.
func ValidPosition(p string) bool {
	switch p {
	case PositionManager, PositionStaff, PositionCashier:
		return true
	}
	return false
}

type StaffMember struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Branch    string    `gorm:"size:45" json:"branch" form:"branch"`
	Position  string    `gorm:"size:45;index" json:"position" form:"position"`
	Username  string    `gorm:"size:64;uniqueIndex" json:"username" form:"username"`
	Email     string    `json:"email" form:"email"`
	Password  string    `json:"-" form:"password"`
	Status    string    `gorm:"size:20" json:"status" form:"status"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (StaffMember) TableName() string {
	return "staff_member"
}
