package user

import "time"

// Principal is the authenticated caller handed to every usecase.
type Principal struct {
	UserID  string
	Email   string
	Name    string
	IsAdmin bool
}

// Owns reports whether p may act on a record owned by userID.
func (p Principal) Owns(userID string) bool {
	return p.IsAdmin || (p.UserID != "" && p.UserID == userID)
}

// Table: users. Display data for letters; credentials live with the identity provider.
type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID    string    `gorm:"column:user_id;size:64;uniqueIndex:ux_users_user_id;not null" json:"user_id"`
	Email     string    `gorm:"column:email;size:255" json:"email"`
	Name      string    `gorm:"column:name;size:255" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func FromPrincipal(p Principal) *User {
	return &User{UserID: p.UserID, Email: p.Email, Name: p.Name}
}
