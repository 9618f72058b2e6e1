package db_models

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type Account struct {
	BaseModel
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"size:20;not null;default:student"`
}
