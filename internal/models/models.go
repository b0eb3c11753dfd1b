package models

type Administrator struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"perfil"`
}

type Vehicle struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"not null;index"           json:"nome"`
	Brand string `gorm:"not null"                 json:"marca"`
	Year  int    `gorm:"not null"                 json:"ano"`
}
