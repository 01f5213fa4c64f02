package model

import (
	"time"

	"gorm.io/gorm"
)

const DefaultRole = "user"

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(255);not null"` // bcrypt 哈希
	Role      string    `gorm:"type:varchar(50);not null;default:user"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName 定义映射表名
func (User) TableName() string {
	return "users"
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{})
}
