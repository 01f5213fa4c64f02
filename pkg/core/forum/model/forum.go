package model

import (
	"time"

	"gorm.io/gorm"

	usermodel "foro-tematico/pkg/core/user/model"
)

type Post struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	UserID    int64          `gorm:"not null;index"`
	Title     string         `gorm:"type:varchar(255);not null"`
	Content   string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	User      usermodel.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Post) TableName() string {
	return "forum_posts"
}

type Comment struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	PostID    int64          `gorm:"not null;index"`
	UserID    int64          `gorm:"not null;index"`
	Content   string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	Post      Post           `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User      usermodel.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Comment) TableName() string {
	return "comments"
}

// AutoMigrate 按依赖顺序建表：users -> forum_posts -> comments
func AutoMigrate(db *gorm.DB) error {
	if err := usermodel.AutoMigrate(db); err != nil {
		return err
	}
	return db.AutoMigrate(&Post{}, &Comment{})
}
