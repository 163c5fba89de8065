package model

import (
	"time"

	"github.com/lib/pq"
)

// User 用户模型
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email" gorm:"unique"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SessionUser 专门用于 Session 存储的用户信息结构
type SessionUser struct {
	ID       int
	Email    string
	Username string
}

// Movie 电影条目（用户自建）
type Movie struct {
	ID          int            `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Year        int            `json:"year" db:"year"`
	Genres      pq.StringArray `json:"genres" db:"genres" gorm:"type:text[]"`
	Rating      float64        `json:"rating" db:"rating"`
	Poster      string         `json:"poster" db:"poster"`
	UserID      int            `json:"user_id" db:"user_id" gorm:"index"`
	Owner       *User          `json:"owner,omitempty" gorm:"foreignKey:UserID"` // 关联查询时填充
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// OwnerID 归一化所有者标识。
// 电影记录有时只带 user_id 原始列，有时带 Preload 出来的 Owner 对象，
// 所有权判断必须统一走这里，不允许调用方各自比较字段。
func (m *Movie) OwnerID() int {
	if m.UserID != 0 {
		return m.UserID
	}
	if m.Owner != nil {
		return m.Owner.ID
	}
	return 0
}

// OwnedBy 判断电影是否归指定用户所有（userID 为 0 视为未登录，一律拒绝）
func (m *Movie) OwnedBy(userID int) bool {
	return userID != 0 && m.OwnerID() == userID
}
