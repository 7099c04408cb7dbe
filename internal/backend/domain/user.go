package domain

import (
	"strings"
	"time"
)

type User struct {
	UId       string    `gorm:"column:uid;type:varchar(32);primaryKey;comment:用户ID" json:"uid"`
	Username  string    `gorm:"column:username;type:varchar(32);uniqueIndex;not null;comment:用户名" json:"username"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null;comment:邮箱" json:"email"`
	Passwd    string    `gorm:"column:passwd;type:varchar(255);not null;comment:bcrypt 哈希" json:"-"`
	IsAdmin   bool      `gorm:"column:is_admin;not null;default:false;comment:管理员" json:"isAdmin"`
	LoginTime time.Time `gorm:"column:login_time;comment:最后登录" json:"loginTime"`
	Ctime     time.Time `gorm:"column:ctime;autoCreateTime;comment:创建时间" json:"ctime"`
	Mtime     time.Time `gorm:"column:mtime;autoUpdateTime;comment:更新时间" json:"mtime"`
}

func (User) TableName() string {
	return "user_info"
}

func (u User) CheckPassword(pwd string, verify func(hash, pwd string) bool) bool {
	if pwd == "" || u.Passwd == "" {
		return false
	}
	return verify(u.Passwd, pwd)
}

// SameName 用户名比较不区分大小写。
func SameName(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}
