package model

// User 用户结构体 (数据集上传/切换需要登录认证)
import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex;not null"` // 用户名唯一且不为空
	Password string `json:"-" gorm:"not null"`                    // bcrypt 加密后的密码，不往外吐
	Email    string `json:"email"`
	Org      string `json:"org"` // 所属单位，如测绘队、设计院
}
