package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// RegisterForm 注册表单
type RegisterForm struct {
	Username  string `form:"username" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required,min=6"`
	Password2 string `form:"password2" binding:"required,eqfield=Password"`
}

// LoginForm 登录表单
type LoginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// MovieForm 电影创建/编辑表单
type MovieForm struct {
	Title       string  `form:"title" binding:"required"`
	Description string  `form:"description" binding:"required"`
	Year        int     `form:"year" binding:"required"`
	Genres      string  `form:"genres" binding:"required"`
	Rating      float64 `form:"rating" binding:"required,gte=0,lte=10"`
	Poster      string  `form:"poster"`
}

// formErrors 把校验错误翻译成可展示的消息列表。
// validator 对每个字段收集首个未通过的规则，跨字段不短路，
// 这样一次提交能把所有问题一起展示出来。
func formErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// 绑定阶段的类型错误（比如年份填了非数字）
		return []string{"请检查输入内容是否完整有效"}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return msgs
}

// fieldMessage 单个字段错误的提示文案
func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Username":
		return "请填写用户名"
	case "Email":
		if fe.Tag() == "email" {
			return "邮箱格式不正确"
		}
		return "请填写邮箱"
	case "Password":
		if fe.Tag() == "min" {
			return "密码至少需要 6 个字符"
		}
		return "请填写密码"
	case "Password2":
		if fe.Tag() == "eqfield" {
			return "两次输入的密码不一致"
		}
		return "请再次输入密码"
	case "Title":
		return "请填写片名"
	case "Description":
		return "请填写简介"
	case "Year":
		return "请填写年份"
	case "Genres":
		return "请填写类型（多个用英文逗号分隔）"
	case "Rating":
		if fe.Tag() == "gte" || fe.Tag() == "lte" {
			return "评分需在 0 到 10 之间"
		}
		return "请填写评分"
	default:
		return "请检查输入内容"
	}
}
