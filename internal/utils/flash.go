package utils

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash 消息的 Session 键，成功/失败各一条，读取即销毁
const (
	FlashSuccess = "success_msg"
	FlashError   = "error_msg"
)

// SetFlash 写入一条一次性提示，在下一次页面渲染时展示
func SetFlash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.Set(kind, message)
	session.Save()
}

// PopFlash 取出并清除指定类型的提示，没有则返回空串
func PopFlash(c *gin.Context, kind string) string {
	session := sessions.Default(c)
	v := session.Get(kind)
	if v == nil {
		return ""
	}
	session.Delete(kind)
	session.Save()

	msg, _ := v.(string)
	return msg
}
