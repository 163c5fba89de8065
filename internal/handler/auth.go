package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/cinelog/internal/middleware"
	"github.com/user/cinelog/internal/model"
	"github.com/user/cinelog/internal/utils"
)

// LoginPage 登录页面
func (h *Handler) LoginPage(c *gin.Context) {
	// 如果已经登录，直接跳转到用户中心
	if middleware.GetUserID(c) > 0 {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title":    "登录 - " + h.Config.SiteName,
		"Email":    "",
		"Redirect": c.Query("redirect"),
	}))
}

// Login 登录处理
func (h *Handler) Login(c *gin.Context) {
	redirect := c.PostForm("redirect")
	if redirect == "" || redirect[0] != '/' {
		redirect = "/dashboard"
	}

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
			"Title":    "登录 - " + h.Config.SiteName,
			"Error":    "请填写邮箱和密码",
			"Email":    form.Email,
			"Redirect": redirect,
		}))
		return
	}

	// 查找用户
	user, err := h.Users.FindByEmail(form.Email)
	if err != nil {
		h.serverError(c, err)
		return
	}

	// 验证密码；用户不存在和密码错误给同一个提示，避免账号探测
	if user == nil || !h.Users.CheckPassword(user, form.Password) {
		c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
			"Title":    "登录 - " + h.Config.SiteName,
			"Error":    "邮箱或密码错误",
			"Email":    form.Email,
			"Redirect": redirect,
		}))
		return
	}

	// 保存 UserInfo 到 Session
	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, model.SessionUser{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	session.Save()

	c.Redirect(http.StatusFound, redirect)
}

// RegisterPage 注册页面
func (h *Handler) RegisterPage(c *gin.Context) {
	// 如果已经登录，直接跳转到用户中心
	if middleware.GetUserID(c) > 0 {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
		"Title":    "注册 - " + h.Config.SiteName,
		"Username": "",
		"Email":    "",
	}))
}

// Register 注册处理
func (h *Handler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		// 一次性展示所有校验问题，同时回填已提交的内容
		c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
			"Title":    "注册 - " + h.Config.SiteName,
			"Errors":   formErrors(err),
			"Username": form.Username,
			"Email":    form.Email,
		}))
		return
	}

	// 字段校验通过后再查重邮箱
	existing, err := h.Users.FindByEmail(form.Email)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if existing != nil {
		c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
			"Title":    "注册 - " + h.Config.SiteName,
			"Errors":   []string{"该邮箱已被注册"},
			"Username": form.Username,
			"Email":    form.Email,
		}))
		return
	}

	// 创建用户。注册不自动登录，跳转到登录页
	if _, err := h.Users.Create(form.Email, form.Username, form.Password); err != nil {
		h.serverError(c, err)
		return
	}

	utils.SetFlash(c, utils.FlashSuccess, "注册成功，请登录")
	c.Redirect(http.StatusFound, "/auth/login")
}

// Logout 登出。未登录时调用也安全，同样跳转回登录页
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	utils.SetFlash(c, utils.FlashSuccess, "已退出登录")
	c.Redirect(http.StatusFound, "/auth/login")
}
