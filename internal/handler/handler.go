package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/cinelog/internal/config"
	"github.com/user/cinelog/internal/middleware"
	"github.com/user/cinelog/internal/model"
	"github.com/user/cinelog/internal/repository"
	"github.com/user/cinelog/internal/service"
	"github.com/user/cinelog/internal/utils"
)

// UserStore 用户持久层接口，由 repository.UserRepository 实现
type UserStore interface {
	Create(email, username, password string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByID(id int) (*model.User, error)
	CheckPassword(user *model.User, password string) bool
}

// Handler HTTP 处理器
type Handler struct {
	Users   UserStore
	Catalog *service.Catalog
	Poster  *service.PosterFetcher
	Config  *config.Config
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Users:   repos.User,
		Catalog: service.NewCatalog(repos.Movie),
		Poster:  service.NewPosterFetcher(),
		Config:  cfg,
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	// 基础数据
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
		"Path":     c.Request.URL.Path,
	}

	// 注入用户信息
	if su, ok := middleware.CurrentUser(c); ok {
		res["UserInfo"] = su
	}

	// 注入一次性提示
	if msg := utils.PopFlash(c, utils.FlashSuccess); msg != "" {
		res["SuccessMsg"] = msg
	}
	if msg := utils.PopFlash(c, utils.FlashError); msg != "" {
		res["ErrorMsg"] = msg
	}

	// 菜单高亮逻辑
	res["ActiveMenu"] = h.getActiveMenu(c.Request.URL.Path)

	// 合并传入的数据
	for k, v := range data {
		res[k] = v
	}

	return res
}

// getActiveMenu 根据路径判断当前高亮菜单
func (h *Handler) getActiveMenu(path string) string {
	switch {
	case path == "/":
		return "home"
	case path == "/dashboard":
		return "user"
	case strings.HasPrefix(path, "/movies"):
		return "movies"
	default:
		return ""
	}
}

// renderNotFound 渲染 404 页面
func (h *Handler) renderNotFound(c *gin.Context, message string) {
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title":   "页面未找到 - " + h.Config.SiteName,
		"Message": message,
	}))
}

// serverError 记录意外错误并返回不带内部细节的响应
func (h *Handler) serverError(c *gin.Context, err error) {
	log.Printf("[错误] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.String(http.StatusInternalServerError, "服务器开小差了，请稍后再试")
}

// ==================== 公开页面 ====================

// Home 首页
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
		"Title": h.Config.SiteName + " - 我的电影收藏夹",
	}))
}

// Dashboard 用户中心
func (h *Handler) Dashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	// 获取完整用户信息
	user, err := h.Users.FindByID(userID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if user == nil {
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	movies, err := h.Catalog.ListByOwner(userID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	movieCount, _ := h.Catalog.CountByOwner(userID)

	c.HTML(http.StatusOK, "dashboard.html", h.RenderData(c, gin.H{
		"Title":      "用户中心 - " + h.Config.SiteName,
		"User":       user,
		"Movies":     movies,
		"MovieCount": movieCount,
	}))
}
