package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/cinelog/internal/middleware"
	"github.com/user/cinelog/internal/utils"
)

// tokenRequest API 换取 Token 的请求体
type tokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// APIToken 用邮箱密码换取 Bearer Token
func (h *Handler) APIToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请提供邮箱和密码")
		return
	}

	user, err := h.Users.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil || !h.Users.CheckPassword(user, req.Password) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.Config.AppSecret, h.Config.TokenExpiry)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"token":      token,
		"expires_in": int(h.Config.TokenExpiry.Seconds()),
	})
}

// APIMovies 电影列表（只读）
func (h *Handler) APIMovies(c *gin.Context) {
	movies, err := h.Catalog.List()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, movies)
}

// APIMovie 电影详情（只读）
func (h *Handler) APIMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.NotFound(c, "电影不存在")
		return
	}

	movie, err := h.Catalog.Get(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}
	utils.Success(c, movie)
}

// APIMyMovies 当前 Token 用户的电影（需要认证）
func (h *Handler) APIMyMovies(c *gin.Context) {
	movies, err := h.Catalog.ListByOwner(middleware.GetUserID(c))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, movies)
}
