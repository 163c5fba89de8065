package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/cinelog/internal/middleware"
	"github.com/user/cinelog/internal/model"
	"github.com/user/cinelog/internal/utils"
)

// MovieList 电影列表（公开，带所有者信息）
func (h *Handler) MovieList(c *gin.Context) {
	movies, err := h.Catalog.List()
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "movies.html", h.RenderData(c, gin.H{
		"Title":  "全部电影 - " + h.Config.SiteName,
		"Movies": movies,
	}))
}

// MovieNewPage 新建电影表单
func (h *Handler) MovieNewPage(c *gin.Context) {
	c.HTML(http.StatusOK, "movie_new.html", h.RenderData(c, gin.H{
		"Title": "添加电影 - " + h.Config.SiteName,
		"Form":  MovieForm{},
	}))
}

// MovieCreate 创建电影
func (h *Handler) MovieCreate(c *gin.Context) {
	var form MovieForm
	if err := c.ShouldBind(&form); err != nil {
		// 校验失败：回显全部错误和已填写的内容
		c.HTML(http.StatusOK, "movie_new.html", h.RenderData(c, gin.H{
			"Title":  "添加电影 - " + h.Config.SiteName,
			"Errors": formErrors(err),
			"Form":   form,
		}))
		return
	}

	movie := &model.Movie{
		Title:       form.Title,
		Description: form.Description,
		Year:        form.Year,
		Genres:      utils.SplitGenres(form.Genres),
		Rating:      form.Rating,
		Poster:      h.Poster.Resolve(form.Poster),
		UserID:      middleware.GetUserID(c), // 所有者在创建时定死，之后不再变更
		CreatedAt:   time.Now(),
	}

	if err := h.Catalog.Create(movie); err != nil {
		h.serverError(c, err)
		return
	}

	utils.SetFlash(c, utils.FlashSuccess, "电影添加成功")
	c.Redirect(http.StatusFound, "/movies")
}

// MovieShow 电影详情（公开）
func (h *Handler) MovieShow(c *gin.Context) {
	movie := h.findMovie(c)
	if movie == nil {
		return
	}

	c.HTML(http.StatusOK, "movie_show.html", h.RenderData(c, gin.H{
		"Title": movie.Title + " - " + h.Config.SiteName,
		"Movie": movie,
	}))
}

// MovieEditPage 编辑电影表单（需要登录 + 所有权）
func (h *Handler) MovieEditPage(c *gin.Context) {
	movie := h.findMovie(c)
	if movie == nil {
		return
	}
	if !h.authorizeOwner(c, movie) {
		return
	}

	c.HTML(http.StatusOK, "movie_edit.html", h.RenderData(c, gin.H{
		"Title": "编辑 " + movie.Title + " - " + h.Config.SiteName,
		"Movie": movie,
		"Form": MovieForm{
			Title:       movie.Title,
			Description: movie.Description,
			Year:        movie.Year,
			Genres:      joinGenres(movie.Genres),
			Rating:      movie.Rating,
			Poster:      movie.Poster,
		},
	}))
}

// MovieUpdate 更新电影。所有权在这里独立复核，不信任编辑页那次检查
func (h *Handler) MovieUpdate(c *gin.Context) {
	movie := h.findMovie(c)
	if movie == nil {
		return
	}
	if !h.authorizeOwner(c, movie) {
		return
	}

	var form MovieForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "movie_edit.html", h.RenderData(c, gin.H{
			"Title":  "编辑 " + movie.Title + " - " + h.Config.SiteName,
			"Movie":  movie,
			"Errors": formErrors(err),
			"Form":   form,
		}))
		return
	}

	// 在副本上覆盖字段，落库失败时不污染缓存里的原对象
	updated := *movie
	updated.Title = form.Title
	updated.Description = form.Description
	updated.Year = form.Year
	updated.Genres = utils.SplitGenres(form.Genres)
	updated.Rating = form.Rating
	updated.Poster = h.Poster.Resolve(form.Poster)

	if err := h.Catalog.Update(&updated); err != nil {
		h.serverError(c, err)
		return
	}

	utils.SetFlash(c, utils.FlashSuccess, "电影更新成功")
	c.Redirect(http.StatusFound, "/movies/"+strconv.Itoa(movie.ID))
}

// MovieDelete 删除电影（需要登录 + 所有权）
func (h *Handler) MovieDelete(c *gin.Context) {
	movie := h.findMovie(c)
	if movie == nil {
		return
	}
	if !h.authorizeOwner(c, movie) {
		return
	}

	if err := h.Catalog.Delete(movie.ID); err != nil {
		h.serverError(c, err)
		return
	}

	utils.SetFlash(c, utils.FlashSuccess, "电影已删除")
	c.Redirect(http.StatusFound, "/movies")
}

// findMovie 解析 :id 并查库。失败时已写好响应，调用方收到 nil 直接返回即可
func (h *Handler) findMovie(c *gin.Context) *model.Movie {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.renderNotFound(c, "电影不存在")
		return nil
	}

	movie, err := h.Catalog.Get(id)
	if err != nil {
		h.serverError(c, err)
		return nil
	}
	if movie == nil {
		h.renderNotFound(c, "电影不存在")
		return nil
	}
	return movie
}

// authorizeOwner 所有权门禁：非所有者只给提示并跳回列表，不暴露任何数据
func (h *Handler) authorizeOwner(c *gin.Context, movie *model.Movie) bool {
	if movie.OwnedBy(middleware.GetUserID(c)) {
		return true
	}

	utils.SetFlash(c, utils.FlashError, "无权操作该电影")
	c.Redirect(http.StatusFound, "/movies")
	c.Abort()
	return false
}

// joinGenres 编辑表单回显用，和 SplitGenres 互逆
func joinGenres(genres []string) string {
	return strings.Join(genres, ", ")
}
