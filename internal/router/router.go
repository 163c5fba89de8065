package router

import (
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/cinelog/internal/handler"
	"github.com/user/cinelog/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 公开页面 ====================
	r.GET("/", h.Home)
	r.GET("/dashboard", middleware.RequireAuth(), h.Dashboard)

	// ==================== 认证页面 ====================
	auth := r.Group("/auth")
	{
		auth.GET("/login", h.LoginPage)
		auth.POST("/login", h.Login)
		auth.GET("/register", h.RegisterPage)
		auth.POST("/register", h.Register)
		auth.GET("/logout", h.Logout)
	}

	// ==================== 电影目录 ====================
	movies := r.Group("/movies")
	{
		movies.GET("", h.MovieList)
		movies.GET("/:id", h.MovieShow)

		// 需要登录的操作；所有权在 handler 内逐个复核
		movies.GET("/new", middleware.RequireAuth(), h.MovieNewPage)
		movies.POST("", middleware.RequireAuth(), h.MovieCreate)
		movies.GET("/:id/edit", middleware.RequireAuth(), h.MovieEditPage)
		movies.PUT("/:id", middleware.RequireAuth(), h.MovieUpdate)
		movies.DELETE("/:id", middleware.RequireAuth(), h.MovieDelete)
	}

	// ==================== JSON API ====================
	api := r.Group("/api")
	{
		api.POST("/auth/token", h.APIToken)
		api.GET("/movies", h.APIMovies)
		api.GET("/movies/:id", h.APIMovie)
		api.GET("/movies/mine", middleware.RequireAPIAuth(h.Config.AppSecret), h.APIMyMovies)
	}
}

// MethodOverride 支持 HTML 表单通过 _method 字段发 PUT/DELETE。
// 必须包在引擎外层，路由匹配之前改写方法才有效。
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			// ParseForm 的结果会缓存在 Request 上，后续 handler 取表单不受影响
			if err := r.ParseForm(); err == nil {
				switch strings.ToUpper(r.PostForm.Get("_method")) {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	// 获取布局和局部模板
	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	partials, err := filepath.Glob(templatesDir + "/partials/*.html")
	if err != nil {
		panic(err)
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	// 模板函数
	funcMap := template.FuncMap{
		"join": func(items []string, sep string) string {
			return strings.Join(items, sep)
		},
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case int:
				if v == 0 {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
	}

	// 注册所有页面模板
	pages := []string{
		"home", "dashboard", "404",
		"login", "register",
		"movies", "movie_new", "movie_show", "movie_edit",
	}

	for _, page := range pages {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}

	return r
}
