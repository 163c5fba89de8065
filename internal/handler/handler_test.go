package handler_test

import (
	"encoding/gob"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/user/cinelog/internal/config"
	"github.com/user/cinelog/internal/handler"
	"github.com/user/cinelog/internal/middleware"
	"github.com/user/cinelog/internal/model"
	"github.com/user/cinelog/internal/router"
	"github.com/user/cinelog/internal/service"
	"github.com/user/cinelog/internal/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	gob.Register(model.SessionUser{})
	utils.InitCache()
	os.Exit(m.Run())
}

// fakeUserStore 内存用户存储
type fakeUserStore struct {
	seq   int
	users map[int]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int]*model.User{}}
}

func (f *fakeUserStore) Create(email, username, password string) (*model.User, error) {
	f.seq++
	u := &model.User{
		ID:           f.seq,
		Email:        email,
		Username:     username,
		PasswordHash: "h:" + password,
		CreatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByID(id int) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) CheckPassword(user *model.User, password string) bool {
	return user.PasswordHash == "h:"+password
}

// fakeMovieStore 内存电影存储
type fakeMovieStore struct {
	seq    int
	movies map[int]*model.Movie
}

func newFakeMovieStore() *fakeMovieStore {
	return &fakeMovieStore{movies: map[int]*model.Movie{}}
}

func (f *fakeMovieStore) Create(m *model.Movie) error {
	f.seq++
	m.ID = f.seq
	f.movies[m.ID] = m
	return nil
}

func (f *fakeMovieStore) FindByID(id int) (*model.Movie, error) {
	m, ok := f.movies[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMovieStore) ListAll() ([]*model.Movie, error) {
	out := make([]*model.Movie, 0, len(f.movies))
	for _, m := range f.movies {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMovieStore) ListByOwner(userID int) ([]*model.Movie, error) {
	out := []*model.Movie{}
	for _, m := range f.movies {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovieStore) Update(m *model.Movie) error {
	cp := *m
	f.movies[m.ID] = &cp
	return nil
}

func (f *fakeMovieStore) Delete(id int) error {
	delete(f.movies, id)
	return nil
}

func (f *fakeMovieStore) CountByOwner(userID int) (int64, error) {
	ms, _ := f.ListByOwner(userID)
	return int64(len(ms)), nil
}

// testApp 组装好的测试应用，请求统一走 MethodOverride 包装后的入口
type testApp struct {
	handler http.Handler
	users   *fakeUserStore
	movies  *fakeMovieStore
}

func newTestApp() *testApp {
	users := newFakeUserStore()
	movies := newFakeMovieStore()

	h := &handler.Handler{
		Users:   users,
		Catalog: service.NewCatalog(movies),
		Poster:  service.NewPosterFetcher(),
		Config: &config.Config{
			Env:         "test",
			AppSecret:   "test-secret",
			TokenExpiry: time.Hour,
			SiteName:    "CineLog",
			SiteUrl:     "http://localhost",
		},
	}

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))

	// 测试专用：带 X-Test-User 头的请求视为已登录
	r.Use(func(c *gin.Context) {
		if v := c.GetHeader("X-Test-User"); v != "" {
			id, _ := strconv.Atoi(v)
			session := sessions.Default(c)
			session.Set(middleware.SessionUserKey, model.SessionUser{
				ID:       id,
				Email:    fmt.Sprintf("user%d@test.com", id),
				Username: "user" + v,
			})
		}
		c.Next()
	})

	r.SetHTMLTemplate(stubTemplates())
	router.RegisterRoutes(r, h)

	return &testApp{
		handler: router.MethodOverride(r),
		users:   users,
		movies:  movies,
	}
}

// stubTemplates 渲染断言需要的最小模板集
func stubTemplates() *template.Template {
	pages := []string{
		"home.html", "dashboard.html", "404.html",
		"login.html", "register.html",
		"movies.html", "movie_new.html", "movie_show.html", "movie_edit.html",
	}
	body := `{{ .Title }}|{{ if .Errors }}{{ range .Errors }}[{{ . }}]{{ end }}{{ end }}|{{ if .Error }}{{ .Error }}{{ end }}|{{ if .Message }}{{ .Message }}{{ end }}`

	tmpl := template.New("_stub")
	for _, name := range pages {
		template.Must(tmpl.New(name).Parse(body))
	}
	return tmpl
}

// do 发送一个表单请求，userID 大于 0 时带登录态
func (app *testApp) do(method, target string, form url.Values, userID int) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if userID > 0 {
		req.Header.Set("X-Test-User", strconv.Itoa(userID))
	}

	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)
	return w
}
