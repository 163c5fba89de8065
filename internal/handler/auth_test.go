package handler_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func registerForm(username, email, password, password2 string) url.Values {
	return url.Values{
		"username":  {username},
		"email":     {email},
		"password":  {password},
		"password2": {password2},
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	app := newTestApp()

	w := app.do("POST", "/auth/register", registerForm("alice", "alice@test.com", "123456", "654321"), 0)

	if w.Code != http.StatusOK {
		t.Fatalf("校验失败应回显表单，got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "两次输入的密码不一致") {
		t.Errorf("应提示密码不一致，body: %s", w.Body.String())
	}
	if len(app.users.users) != 0 {
		t.Error("校验失败不应创建用户")
	}
}

func TestRegisterShortPassword(t *testing.T) {
	app := newTestApp()

	// 5 位密码不通过
	w := app.do("POST", "/auth/register", registerForm("alice", "alice@test.com", "12345", "12345"), 0)
	if !strings.Contains(w.Body.String(), "密码至少需要 6 个字符") {
		t.Errorf("5 位密码应被拒绝，body: %s", w.Body.String())
	}
	if len(app.users.users) != 0 {
		t.Error("校验失败不应创建用户")
	}

	// 6 位密码通过
	w = app.do("POST", "/auth/register", registerForm("alice", "alice@test.com", "123456", "123456"), 0)
	if w.Code != http.StatusFound {
		t.Errorf("6 位密码应注册成功，got %d body: %s", w.Code, w.Body.String())
	}
}

func TestRegisterCollectsAllErrors(t *testing.T) {
	app := newTestApp()

	// 用户名缺失 + 密码太短 + 两次不一致，三个问题要一次性全部报出
	w := app.do("POST", "/auth/register", registerForm("", "alice@test.com", "123", "456"), 0)

	body := w.Body.String()
	for _, msg := range []string{"请填写用户名", "密码至少需要 6 个字符", "两次输入的密码不一致"} {
		if !strings.Contains(body, msg) {
			t.Errorf("缺少提示 %q，body: %s", msg, body)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp()

	w := app.do("POST", "/auth/register", registerForm("alice", "alice@test.com", "123456", "123456"), 0)
	if w.Code != http.StatusFound {
		t.Fatalf("首次注册应成功，got %d", w.Code)
	}

	w = app.do("POST", "/auth/register", registerForm("bob", "alice@test.com", "abcdef", "abcdef"), 0)
	if !strings.Contains(w.Body.String(), "该邮箱已被注册") {
		t.Errorf("重复邮箱应提示冲突，body: %s", w.Body.String())
	}
	if len(app.users.users) != 1 {
		t.Errorf("该邮箱应只有一个用户，got %d", len(app.users.users))
	}
}

func TestRegisterDoesNotEstablishSession(t *testing.T) {
	app := newTestApp()

	w := app.do("POST", "/auth/register", registerForm("alice", "alice@test.com", "123456", "123456"), 0)
	if loc := w.Header().Get("Location"); loc != "/auth/login" {
		t.Errorf("注册成功应跳到登录页，got %q", loc)
	}

	// 注册不等于登录，受保护页面仍然要求先登录
	w = app.do("GET", "/dashboard", nil, 0)
	if w.Code != http.StatusFound || !strings.HasPrefix(w.Header().Get("Location"), "/auth/login") {
		t.Errorf("未登录访问 /dashboard 应重定向登录页，got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp()
	app.users.Create("alice@test.com", "alice", "123456")

	w := app.do("POST", "/auth/login", url.Values{
		"email":    {"alice@test.com"},
		"password": {"wrong"},
	}, 0)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "邮箱或密码错误") {
		t.Errorf("错误密码应回显登录页，got %d body: %s", w.Code, w.Body.String())
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	app := newTestApp()

	w := app.do("POST", "/auth/login", url.Values{
		"email":    {"nobody@test.com"},
		"password": {"123456"},
	}, 0)

	if !strings.Contains(w.Body.String(), "邮箱或密码错误") {
		t.Errorf("未知邮箱应给同样的提示，body: %s", w.Body.String())
	}
}

func TestLoginSuccess(t *testing.T) {
	app := newTestApp()
	app.users.Create("alice@test.com", "alice", "123456")

	w := app.do("POST", "/auth/login", url.Values{
		"email":    {"alice@test.com"},
		"password": {"123456"},
	}, 0)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
		t.Errorf("登录成功应跳转用户中心，got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestLogoutIdempotent(t *testing.T) {
	app := newTestApp()

	// 没有会话时登出也安全
	w := app.do("GET", "/auth/logout", nil, 0)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/auth/login" {
		t.Errorf("登出应跳转登录页，got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestProtectedRouteRedirectsWhenLoggedOut(t *testing.T) {
	app := newTestApp()

	w := app.do("GET", "/movies/new", nil, 0)
	if w.Code != http.StatusFound {
		t.Fatalf("未登录应重定向，got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/auth/login") {
		t.Errorf("应跳转登录页，got %q", loc)
	}
}
