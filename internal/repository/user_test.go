package repository

import (
	"strings"
	"testing"

	"github.com/user/cinelog/internal/model"
)

func TestHashPasswordNeverPlaintext(t *testing.T) {
	hash, err := hashPassword("secret-password")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	if hash == "secret-password" || strings.Contains(hash, "secret-password") {
		t.Error("哈希结果不应包含明文密码")
	}
	if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") {
		t.Errorf("期望 bcrypt 哈希，got %q", hash)
	}
}

func TestHashPasswordSalted(t *testing.T) {
	// 盐值随机，同一密码两次哈希结果应不同
	h1, _ := hashPassword("same-password")
	h2, _ := hashPassword("same-password")
	if h1 == h2 {
		t.Error("两次哈希不应相同")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, _ := hashPassword("correct-horse")
	user := &model.User{PasswordHash: hash}

	r := &UserRepository{}
	if !r.CheckPassword(user, "correct-horse") {
		t.Error("正确密码应通过验证")
	}
	if r.CheckPassword(user, "wrong-horse") {
		t.Error("错误密码不应通过验证")
	}
}
