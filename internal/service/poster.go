package service

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/cinelog/internal/utils"
)

// PosterFetcher 海报解析服务。
// 用户在表单里贴的往往是影片介绍页而不是图片直链，
// 这里抓取页面并取 og:image 作为海报地址。
type PosterFetcher struct {
	client *utils.HTTPClient
}

// NewPosterFetcher 创建海报解析服务
func NewPosterFetcher() *PosterFetcher {
	return &PosterFetcher{
		client: utils.NewHTTPClient(10 * time.Second),
	}
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Resolve 把用户输入解析成海报地址。
// 图片直链原样返回；网页地址尝试取 og:image；解析失败不报错，保留原值。
func (f *PosterFetcher) Resolve(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	u, err := url.Parse(input)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return input
	}
	if imageExts[strings.ToLower(path.Ext(u.Path))] {
		return input
	}

	poster, err := f.fetchOGImage(input)
	if err != nil || poster == "" {
		return input
	}
	return poster
}

// fetchOGImage 抓取页面并提取 og:image
func (f *PosterFetcher) fetchOGImage(pageURL string) (string, error) {
	resp, err := f.client.Get(pageURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("请求失败，状态码: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	content, _ := doc.Find(`meta[property="og:image"]`).Attr("content")
	return strings.TrimSpace(content), nil
}
