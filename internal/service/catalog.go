package service

import (
	"strconv"
	"time"

	"github.com/user/cinelog/internal/model"
	"github.com/user/cinelog/internal/utils"
	"golang.org/x/sync/singleflight"
)

// MovieStore 电影持久层接口，由 repository.MovieRepository 实现
type MovieStore interface {
	Create(movie *model.Movie) error
	FindByID(id int) (*model.Movie, error)
	ListAll() ([]*model.Movie, error)
	ListByOwner(userID int) ([]*model.Movie, error)
	Update(movie *model.Movie) error
	Delete(id int) error
	CountByOwner(userID int) (int64, error)
}

const listCacheKey = "movies:all"

// Catalog 电影目录服务：读路径加缓存，写路径透传并失效缓存。
// 详情页用 LRU + TTL，列表页用全局缓存短 TTL；
// 缓存未命中时用 singleflight 合并并发回源，避免同一条目被打穿。
type Catalog struct {
	store   MovieStore
	byID    *utils.LRUCache[*model.Movie]
	group   singleflight.Group
	listTTL time.Duration
}

// NewCatalog 创建目录服务
func NewCatalog(store MovieStore) *Catalog {
	return &Catalog{
		store:   store,
		byID:    utils.NewLRUCache[*model.Movie](1000, 10*time.Minute),
		listTTL: 30 * time.Second,
	}
}

// Get 按 ID 取电影，不存在返回 (nil, nil)
func (s *Catalog) Get(id int) (*model.Movie, error) {
	key := strconv.Itoa(id)
	if movie, ok := s.byID.Get(key); ok {
		return movie, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		movie, err := s.store.FindByID(id)
		if err != nil {
			return nil, err
		}
		if movie != nil {
			s.byID.Set(key, movie)
		}
		return movie, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*model.Movie), nil
}

// List 全部电影（带所有者）
func (s *Catalog) List() ([]*model.Movie, error) {
	if cached, ok := utils.CacheGet(listCacheKey); ok {
		return cached.([]*model.Movie), nil
	}

	movies, err := s.store.ListAll()
	if err != nil {
		return nil, err
	}
	utils.CacheSet(listCacheKey, movies, s.listTTL)

	return movies, nil
}

// ListByOwner 指定用户的电影（用户中心页，不走缓存）
func (s *Catalog) ListByOwner(userID int) ([]*model.Movie, error) {
	return s.store.ListByOwner(userID)
}

// CountByOwner 指定用户的条目数
func (s *Catalog) CountByOwner(userID int) (int64, error) {
	return s.store.CountByOwner(userID)
}

// Create 新建电影并失效列表缓存
func (s *Catalog) Create(movie *model.Movie) error {
	if err := s.store.Create(movie); err != nil {
		return err
	}
	s.invalidate(movie.ID)
	return nil
}

// Update 覆盖更新并失效缓存
func (s *Catalog) Update(movie *model.Movie) error {
	if err := s.store.Update(movie); err != nil {
		return err
	}
	s.invalidate(movie.ID)
	return nil
}

// Delete 删除并失效缓存
func (s *Catalog) Delete(id int) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *Catalog) invalidate(id int) {
	s.byID.Delete(strconv.Itoa(id))
	utils.CacheDelete(listCacheKey)
}
