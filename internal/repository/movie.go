package repository

import (
	"errors"

	"github.com/user/cinelog/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create 创建电影条目
func (r *MovieRepository) Create(movie *model.Movie) error {
	return r.db.Create(movie).Error
}

// FindByID 根据 ID 查找电影并带出所有者，不存在返回 (nil, nil)
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Preload("Owner").First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// ListAll 获取全部电影（带所有者），按创建时间倒序
func (r *MovieRepository) ListAll() ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Preload("Owner").Order("created_at DESC").Find(&movies).Error
	return movies, err
}

// ListByOwner 获取指定用户的全部电影
func (r *MovieRepository) ListByOwner(userID int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&movies).Error
	return movies, err
}

// Update 整体覆盖可编辑字段（最后写入生效，不做版本检测）
func (r *MovieRepository) Update(movie *model.Movie) error {
	return r.db.Model(&model.Movie{}).Where("id = ?", movie.ID).Updates(map[string]interface{}{
		"title":       movie.Title,
		"description": movie.Description,
		"year":        movie.Year,
		"genres":      movie.Genres,
		"rating":      movie.Rating,
		"poster":      movie.Poster,
	}).Error
}

// Delete 删除电影
func (r *MovieRepository) Delete(id int) error {
	return r.db.Delete(&model.Movie{}, id).Error
}

// CountByOwner 获取用户条目总数
func (r *MovieRepository) CountByOwner(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
