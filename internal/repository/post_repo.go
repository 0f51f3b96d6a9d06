package repository

import (
	"github.com/egyakin/egyakin-api/internal/model"
	"gorm.io/gorm"
)

// PostRepository handles database operations for Post
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post
func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}
