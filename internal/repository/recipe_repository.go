package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"recipeshare/internal/model"
)

// RecipeFilter narrows a listing; zero-value fields are ignored, supplied
// fields are combined conjunctively.
type RecipeFilter struct {
	Category string
	User     string
}

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Create(recipe *model.Recipe) error {
	if err := r.db.Create(recipe).Error; err != nil {
		return fmt.Errorf("create recipe failed: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when no such recipe exists.
func (r *RecipeRepository) GetByID(id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query recipe by id failed: %w", err)
	}
	return &recipe, nil
}

func (r *RecipeRepository) List(filter RecipeFilter) ([]model.Recipe, error) {
	query := r.db.Model(&model.Recipe{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.User != "" {
		query = query.Where("user = ?", filter.User)
	}

	var recipes []model.Recipe
	if err := query.Order("id").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes failed: %w", err)
	}
	return recipes, nil
}

func (r *RecipeRepository) Update(recipe *model.Recipe) error {
	if err := r.db.Save(recipe).Error; err != nil {
		return fmt.Errorf("update recipe failed: %w", err)
	}
	return nil
}

func (r *RecipeRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Recipe{}, id).Error; err != nil {
		return fmt.Errorf("delete recipe failed: %w", err)
	}
	return nil
}
