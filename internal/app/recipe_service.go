package app

import (
	"errors"
	"mime/multipart"
	"time"

	"recipeshare/internal/model"
	"recipeshare/internal/pkg/upload"
	"recipeshare/internal/repository"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotRecipeOwner = errors.New("recipe belongs to another user")
)

type RecipeService struct {
	recipeRepo *repository.RecipeRepository
	uploads    *upload.Store
}

type RecipeInput struct {
	RecipeName  string
	Category    string
	Serving     string
	Duration    string
	Desc        string
	Ingredients string
	Directions  string
}

func NewRecipeService(recipeRepo *repository.RecipeRepository, uploads *upload.Store) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo, uploads: uploads}
}

// Create stores the picture if one was supplied and valid, then persists the
// recipe stamped with the owning username and the creation day.
func (s *RecipeService) Create(owner *model.User, input RecipeInput, picture *multipart.FileHeader) (*model.Recipe, error) {
	stored, err := s.uploads.Save(picture, upload.KindRecipe)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		User:        owner.Username,
		RecipeName:  input.RecipeName,
		Category:    input.Category,
		Serving:     input.Serving,
		Duration:    input.Duration,
		Desc:        input.Desc,
		Ingredients: input.Ingredients,
		Directions:  input.Directions,
		RecipePic:   stored,
		DateCreated: time.Now().Format("2006-01-02"),
	}
	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) List(filter repository.RecipeFilter) ([]model.Recipe, error) {
	return s.recipeRepo.List(filter)
}

func (s *RecipeService) Get(id uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

// Update replaces all recipe fields. Only the owning username may update. A
// valid new picture replaces the stored file; otherwise the old filename is
// kept.
func (s *RecipeService) Update(id uint, caller *model.User, input RecipeInput, picture *multipart.FileHeader) (*model.Recipe, error) {
	recipe, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if recipe.User != caller.Username {
		return nil, ErrNotRecipeOwner
	}

	stored, err := s.uploads.Save(picture, upload.KindRecipe)
	if err != nil {
		return nil, err
	}
	if stored != "" {
		s.uploads.Delete(upload.KindRecipe, recipe.RecipePic)
		recipe.RecipePic = stored
	}

	recipe.RecipeName = input.RecipeName
	recipe.Category = input.Category
	recipe.Serving = input.Serving
	recipe.Duration = input.Duration
	recipe.Desc = input.Desc
	recipe.Ingredients = input.Ingredients
	recipe.Directions = input.Directions

	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete removes the recipe row after a best-effort removal of its picture
// file. Only the owning username may delete.
func (s *RecipeService) Delete(id uint, caller *model.User) error {
	recipe, err := s.Get(id)
	if err != nil {
		return err
	}
	if recipe.User != caller.Username {
		return ErrNotRecipeOwner
	}

	s.uploads.Delete(upload.KindRecipe, recipe.RecipePic)
	return s.recipeRepo.Delete(id)
}
