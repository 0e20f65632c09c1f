package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recipeshare/internal/app"
	"recipeshare/internal/model"
	"recipeshare/internal/repository"
	"recipeshare/internal/transport/http/middleware"
	"recipeshare/internal/transport/http/response"
)

type RecipeHandler struct {
	recipeService *app.RecipeService
}

type RecipeRequest struct {
	RecipeName  string `form:"recipe_name" binding:"required"`
	Category    string `form:"category" binding:"required"`
	Serving     string `form:"serving"`
	Duration    string `form:"duration"`
	Desc        string `form:"desc"`
	Ingredients string `form:"ingredients"`
	Directions  string `form:"directions"`
}

func NewRecipeHandler(recipeService *app.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

func (h *RecipeHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Invalid or inactive user!")
		return
	}

	var req RecipeRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	picture, err := c.FormFile("recipe_pic")
	if err != nil {
		picture = nil
	}

	recipe, err := h.recipeService.Create(user, recipeInput(req), picture)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "create recipe failed")
		return
	}

	response.OK(c, "Recipe created successfully!", gin.H{"recipe": recipeView(recipe)})
}

func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.recipeService.List(repository.RecipeFilter{
		Category: c.Query("category"),
		User:     c.Query("user"),
	})
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "list recipes failed")
		return
	}

	views := make([]gin.H, 0, len(recipes))
	for i := range recipes {
		views = append(views, recipeView(&recipes[i]))
	}
	response.OK(c, "Recipes retrieved successfully", gin.H{"recipes": views})
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(id)
	if err != nil {
		h.failRecipe(c, err, "fetch recipe failed")
		return
	}

	response.OK(c, "Recipes retrieved successfully", gin.H{"recipe": recipeView(recipe)})
}

func (h *RecipeHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Invalid or inactive user!")
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req RecipeRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	picture, err := c.FormFile("recipe_pic")
	if err != nil {
		picture = nil
	}

	recipe, err := h.recipeService.Update(id, user, recipeInput(req), picture)
	if err != nil {
		h.failRecipe(c, err, "update recipe failed")
		return
	}

	response.OK(c, "Recipe updated successfully!", gin.H{"recipe": recipeView(recipe)})
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Invalid or inactive user!")
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipeService.Delete(id, user); err != nil {
		h.failRecipe(c, err, "delete recipe failed")
		return
	}

	response.OK(c, "Recipe deleted successfully!", nil)
}

func (h *RecipeHandler) failRecipe(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrRecipeNotFound):
		response.Fail(c, http.StatusNotFound, "Recipe not found")
	case errors.Is(err, app.ErrNotRecipeOwner):
		response.Fail(c, http.StatusForbidden, "Recipe belongs to another user")
	default:
		response.Fail(c, http.StatusInternalServerError, fallback)
	}
}

func recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid recipe id")
		return 0, false
	}
	return uint(id), true
}

func recipeInput(req RecipeRequest) app.RecipeInput {
	return app.RecipeInput{
		RecipeName:  req.RecipeName,
		Category:    req.Category,
		Serving:     req.Serving,
		Duration:    req.Duration,
		Desc:        req.Desc,
		Ingredients: req.Ingredients,
		Directions:  req.Directions,
	}
}

// recipeView shapes a recipe for transport with a string-form id.
func recipeView(recipe *model.Recipe) gin.H {
	return gin.H{
		"id":           strconv.FormatUint(uint64(recipe.ID), 10),
		"user":         recipe.User,
		"recipe_name":  recipe.RecipeName,
		"category":     recipe.Category,
		"serving":      recipe.Serving,
		"duration":     recipe.Duration,
		"desc":         recipe.Desc,
		"ingredients":  recipe.Ingredients,
		"directions":   recipe.Directions,
		"recipe_pic":   recipe.RecipePic,
		"date_created": recipe.DateCreated,
	}
}
