package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"

	"github.com/ray-remotestate/tableside/database/dbhelper"
	"github.com/ray-remotestate/tableside/middlewares"
	"github.com/ray-remotestate/tableside/models"
	"github.com/ray-remotestate/tableside/utils"
)

type restaurantInput struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Cuisine      string              `json:"cuisine"`
	Address      models.Address      `json:"address"`
	Phone        string              `json:"phone"`
	Email        string              `json:"email"`
	OpeningHours models.OpeningHours `json:"openingHours"`
	IsActive     *bool               `json:"isActive"`
}

func (in *restaurantInput) toModel() *models.Restaurant {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return &models.Restaurant{
		Name:         in.Name,
		Description:  in.Description,
		Cuisine:      in.Cuisine,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		OpeningHours: in.OpeningHours,
		IsActive:     active,
	}
}

func (h *Handler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurants.List()
	if err != nil {
		h.serverError(w, "Error fetching restaurants", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	restaurant, err := h.restaurants.Get(id)
	if err != nil {
		if errors.Is(err, dbhelper.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Restaurant not found")
			return
		}
		h.serverError(w, "Error fetching restaurant", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, restaurant)
}

// GetRestaurantMenu serves the menu under the restaurant path for older
// clients; the active storefront uses /api/menu.
func (h *Handler) GetRestaurantMenu(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	exists, err := h.restaurants.Exists(id)
	if err != nil {
		h.serverError(w, "Error fetching menu", err)
		return
	}
	if !exists {
		utils.RespondError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	items, err := h.menu.ListAvailable()
	if err != nil {
		h.serverError(w, "Error fetching menu", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var input restaurantInput
	if err := utils.ParseBody(r, &input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "Restaurant name is required")
		return
	}

	restaurant := input.toModel()
	if err := h.restaurants.Create(restaurant); err != nil {
		h.serverError(w, "Error creating restaurant", err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, restaurant)
}

func (h *Handler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	var input restaurantInput
	if err := utils.ParseBody(r, &input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	restaurant := input.toModel()
	if err := h.restaurants.Update(id, restaurant); err != nil {
		if errors.Is(err, dbhelper.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Restaurant not found")
			return
		}
		h.serverError(w, "Error updating restaurant", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, restaurant)
}

func (h *Handler) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	if err := h.restaurants.Delete(id); err != nil {
		if errors.Is(err, dbhelper.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Restaurant not found")
			return
		}
		h.serverError(w, "Error deleting restaurant", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Restaurant deleted successfully"})
}

func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := utils.ParseBody(r, &input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var result *multierror.Error
	if input.Rating < 1 || input.Rating > 5 {
		result = multierror.Append(result, errors.New("rating must be between 1 and 5"))
	}
	if err := result.ErrorOrNil(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Error adding review", err.Error())
		return
	}

	exists, err := h.restaurants.Exists(id)
	if err != nil {
		h.serverError(w, "Error adding review", err)
		return
	}
	if !exists {
		utils.RespondError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	review := &models.Review{
		RestaurantID: id,
		UserID:       claims.UserID,
		Rating:       input.Rating,
		Comment:      input.Comment,
	}
	if err := h.restaurants.AddReview(review); err != nil {
		if errors.Is(err, dbhelper.ErrDuplicateReview) {
			utils.RespondError(w, http.StatusBadRequest, "You have already reviewed this restaurant")
			return
		}
		h.serverError(w, "Error adding review", err)
		return
	}

	restaurant, err := h.restaurants.Get(id)
	if err != nil {
		h.serverError(w, "Error adding review", err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, restaurant)
}
