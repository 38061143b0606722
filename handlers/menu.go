package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"

	"github.com/ray-remotestate/tableside/database/dbhelper"
	"github.com/ray-remotestate/tableside/models"
	"github.com/ray-remotestate/tableside/utils"
)

type menuItemInput struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          *float64        `json:"price"`
	Category       models.Category `json:"category"`
	Image          string          `json:"image"`
	Special        bool            `json:"special"`
	SpecialOptions []string        `json:"specialOptions"`
	IsAvailable    *bool           `json:"isAvailable"`
}

func (in *menuItemInput) validate() error {
	var result *multierror.Error
	if in.Name == "" {
		result = multierror.Append(result, errors.New("name is required"))
	}
	if in.Description == "" {
		result = multierror.Append(result, errors.New("description is required"))
	}
	if in.Price == nil {
		result = multierror.Append(result, errors.New("price is required"))
	} else if *in.Price < 0 {
		result = multierror.Append(result, errors.New("price must be non-negative"))
	}
	if !in.Category.IsValid() {
		result = multierror.Append(result, errors.New("invalid category"))
	}
	if !models.IsValidImage(in.Image) {
		result = multierror.Append(result, errors.New("image must be a URL, inline image data or a /static/ path"))
	}
	return result.ErrorOrNil()
}

func (in *menuItemInput) toModel() *models.MenuItem {
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	return &models.MenuItem{
		Name:           in.Name,
		Description:    in.Description,
		Price:          *in.Price,
		Category:       in.Category,
		Image:          in.Image,
		Special:        in.Special,
		SpecialOptions: in.SpecialOptions,
		IsAvailable:    available,
	}
}

func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.ListAvailable()
	if err != nil {
		h.serverError(w, "Error fetching menu items", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) ListMenuByCategory(w http.ResponseWriter, r *http.Request) {
	category := models.Category(mux.Vars(r)["category"])
	if !category.IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "Invalid category")
		return
	}

	items, err := h.menu.ListByCategory(category)
	if err != nil {
		h.serverError(w, "Error fetching menu items", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var input menuItemInput
	if err := utils.ParseBody(r, &input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := input.validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Error creating menu item", err.Error())
		return
	}

	item := input.toModel()
	if err := h.menu.Create(item); err != nil {
		h.serverError(w, "Error creating menu item", err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid menu item ID")
		return
	}

	var input menuItemInput
	if err := utils.ParseBody(r, &input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := input.validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Error updating menu item", err.Error())
		return
	}

	item := input.toModel()
	if err := h.menu.Update(id, item); err != nil {
		if errors.Is(err, dbhelper.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		h.serverError(w, "Error updating menu item", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid menu item ID")
		return
	}

	if err := h.menu.Delete(id); err != nil {
		if errors.Is(err, dbhelper.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		h.serverError(w, "Error deleting menu item", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Menu item deleted successfully"})
}
