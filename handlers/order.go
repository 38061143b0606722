package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"

	"github.com/ray-remotestate/tableside/database/dbhelper"
	"github.com/ray-remotestate/tableside/middlewares"
	"github.com/ray-remotestate/tableside/models"
	"github.com/ray-remotestate/tableside/utils"
)

type orderItemInput struct {
	MenuItem      uuid.UUID `json:"menuItem"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	Price         float64   `json:"price"`
	SpecialOption string    `json:"specialOption"`
}

type createOrderInput struct {
	RestaurantID  uuid.UUID            `json:"restaurantId"`
	Items         []orderItemInput     `json:"items"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	TableNumber   string               `json:"tableNumber"`
	// TotalAmount is accepted for wire compatibility but never trusted;
	// the stored total is recomputed from the line items.
	TotalAmount   float64 `json:"totalAmount"`
	Notes         string  `json:"notes"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
}

func (in *createOrderInput) validate() error {
	var result *multierror.Error
	if in.TableNumber == "" {
		result = multierror.Append(result, errors.New("table number is required"))
	}
	if len(in.Items) == 0 {
		result = multierror.Append(result, errors.New("order must contain at least one item"))
	}
	for i, item := range in.Items {
		if item.Name == "" {
			result = multierror.Append(result, fmt.Errorf("item %d: name is required", i))
		}
		if item.Quantity < 1 {
			result = multierror.Append(result, fmt.Errorf("item %d: quantity must be at least 1", i))
		}
		if item.Price < 0 {
			result = multierror.Append(result, fmt.Errorf("item %d: price must be non-negative", i))
		}
	}
	if !in.PaymentMethod.IsValid() {
		result = multierror.Append(result, errors.New("invalid payment method"))
	}
	return result.ErrorOrNil()
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input createOrderInput
	if err := utils.ParseBody(r, &input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := input.validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Error creating order", err.Error())
		return
	}

	exists, err := h.restaurants.Exists(input.RestaurantID)
	if err != nil {
		h.serverError(w, "Error creating order", err)
		return
	}
	if !exists {
		utils.RespondError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	items := make([]models.OrderItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = models.OrderItem{
			MenuItemID:    item.MenuItem,
			Name:          item.Name,
			Quantity:      item.Quantity,
			Price:         item.Price,
			SpecialOption: item.SpecialOption,
		}
	}

	order := &models.Order{
		RestaurantID:  input.RestaurantID,
		TableNumber:   input.TableNumber,
		Items:         items,
		Status:        models.StatusPending,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
	}
	if claims, err := middlewares.GetAuthenticatedUser(r); err == nil {
		order.UserID = &claims.UserID
	}

	if err := h.orders.Create(order); err != nil {
		h.serverError(w, "Error creating order", err)
		return
	}

	h.hub.BroadcastNewOrder(order)

	utils.RespondJSON(w, http.StatusCreated, order)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List()
	if err != nil {
		h.serverError(w, "Error fetching orders", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, orders)
}

func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orders, err := h.orders.ListByUser(claims.UserID)
	if err != nil {
		h.serverError(w, "Error fetching orders", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.orders.Get(id)
	if err != nil {
		if errors.Is(err, dbhelper.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.serverError(w, "Error fetching order", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus is the single place status transitions are checked;
// clients no longer carry their own copy of the rules.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := utils.ParseBody(r, &input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !input.Status.IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	order, err := h.orders.Get(id)
	if err != nil {
		if errors.Is(err, dbhelper.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.serverError(w, "Error updating order status", err)
		return
	}

	if order.Status.IsTerminal() {
		utils.RespondError(w, http.StatusBadRequest,
			fmt.Sprintf("Order is already %s", order.Status))
		return
	}
	if !models.ValidStatusTransition(order.Status, input.Status) {
		utils.RespondError(w, http.StatusBadRequest,
			fmt.Sprintf("Cannot change order status from %s to %s", order.Status, input.Status))
		return
	}

	if err := h.orders.UpdateStatus(id, input.Status); err != nil {
		h.serverError(w, "Error updating order status", err)
		return
	}

	order.Status = input.Status
	utils.RespondJSON(w, http.StatusOK, order)
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.orders.Get(id)
	if err != nil {
		if errors.Is(err, dbhelper.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.serverError(w, "Error cancelling order", err)
		return
	}

	if !order.Status.CanCancel() {
		utils.RespondError(w, http.StatusBadRequest, "Order cannot be cancelled at this stage")
		return
	}

	if err := h.orders.UpdateStatus(id, models.StatusCancelled); err != nil {
		h.serverError(w, "Error cancelling order", err)
		return
	}

	order.Status = models.StatusCancelled
	utils.RespondJSON(w, http.StatusOK, order)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	if err := h.orders.Delete(id); err != nil {
		if errors.Is(err, dbhelper.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.serverError(w, "Error deleting order", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}
