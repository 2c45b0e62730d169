package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/xChrisxY/orders-service/internal/entity"
	"github.com/xChrisxY/orders-service/internal/logging"
	"github.com/xChrisxY/orders-service/internal/usecase"
)

const requestTimeout = 5 * time.Second

type OrderHandler struct {
	create       *usecase.CreateOrder
	get          *usecase.GetOrder
	byUser       *usecase.GetOrdersByUser
	byRestaurant *usecase.GetOrdersByRestaurant
	updateStatus *usecase.UpdateOrderStatus
	remove       *usecase.DeleteOrder
}

func NewOrderHandler(
	create *usecase.CreateOrder,
	get *usecase.GetOrder,
	byUser *usecase.GetOrdersByUser,
	byRestaurant *usecase.GetOrdersByRestaurant,
	updateStatus *usecase.UpdateOrderStatus,
	remove *usecase.DeleteOrder,
) *OrderHandler {
	return &OrderHandler{
		create:       create,
		get:          get,
		byUser:       byUser,
		byRestaurant: byRestaurant,
		updateStatus: updateStatus,
		remove:       remove,
	}
}

type createItemReq struct {
	ProductID   string  `json:"product_id" binding:"required"`
	ProductName string  `json:"product_name" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"required,gt=0"`
}

type addressReq struct {
	Street         string `json:"street" binding:"required"`
	City           string `json:"city" binding:"required"`
	State          string `json:"state" binding:"required"`
	PostalCode     string `json:"postal_code" binding:"required"`
	Country        string `json:"country"`
	AdditionalInfo string `json:"additional_info"`
}

type createOrderReq struct {
	UserID          string          `json:"user_id" binding:"required"`
	RestaurantID    string          `json:"restaurant_id" binding:"required"`
	Items           []createItemReq `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress addressReq      `json:"delivery_address" binding:"required"`
	Notes           string          `json:"notes"`
	DeliveryFee     float64         `json:"delivery_fee" binding:"gte=0"`
	TaxRate         *float64        `json:"tax_rate" binding:"omitempty,gte=0,lte=1"`
}

type itemResp struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type addressResp struct {
	Street         string `json:"street"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}

type orderResp struct {
	ID                    string      `json:"id"`
	UserID                string      `json:"user_id"`
	RestaurantID          string      `json:"restaurant_id"`
	Items                 []itemResp  `json:"items"`
	DeliveryAddress       addressResp `json:"delivery_address"`
	Status                string      `json:"status"`
	TotalAmount           float64     `json:"total_amount"`
	DeliveryFee           float64     `json:"delivery_fee"`
	TaxAmount             float64     `json:"tax_amount"`
	FinalAmount           float64     `json:"final_amount"`
	Notes                 string      `json:"notes,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
	EstimatedDeliveryTime *time.Time  `json:"estimated_delivery_time,omitempty"`
	DeliveredAt           *time.Time  `json:"delivered_at,omitempty"`
}

type orderPageResp struct {
	Orders     []orderResp `json:"orders"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	TotalPages int64       `json:"total_pages"`
}

func toOrderResp(o *domain.Order) orderResp {
	items := make([]itemResp, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemResp(it))
	}
	return orderResp{
		ID:                    o.ID,
		UserID:                o.UserID,
		RestaurantID:          o.RestaurantID,
		Items:                 items,
		DeliveryAddress:       addressResp(o.DeliveryAddress),
		Status:                string(o.Status),
		TotalAmount:           o.TotalAmount,
		DeliveryFee:           o.DeliveryFee,
		TaxAmount:             o.TaxAmount,
		FinalAmount:           o.FinalAmount,
		Notes:                 o.Notes,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		DeliveredAt:           o.DeliveredAt,
	}
}

// POST /v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "detail": err.Error()})
		return
	}

	taxRate := usecase.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	items := make([]usecase.CreateOrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CreateOrderItemInput(it))
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	order, err := h.create.Execute(ctx, usecase.CreateOrderInput{
		UserID:          req.UserID,
		RestaurantID:    req.RestaurantID,
		Items:           items,
		DeliveryAddress: usecase.DeliveryAddressInput(req.DeliveryAddress),
		Notes:           req.Notes,
		DeliveryFee:     req.DeliveryFee,
		TaxRate:         taxRate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	logging.From(c).Info("order created", "order_id", order.ID, "final_amount", order.FinalAmount)
	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "data": toOrderResp(order)})
}

// GET /v1/orders/:id
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	order, err := h.get.Execute(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toOrderResp(order)})
}

// GET /v1/users/:user_id/orders?page=&per_page=
func (h *OrderHandler) GetOrdersByUser(c *gin.Context) {
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 10)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	result, err := h.byUser.Execute(ctx, c.Param("user_id"), page, perPage)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResp(result))
}

// GET /v1/restaurants/:restaurant_id/orders?page=&per_page=
func (h *OrderHandler) GetOrdersByRestaurant(c *gin.Context) {
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 10)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	result, err := h.byRestaurant.Execute(ctx, c.Param("restaurant_id"), page, perPage)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResp(result))
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /v1/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "detail": err.Error()})
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "detail": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	order, err := h.updateStatus.Execute(ctx, c.Param("id"), status)
	if err != nil {
		writeError(c, err)
		return
	}

	logging.From(c).Info("order status updated", "order_id", order.ID, "status", order.Status)
	c.JSON(http.StatusOK, gin.H{"data": toOrderResp(order)})
}

// DELETE /v1/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.remove.Execute(ctx, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toPageResp(p *usecase.OrderPage) orderPageResp {
	orders := make([]orderResp, 0, len(p.Orders))
	for i := range p.Orders {
		orders = append(orders, toOrderResp(&p.Orders[i]))
	}
	return orderPageResp{
		Orders:     orders,
		Total:      p.Total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: p.TotalPages,
	}
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "detail": err.Error()})
	case errors.Is(err, domain.ErrBusinessRule), errors.Is(err, domain.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "detail": err.Error()})
	}
}
