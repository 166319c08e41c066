package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/pkg/events"
)

// OrderService provides order history for customers and lifecycle
// management for admins.
type OrderService struct {
	orders OrderRepositoryInterface
	events EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders OrderRepositoryInterface, publisher EventPublisher) *OrderService {
	return &OrderService{orders: orders, events: publisher}
}

// ListForUser returns the caller's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// Get returns an order visible to the caller: its owner, or any admin.
// Returns ErrOrderNotFound otherwise, so non-owners cannot probe for
// order existence.
func (s *OrderService) Get(ctx context.Context, orderID, userID string, isAdmin bool) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || (!isAdmin && order.UserID != userID) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAll returns orders for the admin panel, optionally filtered by
// status. An unknown status yields ErrInvalidRequest.
func (s *OrderService) ListAll(ctx context.Context, status string) ([]model.Order, error) {
	if status != "" && !model.ValidStatus(status) {
		return nil, ErrInvalidRequest
	}
	return s.orders.ListAll(ctx, status)
}

// UpdateStatus moves an order through its lifecycle. Only transitions
// allowed by model.CanTransition are accepted.
// Returns ErrOrderNotFound for an unknown order and ErrInvalidTransition
// for a disallowed move.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if !model.CanTransition(order.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	if s.events != nil {
		event := events.OrderEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			UserID:      order.UserID,
			Status:      status,
			TotalAmount: order.TotalAmount,
			OccurredAt:  time.Now(),
		}
		if err := s.events.Publish(ctx, events.OrderStatusChanged, event); err != nil {
			log.Warn().Err(err).Str("order_number", order.OrderNumber).Msg("failed to publish status event")
		}
	}

	return order, nil
}
