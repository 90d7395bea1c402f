package service

import (
	"context"

	"swapnest/internal/entity"
)

type OrderService struct {
	orders orderStore
}

func NewOrderService(orders orderStore) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) ListOrders(ctx context.Context, actorID int, actorRole string) ([]entity.Order, error) {
	if actorRole == entity.RoleAdmin {
		return s.orders.ListAllOrders(ctx)
	}
	return s.orders.ListOrdersByUser(ctx, actorID)
}

func (s *OrderService) GetOrder(ctx context.Context, actorID int, actorRole string, id int) (*entity.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanModify(actorID, actorRole, order.UserID) {
		return nil, entity.ErrForbidden
	}
	return order, nil
}

// UpdateStatus is an admin operation; route middleware enforces the role.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, status string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, entity.NewValidationError("Unknown order status.")
	}
	if _, err := s.orders.GetOrderByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateOrderStatus(ctx, id, status); err != nil {
		logger.Error().Err(err).Msgf("Error updating order %d", id)
		return nil, err
	}
	return s.orders.GetOrderByID(ctx, id)
}

func (s *OrderService) DeleteOrder(ctx context.Context, id int) error {
	return s.orders.DeleteOrder(ctx, id)
}
