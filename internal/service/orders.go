// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/kedjora/kedjora-go/internal/content"
	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/store"
	"github.com/kedjora/kedjora-go/internal/util"
)

// OrderInput is the body of a public order request, from the API or the
// contact form.
type OrderInput struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	ServiceID string  `json:"serviceId"`
	Message   string  `json:"message"`
}

// validEmail accepts a bare address only, without a display name.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// CreateOrder validates and stores a new order in the PENDING state. The
// referenced service must exist.
func (s *ContentService) CreateOrder(ctx context.Context, in OrderInput, actor Actor) (model.Order, error) {
	in.Name = content.CleanText(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.ServiceID = strings.TrimSpace(in.ServiceID)
	in.Message = content.CleanText(in.Message)

	if in.Name == "" || in.Email == "" || in.ServiceID == "" || in.Message == "" {
		return model.Order{}, invalid(MsgMissingFields)
	}
	if !validEmail(in.Email) {
		return model.Order{}, invalid(MsgInvalidEmail)
	}

	svc, err := s.queries.GetServiceByID(ctx, in.ServiceID)
	if errors.Is(err, store.ErrNotFound) {
		return model.Order{}, ErrServiceNotFound
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("getting service: %w", err)
	}

	now := s.now()
	row, err := s.queries.CreateOrder(ctx, store.CreateOrderParams{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     util.NullStringFromPtr(cleanPtr(in.Phone)),
		ServiceID: svc.ID,
		Message:   in.Message,
		Status:    store.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Order{}, ErrServiceNotFound
		}
		return model.Order{}, fmt.Errorf("creating order: %w", err)
	}

	if s.events != nil {
		_ = s.events.LogOrderEvent(ctx, "Order received", actor.UserID, actor.IP, map[string]any{"order_id": row.ID, "service_id": svc.ID})
	}
	out := model.OrderFromStore(row)
	out.Service = &model.OrderService{ID: svc.ID, Title: svc.Title}
	return out, nil
}

// ListOrders returns every order with its service title, newest first.
func (s *ContentService) ListOrders(ctx context.Context) ([]model.Order, error) {
	rows, err := s.queries.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return model.OrdersFromStore(rows), nil
}

// GetOrder returns one order with its service title.
func (s *ContentService) GetOrder(ctx context.Context, id string) (model.Order, error) {
	row, err := s.queries.GetOrderByID(ctx, id)
	if err != nil {
		return model.Order{}, notFound(err, "getting order")
	}
	return model.OrderWithServiceFromStore(row), nil
}

// UpdateOrderStatus sets the status of an order.
func (s *ContentService) UpdateOrderStatus(ctx context.Context, id, status string, actor Actor) (model.Order, error) {
	status = strings.TrimSpace(status)
	if !store.ValidOrderStatus(status) {
		return model.Order{}, invalid(MsgInvalidStatus)
	}

	n, err := s.queries.UpdateOrderStatus(ctx, store.UpdateOrderStatusParams{Status: status, UpdatedAt: s.now(), ID: id})
	if err != nil {
		return model.Order{}, fmt.Errorf("updating order: %w", err)
	}
	if n == 0 {
		return model.Order{}, ErrNotFound
	}

	if s.events != nil {
		_ = s.events.LogOrderEvent(ctx, "Order status changed", actor.UserID, actor.IP, map[string]any{"order_id": id, "status": status})
	}
	return s.GetOrder(ctx, id)
}

// DeleteOrder removes an order.
func (s *ContentService) DeleteOrder(ctx context.Context, id string, actor Actor) error {
	n, err := s.queries.DeleteOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	if s.events != nil {
		_ = s.events.LogOrderEvent(ctx, "Order deleted", actor.UserID, actor.IP, map[string]any{"order_id": id})
	}
	return nil
}

// DashboardStats summarizes the admin dashboard.
type DashboardStats struct {
	Services      int64
	Portfolios    int64
	Testimonials  int64
	Orders        int64
	PendingOrders int64
	RecentOrders  []model.Order
}

// Dashboard collects the counts and latest orders shown on the admin home.
func (s *ContentService) Dashboard(ctx context.Context, recent int64) (DashboardStats, error) {
	var (
		st  DashboardStats
		err error
	)
	counts := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&st.Services, s.queries.CountServices},
		{&st.Portfolios, s.queries.CountPortfolios},
		{&st.Testimonials, s.queries.CountTestimonials},
		{&st.Orders, s.queries.CountOrders},
	}
	for _, c := range counts {
		if *c.dst, err = c.fn(ctx); err != nil {
			return DashboardStats{}, fmt.Errorf("counting: %w", err)
		}
	}
	if st.PendingOrders, err = s.queries.CountOrdersByStatus(ctx, store.OrderStatusPending); err != nil {
		return DashboardStats{}, fmt.Errorf("counting pending orders: %w", err)
	}

	rows, err := s.queries.ListRecentOrders(ctx, recent)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("listing recent orders: %w", err)
	}
	st.RecentOrders = model.OrdersFromStore(rows)
	return st, nil
}
