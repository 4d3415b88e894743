// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Order statuses.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// ValidOrderStatus reports whether status is one of the known order statuses.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

const orderColumns = `o.id, o.name, o.email, o.phone, o.service_id, o.message, o.status, o.created_at, o.updated_at`

const orderWithServiceSelect = `SELECT ` + orderColumns + `, COALESCE(s.title, '')
FROM orders o LEFT JOIN services s ON s.id = o.service_id`

func scanOrder(row scanner) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.ServiceID, &o.Message, &o.Status,
		&o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func scanOrderWithService(row scanner) (OrderWithService, error) {
	var o OrderWithService
	err := row.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.ServiceID, &o.Message, &o.Status,
		&o.CreatedAt, &o.UpdatedAt, &o.ServiceTitle)
	return o, err
}

const listOrders = orderWithServiceSelect + ` ORDER BY o.created_at DESC`

// ListOrders returns all orders with their service title, newest first.
func (q *Queries) ListOrders(ctx context.Context) ([]OrderWithService, error) {
	rows, err := q.db.QueryContext(ctx, listOrders)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOrderWithService)
}

const listRecentOrders = orderWithServiceSelect + ` ORDER BY o.created_at DESC LIMIT ?`

func (q *Queries) ListRecentOrders(ctx context.Context, limit int64) ([]OrderWithService, error) {
	rows, err := q.db.QueryContext(ctx, listRecentOrders, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOrderWithService)
}

const getOrderByID = orderWithServiceSelect + ` WHERE o.id = ? LIMIT 1`

func (q *Queries) GetOrderByID(ctx context.Context, id string) (OrderWithService, error) {
	return scanOrderWithService(q.db.QueryRowContext(ctx, getOrderByID, id))
}

type CreateOrderParams struct {
	ID        string
	Name      string
	Email     string
	Phone     sql.NullString
	ServiceID string
	Message   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const createOrder = `INSERT INTO orders (id, name, email, phone, service_id, message, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, name, email, phone, service_id, message, status, created_at, updated_at`

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	status := arg.Status
	if status == "" {
		status = OrderStatusPending
	}
	return scanOrder(q.db.QueryRowContext(ctx, createOrder,
		newID(arg.ID), arg.Name, arg.Email, arg.Phone, arg.ServiceID, arg.Message, status,
		arg.CreatedAt, arg.UpdatedAt))
}

type UpdateOrderStatusParams struct {
	Status    string
	UpdatedAt time.Time
	ID        string
}

const updateOrderStatus = `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`

// UpdateOrderStatus sets the status of an order and reports how many rows changed.
func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateOrderStatus, arg.Status, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteOrder = `DELETE FROM orders WHERE id = ?`

func (q *Queries) DeleteOrder(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteOrder, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countOrders = `SELECT COUNT(*) FROM orders`

func (q *Queries) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countOrders).Scan(&n)
	return n, err
}

const countOrdersByStatus = `SELECT COUNT(*) FROM orders WHERE status = ?`

func (q *Queries) CountOrdersByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countOrdersByStatus, status).Scan(&n)
	return n, err
}

const countOrdersForService = `SELECT COUNT(*) FROM orders WHERE service_id = ?`

// CountOrdersForService counts orders that reference a service.
func (q *Queries) CountOrdersForService(ctx context.Context, serviceID string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countOrdersForService, serviceID).Scan(&n)
	return n, err
}
