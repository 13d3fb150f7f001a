package repo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
)

const recentOrdersLimit = 10

type DashboardStats struct {
	TotalOrders    int64            `json:"total_orders"`
	TotalProducts  int64            `json:"total_products"`
	TotalUsers     int64            `json:"total_users"`
	TotalRevenue   decimal.Decimal  `json:"total_revenue"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	RecentOrders   []models.Order   `json:"recent_orders"`
}

func (r *GormRepo) Dashboard(ctx context.Context) (*DashboardStats, error) {
	db := r.DB.WithContext(ctx)
	stats := &DashboardStats{OrdersByStatus: make(map[string]int64, len(models.OrderStatuses))}

	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	var revenue decimal.NullDecimal
	err := db.Model(&models.Order{}).
		Where("order_status <> ?", models.OrderStatusCancelled).
		Select("SUM(total_amount)").
		Row().Scan(&revenue)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = decimal.Zero
	if revenue.Valid {
		stats.TotalRevenue = revenue.Decimal
	}

	for _, s := range models.OrderStatuses {
		stats.OrdersByStatus[s] = 0
	}
	var rows []struct {
		OrderStatus string
		Count       int64
	}
	err = db.Model(&models.Order{}).
		Select("order_status, COUNT(*) AS count").
		Group("order_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.OrdersByStatus[row.OrderStatus] = row.Count
	}

	if err := db.Preload("Items").Order("created_at DESC").Order("id").Limit(recentOrdersLimit).Find(&stats.RecentOrders).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
