package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/config"
	"marketplace/models"
)

type DashboardController struct{}

func NewDashboardController() *DashboardController {
	return &DashboardController{}
}

// GetSellerDashboard godoc
// @Summary Seller dashboard
// @Description Summary of the seller's catalog and sales
// @Tags Seller - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /seller/dashboard [get]
func (ctrl *DashboardController) GetSellerDashboard(c *gin.Context) {
	sellerID := c.GetInt("user_id")
	ctx := c.Request.Context()

	var totalProducts, activeProducts int
	err := config.DB.QueryRow(ctx,
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM products WHERE seller_id=$1",
		sellerID).Scan(&totalProducts, &activeProducts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load dashboard"})
		return
	}

	var totalOrders, pendingOrders int
	var totalRevenue float64
	err = config.DB.QueryRow(ctx, `
		SELECT COUNT(DISTINCT o.id),
		       COUNT(DISTINCT o.id) FILTER (WHERE o.status = 'pending'),
		       COALESCE(SUM(oi.unit_price * oi.quantity) FILTER (WHERE o.status NOT IN ('cancelled')), 0)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE p.seller_id = $1`,
		sellerID).Scan(&totalOrders, &pendingOrders, &totalRevenue)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load dashboard"})
		return
	}

	type lowStockItem struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	}
	lowStock := []lowStockItem{}
	rows, err := config.DB.Query(ctx,
		"SELECT id, name, stock FROM products WHERE seller_id=$1 AND is_active AND stock <= 5 ORDER BY stock ASC LIMIT 10",
		sellerID)
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var item lowStockItem
			if err := rows.Scan(&item.ID, &item.Name, &item.Stock); err == nil {
				lowStock = append(lowStock, item)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Dashboard retrieved",
		"data": gin.H{
			"total_products":  totalProducts,
			"active_products": activeProducts,
			"total_orders":    totalOrders,
			"pending_orders":  pendingOrders,
			"total_revenue":   totalRevenue,
			"low_stock":       lowStock,
		},
	})
}

// GetAdminDashboard godoc
// @Summary Admin dashboard
// @Description Store-wide totals, recent orders and monthly revenue
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/dashboard [get]
func (ctrl *DashboardController) GetAdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var totalUsers, totalProducts, totalOrders int
	var totalRevenue float64
	err := config.DB.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM users),
		       (SELECT COUNT(*) FROM products WHERE is_active),
		       (SELECT COUNT(*) FROM orders),
		       (SELECT COALESCE(SUM(total), 0) FROM orders WHERE status NOT IN ('cancelled'))`).
		Scan(&totalUsers, &totalProducts, &totalOrders, &totalRevenue)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load dashboard"})
		return
	}

	recentOrders := []models.Order{}
	rows, err := config.DB.Query(ctx, `
		SELECT id, order_number, user_id, status, total, created_at
		FROM orders ORDER BY created_at DESC LIMIT 5`)
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var o models.Order
			if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.Total, &o.CreatedAt); err == nil {
				recentOrders = append(recentOrders, o)
			}
		}
	}

	type monthRevenue struct {
		Month   string  `json:"month"`
		Revenue float64 `json:"revenue"`
	}
	monthly := []monthRevenue{}
	revRows, err := config.DB.Query(ctx, `
		SELECT TO_CHAR(date_trunc('month', created_at), 'YYYY-MM') AS month,
		       COALESCE(SUM(total), 0)
		FROM orders
		WHERE status NOT IN ('cancelled') AND created_at >= NOW() - INTERVAL '6 months'
		GROUP BY 1 ORDER BY 1`)
	if err == nil {
		defer revRows.Close()
		for revRows.Next() {
			var m monthRevenue
			if err := revRows.Scan(&m.Month, &m.Revenue); err == nil {
				monthly = append(monthly, m)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Dashboard retrieved",
		"data": gin.H{
			"total_users":     totalUsers,
			"total_products":  totalProducts,
			"total_orders":    totalOrders,
			"total_revenue":   totalRevenue,
			"recent_orders":   recentOrders,
			"monthly_revenue": monthly,
		},
	})
}
