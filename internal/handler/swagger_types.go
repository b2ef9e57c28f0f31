package handler

import "pravaah/internal/domain"

// Swagger type definitions for API documentation.

// DashboardResponse documents the shape of GET /dashboard-data.
type DashboardResponse struct {
	KPIs   domain.DashboardKPIs   `json:"kpis"`
	Charts domain.DashboardCharts `json:"charts"`
}
