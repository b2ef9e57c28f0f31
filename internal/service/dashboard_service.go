package service

import (
	"context"
	"log/slog"
	"sort"

	"pravaah/internal/domain"
	"pravaah/internal/port"
)

// TopVendorCount is how many vendors the dashboard ranks.
const TopVendorCount = 5

// DashboardService aggregates the processed-document log.
type DashboardService interface {
	// Summary computes KPIs and chart series. An unreadable or empty log
	// yields an empty dashboard.
	Summary(ctx context.Context) domain.Dashboard
	// Records returns every log record for export.
	Records(ctx context.Context) ([]domain.LogRecord, error)
}

type dashboardService struct {
	logs port.LogStore
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(logs port.LogStore) DashboardService {
	return &dashboardService{logs: logs}
}

func (s *dashboardService) Summary(ctx context.Context) domain.Dashboard {
	records, err := s.logs.List(ctx)
	if err != nil {
		slog.Error("service.Dashboard.Summary: reading log store failed", "error", err)
		return domain.Dashboard{}
	}
	return BuildDashboard(records)
}

func (s *dashboardService) Records(ctx context.Context) ([]domain.LogRecord, error) {
	return s.logs.List(ctx)
}

// BuildDashboard aggregates records. Vendors are ranked by summed amount,
// ties broken by name, and only the first TopVendorCount are kept.
func BuildDashboard(records []domain.LogRecord) domain.Dashboard {
	if len(records) == 0 {
		return domain.Dashboard{}
	}

	kpis := &domain.DashboardKPIs{TotalDocs: len(records)}
	dist := map[domain.DocumentType]int{}
	vendorSums := map[string]float64{}

	for _, r := range records {
		if r.DocType == domain.DocTypeInvoice {
			kpis.TotalInvoices++
		}
		kpis.TotalValue += r.TotalAmount
		dist[r.DocType]++
		vendorSums[r.VendorName] += r.TotalAmount
	}

	ranking := make([]domain.VendorTotal, 0, len(vendorSums))
	for v, total := range vendorSums {
		ranking = append(ranking, domain.VendorTotal{Vendor: v, Total: total})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Total != ranking[j].Total {
			return ranking[i].Total > ranking[j].Total
		}
		return ranking[i].Vendor < ranking[j].Vendor
	})
	if len(ranking) > TopVendorCount {
		ranking = ranking[:TopVendorCount]
	}

	top := make(map[string]float64, len(ranking))
	for _, vt := range ranking {
		top[vt.Vendor] = vt.Total
	}

	return domain.Dashboard{
		KPIs:          kpis,
		Charts:        &domain.DashboardCharts{DocDistribution: dist, TopVendors: top},
		VendorRanking: ranking,
	}
}
