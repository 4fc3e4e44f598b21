package composer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmilbury/agentpress/internal/analyzer"
	"github.com/jmilbury/agentpress/internal/models"
)

func growingResult() analyzer.Result {
	return analyzer.Result{
		Metrics: map[string]analyzer.MetricStats{
			"revenue": {
				Mean:           550,
				Min:            100,
				Max:            1000,
				TrendDirection: analyzer.TrendIncreasing,
				GrowthRate:     900,
			},
		},
	}
}

func TestComposeDeterministic(t *testing.T) {
	res := growingResult()
	res.RegionalInsights = map[string]analyzer.RegionStats{
		"North": {RevenueSum: 2500, RevenueMean: 500, Count: 5},
		"South": {RevenueSum: 3000, RevenueMean: 600, Count: 5},
	}

	for _, role := range []models.Role{models.RoleFinance, models.RoleSales, models.RoleMarketing, models.RoleGeneric} {
		first := Compose(role, res, 1)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Compose(role, res, 1), "role %s", role)
		}
	}
}

func TestFinanceNarrative(t *testing.T) {
	res := growingResult()
	res.Profitability = &analyzer.Profitability{AvgProfitMargin: 20, ProfitTrend: analyzer.TrendIncreasing}

	text := Compose(models.RoleFinance, res, 1)

	assert.Contains(t, text, "Executive Summary: Financial performance shows increasing trend with 900.0% overall growth.")
	assert.Contains(t, text, "Key Financial Metrics: Revenue: $550.00 (trend: increasing).")
	assert.Contains(t, text, "Profitability Analysis: Average profit margin is 20.00 with increasing trend.")
	assert.Contains(t, text, "Strategic Insight: Positive revenue growth")
	assert.Contains(t, text, "Recommendations: 1) Monitor cash flow trends closely")
}

func TestFinanceNarrativeChallenges(t *testing.T) {
	res := growingResult()
	rev := res.Metrics["revenue"]
	rev.GrowthRate = -25
	rev.TrendDirection = analyzer.TrendDecreasing
	res.Metrics["revenue"] = rev

	text := Compose(models.RoleFinance, res, 1)

	assert.Contains(t, text, "decreasing trend with -25.0% overall growth")
	assert.Contains(t, text, "Strategic Insight: Revenue challenges detected.")
	assert.NotContains(t, text, "Positive revenue growth")
}

func TestFinanceSkipsAbsentProfitability(t *testing.T) {
	text := Compose(models.RoleFinance, growingResult(), 1)
	assert.NotContains(t, text, "Profitability Analysis")
}

func TestSalesNarrative(t *testing.T) {
	res := growingResult()
	res.CategoryInsights = map[string]map[string]analyzer.CategoryPerformance{
		"region": {
			"North": {Count: 5, TotalRevenue: 2500, AvgRevenue: 500},
			"South": {Count: 5, TotalRevenue: 3000, AvgRevenue: 600},
		},
	}
	res.RegionalInsights = map[string]analyzer.RegionStats{
		"North": {Count: 5}, "South": {Count: 5},
	}

	text := Compose(models.RoleSales, res, 1)

	assert.Contains(t, text, "Sales Performance Overview: Revenue shows increasing trend with 900.0% growth.")
	assert.Contains(t, text, "Product Performance: Region shows South as top performer.")
	assert.Contains(t, text, "Regional Performance: 2 regions analyzed")
	assert.Contains(t, text, "Sales Strategy: Strong upward trend")
}

func TestSalesTopPerformerFallback(t *testing.T) {
	res := growingResult()
	res.CategoryInsights = map[string]map[string]analyzer.CategoryPerformance{
		"region": {},
	}

	text := Compose(models.RoleSales, res, 1)
	assert.Contains(t, text, "Product Performance: Region shows N/A as top performer.")
}

func TestMarketingNarrative(t *testing.T) {
	res := growingResult()
	res.MarketingMetrics = &analyzer.MarketingMetrics{
		AvgAcquisitionCost: 10, LifetimeValue: 10, ConversionRate: 50,
	}
	res.CampaignPerformance = map[string]analyzer.CampaignStats{
		"widgets": {RevenueSum: 400, RevenueMean: 200, Count: 2, Customers: 40},
		"gears":   {RevenueSum: 200, RevenueMean: 200, Count: 1, Customers: 20},
	}
	res.MarketPenetration = map[string]analyzer.PenetrationStats{
		"North": {Customers: 30, Revenue: 300},
	}

	text := Compose(models.RoleMarketing, res, 1)

	assert.Contains(t, text, "Customer Acquisition: Average Customer Acquisition Cost $10.00, Conversion Rate 50.0%.")
	// Campaign clauses come out in sorted category order.
	assert.Contains(t, text, "Campaign Performance: Campaign Performance for Gears: Revenue $200.00, Avg Revenue $200.00, Count 1; Campaign Performance for Widgets: Revenue $400.00, Avg Revenue $200.00, Count 2.")
	assert.Contains(t, text, "Market Penetration: Market Penetration for North: Customers 30, Revenue $300.00.")
	assert.Contains(t, text, "Recommendations: 1) Optimize customer acquisition channels")
}

func TestGenericNarrative(t *testing.T) {
	res := analyzer.Result{
		Metrics: map[string]analyzer.MetricStats{
			"units":   {Mean: 5.5, TrendDirection: analyzer.TrendIncreasing},
			"revenue": {Mean: 150, TrendDirection: analyzer.TrendStable},
		},
		SeasonalPatterns: map[time.Month]float64{time.January: 150},
	}

	text := Compose(models.RoleGeneric, res, 1)

	assert.Contains(t, text, "Key Business Metrics: Revenue: 150.00 (trend: stable); Units: 5.50 (trend: increasing).")
	assert.Contains(t, text, "Market Insights: Seasonal patterns identified")
	assert.Contains(t, text, "Strategic Recommendations: 1) Optimize operational processes")
}

func TestGenericWithoutRevenueSkipsOverview(t *testing.T) {
	res := analyzer.Result{
		Metrics: map[string]analyzer.MetricStats{
			"units": {Mean: 5.5, TrendDirection: analyzer.TrendIncreasing},
		},
	}

	text := Compose(models.RoleGeneric, res, 1)
	assert.NotContains(t, text, "Business Performance:")
	assert.Contains(t, text, "Strategic Analysis: Business challenges detected.")
}
