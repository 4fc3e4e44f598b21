// Package analyzer computes per-metric trend statistics and role-specific
// breakdowns from a tabular dataset and a column mapping. Results are
// recomputed fresh on every call; nothing is cached or persisted.
package analyzer

import (
	"math"
	"sort"
	"time"

	"github.com/jmilbury/agentpress/internal/dataset"
	"github.com/jmilbury/agentpress/internal/models"
)

// Well-known column names the supplemental analyses key off. These are
// literal constants, matching what uploaded business datasets actually use.
const (
	colRevenue         = "revenue"
	colOrders          = "orders"
	colCustomers       = "customers"
	colRegion          = "region"
	colProductCategory = "product_category"
)

const (
	recentWindowSize = 5
	topCategoryLimit = 5
	// Day-over-day revenue swings under this fraction of mean revenue count
	// as stable cash flow.
	cashFlowStableRatio = 0.1
)

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// MetricStats describes one metric column over the whole dataset.
type MetricStats struct {
	Mean           float64
	Max            float64
	Min            float64
	StdDev         float64
	TrendDirection Trend
	TrendStrength  float64
	// GrowthRate is a percentage over the full date-sorted series.
	GrowthRate float64
	// RecentValues holds the metric's values in the recent window,
	// chronological order, most recent last.
	RecentValues []float64
}

// CategoryPerformance aggregates revenue for one category value.
type CategoryPerformance struct {
	Count        int
	TotalRevenue float64
	AvgRevenue   float64
}

type Profitability struct {
	AvgProfitMargin float64
	ProfitTrend     Trend
}

type CashFlow struct {
	AvgDailyRevenueChange float64
	Stability             string // "stable" or "volatile"
}

type MarketingMetrics struct {
	AvgAcquisitionCost float64
	LifetimeValue      float64
	ConversionRate     float64
}

type CampaignStats struct {
	RevenueSum  float64
	RevenueMean float64
	Count       int
	Customers   float64
}

type PenetrationStats struct {
	Customers float64
	Revenue   float64
}

type RegionStats struct {
	RevenueSum  float64
	RevenueMean float64
	Count       int
}

// Result is the transient output of one analysis call. Optional blocks are
// nil when their required columns are missing; only Metrics is always
// populated for a non-empty result.
type Result struct {
	Metrics map[string]MetricStats
	// CategoryInsights maps a category column to per-value revenue
	// performance for its most frequent values (sales role).
	CategoryInsights    map[string]map[string]CategoryPerformance
	Profitability       *Profitability
	CashFlow            *CashFlow
	MarketingMetrics    *MarketingMetrics
	CampaignPerformance map[string]CampaignStats
	MarketPenetration   map[string]PenetrationStats
	RegionalInsights    map[string]RegionStats
	SeasonalPatterns    map[time.Month]float64
}

// Empty reports whether the analysis produced nothing, which happens when
// the mapping names no metric columns present in the dataset.
func (r Result) Empty() bool {
	return len(r.Metrics) == 0
}

// Primary returns the stats for the headline metric: revenue when mapped,
// otherwise the first analyzed metric in mapping order.
func (r Result) Primary(mapping models.MappingConfig) (string, MetricStats, bool) {
	if stats, ok := r.Metrics[colRevenue]; ok {
		return colRevenue, stats, true
	}
	for _, name := range mapping.MetricColumns {
		if stats, ok := r.Metrics[name]; ok {
			return name, stats, true
		}
	}
	return "", MetricStats{}, false
}

// Analyze computes the full analysis for one dataset, mapping, and role.
// Missing optional columns never fail the analysis; the corresponding block
// is simply absent from the result.
func Analyze(ds dataset.Dataset, mapping models.MappingConfig, role models.Role) Result {
	res := Result{}

	dateCol := mapping.DateColumn
	if dateCol == "" && len(ds.Columns) > 0 {
		dateCol = ds.Columns[0]
	}

	sorted := ds.SortedByDate(dateCol)

	for _, metric := range mapping.MetricColumns {
		if !ds.HasColumn(metric) {
			continue
		}
		if res.Metrics == nil {
			res.Metrics = make(map[string]MetricStats)
		}
		res.Metrics[metric] = metricStats(ds, sorted, metric)
	}
	if res.Empty() {
		return Result{}
	}

	switch role {
	case models.RoleSales:
		res.CategoryInsights = categoryInsights(ds, mapping.CategoryColumns)
	case models.RoleFinance:
		res.Profitability, res.CashFlow = financeInsights(ds, sorted)
	case models.RoleMarketing:
		res.MarketingMetrics = marketingMetrics(ds)
		res.CampaignPerformance = campaignPerformance(ds)
		res.MarketPenetration = marketPenetration(ds)
	}

	res.RegionalInsights = regionalInsights(ds)
	res.SeasonalPatterns = seasonalPatterns(ds, sorted, dateCol, mapping.MetricColumns)

	return res
}

func metricStats(ds dataset.Dataset, sorted []dataset.Row, metric string) MetricStats {
	var all []float64
	for _, row := range ds.Rows {
		if v, ok := row.Float(metric); ok {
			all = append(all, v)
		}
	}

	stats := MetricStats{TrendDirection: TrendStable}
	if len(all) == 0 {
		return stats
	}

	stats.Mean = mean(all)
	stats.Min, stats.Max = all[0], all[0]
	for _, v := range all {
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
	}
	stats.StdDev = stddev(all, stats.Mean)

	var series []float64
	for _, row := range sorted {
		if v, ok := row.Float(metric); ok {
			series = append(series, v)
		}
	}

	recent := series
	if len(recent) > recentWindowSize {
		recent = recent[len(recent)-recentWindowSize:]
	}
	stats.RecentValues = append([]float64(nil), recent...)

	if len(recent) >= 2 {
		delta := recent[len(recent)-1] - recent[0]
		if delta > 0 {
			stats.TrendDirection = TrendIncreasing
		} else {
			stats.TrendDirection = TrendDecreasing
		}
		if stats.Mean > 0 {
			stats.TrendStrength = math.Abs(delta) / stats.Mean
		}
	}

	if len(series) >= 2 && series[0] > 0 {
		stats.GrowthRate = (series[len(series)-1] - series[0]) / series[0] * 100
	}

	return stats
}

// categoryInsights takes the top most frequent values per category column
// and, when a revenue column exists, aggregates revenue for each.
func categoryInsights(ds dataset.Dataset, categoryColumns []string) map[string]map[string]CategoryPerformance {
	insights := make(map[string]map[string]CategoryPerformance)
	hasRevenue := ds.HasColumn(colRevenue)

	for _, category := range categoryColumns {
		if !ds.HasColumn(category) {
			continue
		}

		counts := make(map[string]int)
		revenue := make(map[string]float64)
		for _, row := range ds.Rows {
			val := row[category]
			if val == "" {
				continue
			}
			counts[val]++
			if v, ok := row.Float(colRevenue); ok {
				revenue[val] += v
			}
		}

		perf := make(map[string]CategoryPerformance)
		if hasRevenue {
			for _, val := range topByCount(counts, topCategoryLimit) {
				n := counts[val]
				total := revenue[val]
				perf[val] = CategoryPerformance{
					Count:        n,
					TotalRevenue: total,
					AvgRevenue:   total / float64(n),
				}
			}
		}
		insights[category] = perf
	}

	if len(insights) == 0 {
		return nil
	}
	return insights
}

func financeInsights(ds dataset.Dataset, sorted []dataset.Row) (*Profitability, *CashFlow) {
	if !ds.HasColumn(colRevenue) || !ds.HasColumn(colOrders) {
		return nil, nil
	}

	margins := make([]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		rev, okR := row.Float(colRevenue)
		ord, okO := row.Float(colOrders)
		if okR && okO && ord != 0 {
			margins[i] = rev / ord
		}
	}

	prof := &Profitability{AvgProfitMargin: mean(margins), ProfitTrend: TrendDecreasing}
	if margins[len(margins)-1] > margins[0] {
		prof.ProfitTrend = TrendIncreasing
	}

	var cash *CashFlow
	if len(sorted) >= 2 {
		var revs []float64
		for _, row := range ds.Rows {
			if v, ok := row.Float(colRevenue); ok {
				revs = append(revs, v)
			}
		}
		var sortedRevs []float64
		for _, row := range sorted {
			if v, ok := row.Float(colRevenue); ok {
				sortedRevs = append(sortedRevs, v)
			}
		}
		if len(sortedRevs) >= 2 {
			var diffSum float64
			for i := 1; i < len(sortedRevs); i++ {
				diffSum += sortedRevs[i] - sortedRevs[i-1]
			}
			change := diffSum / float64(len(sortedRevs)-1)
			stability := "volatile"
			if math.Abs(change) < mean(revs)*cashFlowStableRatio {
				stability = "stable"
			}
			cash = &CashFlow{AvgDailyRevenueChange: change, Stability: stability}
		}
	}

	return prof, cash
}

func marketingMetrics(ds dataset.Dataset) *MarketingMetrics {
	if !ds.HasColumn(colCustomers) || !ds.HasColumn(colRevenue) {
		return nil
	}

	var cacSum, revSum, custSum, orderSum float64
	n := 0
	for _, row := range ds.Rows {
		rev, okR := row.Float(colRevenue)
		cust, okC := row.Float(colCustomers)
		if okR {
			revSum += rev
		}
		if okC {
			custSum += cust
		}
		if v, ok := row.Float(colOrders); ok {
			orderSum += v
		}
		if okR && okC && cust != 0 {
			cacSum += rev / cust
		}
		n++
	}
	if n == 0 {
		return nil
	}

	m := &MarketingMetrics{AvgAcquisitionCost: cacSum / float64(n)}
	if custSum > 0 {
		m.LifetimeValue = revSum / custSum
		if ds.HasColumn(colOrders) {
			m.ConversionRate = orderSum / custSum * 100
		}
	}
	return m
}

func campaignPerformance(ds dataset.Dataset) map[string]CampaignStats {
	if !ds.HasColumn(colProductCategory) || !ds.HasColumn(colRevenue) {
		return nil
	}

	hasCustomers := ds.HasColumn(colCustomers)
	stats := make(map[string]CampaignStats)
	for _, row := range ds.Rows {
		cat := row[colProductCategory]
		if cat == "" {
			continue
		}
		s := stats[cat]
		s.Count++
		if v, ok := row.Float(colRevenue); ok {
			s.RevenueSum += v
		}
		if hasCustomers {
			if v, ok := row.Float(colCustomers); ok {
				s.Customers += v
			}
		} else {
			s.Customers++
		}
		stats[cat] = s
	}
	for cat, s := range stats {
		s.RevenueMean = s.RevenueSum / float64(s.Count)
		stats[cat] = s
	}
	if len(stats) == 0 {
		return nil
	}
	return stats
}

func marketPenetration(ds dataset.Dataset) map[string]PenetrationStats {
	if !ds.HasColumn(colRegion) || !ds.HasColumn(colRevenue) {
		return nil
	}

	hasCustomers := ds.HasColumn(colCustomers)
	stats := make(map[string]PenetrationStats)
	for _, row := range ds.Rows {
		region := row[colRegion]
		if region == "" {
			continue
		}
		s := stats[region]
		if v, ok := row.Float(colRevenue); ok {
			s.Revenue += v
		}
		if hasCustomers {
			if v, ok := row.Float(colCustomers); ok {
				s.Customers += v
			}
		} else {
			s.Customers++
		}
		stats[region] = s
	}
	if len(stats) == 0 {
		return nil
	}
	return stats
}

func regionalInsights(ds dataset.Dataset) map[string]RegionStats {
	if !ds.HasColumn(colRegion) || !ds.HasColumn(colRevenue) {
		return nil
	}

	stats := make(map[string]RegionStats)
	for _, row := range ds.Rows {
		region := row[colRegion]
		if region == "" {
			continue
		}
		s := stats[region]
		s.Count++
		if v, ok := row.Float(colRevenue); ok {
			s.RevenueSum += v
		}
		stats[region] = s
	}
	for region, s := range stats {
		s.RevenueMean = s.RevenueSum / float64(s.Count)
		stats[region] = s
	}
	if len(stats) == 0 {
		return nil
	}
	return stats
}

// seasonalPatterns averages the primary metric (revenue when present, else
// the first metric column) per calendar month. Requires every row's date
// cell to parse; otherwise the block is absent.
func seasonalPatterns(ds dataset.Dataset, sorted []dataset.Row, dateCol string, metricColumns []string) map[time.Month]float64 {
	if !ds.HasColumn(dateCol) {
		return nil
	}

	metric := colRevenue
	if !ds.HasColumn(metric) {
		if len(metricColumns) == 0 {
			return nil
		}
		metric = metricColumns[0]
		if !ds.HasColumn(metric) {
			return nil
		}
	}

	sums := make(map[time.Month]float64)
	counts := make(map[time.Month]int)
	for _, row := range sorted {
		t, ok := row.Time(dateCol)
		if !ok {
			return nil
		}
		if v, ok := row.Float(metric); ok {
			sums[t.Month()] += v
			counts[t.Month()]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	patterns := make(map[time.Month]float64, len(counts))
	for month, n := range counts {
		patterns[month] = sums[month] / float64(n)
	}
	return patterns
}

func topByCount(counts map[string]int, limit int) []string {
	vals := make([]string, 0, len(counts))
	for v := range counts {
		vals = append(vals, v)
	}
	sort.Slice(vals, func(a, b int) bool {
		if counts[vals[a]] != counts[vals[b]] {
			return counts[vals[a]] > counts[vals[b]]
		}
		return vals[a] < vals[b]
	})
	if len(vals) > limit {
		vals = vals[:limit]
	}
	return vals
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func stddev(vals []float64, mean float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var sq float64
	for _, v := range vals {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(vals)-1))
}
