// Package composer assembles role-specific narrative text from an analysis
// result without any generative backend. Output is deterministic: the same
// result and report number always produce the same text, which is what makes
// the fallback path testable.
package composer

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jmilbury/agentpress/internal/analyzer"
	"github.com/jmilbury/agentpress/internal/models"
)

var (
	titler  = cases.Title(language.English)
	printer = message.NewPrinter(language.English)
)

// Compose builds the article body for one report. Fragments whose analysis
// block is absent are skipped; the remaining fragments are joined with a
// single space. The report number is part of the contract so a future
// template can vary by index, but the current fragments do not use it.
func Compose(role models.Role, res analyzer.Result, reportNumber int) string {
	_ = reportNumber
	switch role {
	case models.RoleFinance:
		return finance(res)
	case models.RoleSales:
		return sales(res)
	case models.RoleMarketing:
		return marketing(res)
	default:
		return generic(res)
	}
}

func finance(res analyzer.Result) string {
	var parts []string

	if rev, ok := res.Metrics["revenue"]; ok {
		parts = append(parts, fmt.Sprintf(
			"Executive Summary: Financial performance shows %s trend with %.1f%% overall growth.",
			rev.TrendDirection, rev.GrowthRate))
	}

	if line := metricsLine("Key Financial Metrics", res, true); line != "" {
		parts = append(parts, line)
	}

	if res.Profitability != nil {
		parts = append(parts, fmt.Sprintf(
			"Profitability Analysis: Average profit margin is %.2f with %s trend.",
			res.Profitability.AvgProfitMargin, res.Profitability.ProfitTrend))
	}

	if rev, ok := res.Metrics["revenue"]; ok && rev.GrowthRate > 0 {
		parts = append(parts, "Strategic Insight: Positive revenue growth indicates strong market position. Consider reinvesting profits in growth initiatives.")
	} else {
		parts = append(parts, "Strategic Insight: Revenue challenges detected. Focus on cost optimization and revenue diversification strategies.")
	}

	parts = append(parts, "Recommendations: 1) Monitor cash flow trends closely, 2) Analyze seasonal patterns for budget planning, 3) Review pricing strategies based on profit margins.")
	return strings.Join(parts, " ")
}

func sales(res analyzer.Result) string {
	var parts []string

	if rev, ok := res.Metrics["revenue"]; ok {
		parts = append(parts, fmt.Sprintf(
			"Sales Performance Overview: Revenue shows %s trend with %.1f%% growth.",
			rev.TrendDirection, rev.GrowthRate))
	}

	if cust, ok := res.Metrics["customers"]; ok {
		parts = append(parts, fmt.Sprintf(
			"Customer Insights: Average %.0f customers with %s trend.",
			cust.Mean, cust.TrendDirection))
	}

	for _, category := range sortedKeys(res.CategoryInsights) {
		parts = append(parts, fmt.Sprintf(
			"Product Performance: %s shows %s as top performer.",
			titler.String(category), topCategory(res.CategoryInsights[category])))
	}

	if len(res.RegionalInsights) > 0 {
		parts = append(parts, fmt.Sprintf(
			"Regional Performance: %d regions analyzed for sales optimization opportunities.",
			len(res.RegionalInsights)))
	}

	if rev, ok := res.Metrics["revenue"]; ok && rev.TrendDirection == analyzer.TrendIncreasing {
		parts = append(parts, "Sales Strategy: Strong upward trend suggests effective sales strategies. Focus on scaling successful approaches.")
	} else {
		parts = append(parts, "Sales Strategy: Identify and address sales bottlenecks. Consider new market segments and product offerings.")
	}

	parts = append(parts, "Recommendations: 1) Leverage top-performing categories, 2) Optimize regional sales strategies, 3) Enhance customer acquisition campaigns.")
	return strings.Join(parts, " ")
}

func marketing(res analyzer.Result) string {
	var parts []string

	if rev, ok := res.Metrics["revenue"]; ok {
		parts = append(parts, fmt.Sprintf(
			"Marketing Performance Overview: Revenue shows %s trend with %.1f%% growth.",
			rev.TrendDirection, rev.GrowthRate))
	}

	if m := res.MarketingMetrics; m != nil {
		parts = append(parts, fmt.Sprintf(
			"Customer Acquisition: Average Customer Acquisition Cost $%.2f, Conversion Rate %.1f%%.",
			m.AvgAcquisitionCost, m.ConversionRate))
	}

	if len(res.CampaignPerformance) > 0 {
		var lines []string
		for _, cat := range sortedKeys(res.CampaignPerformance) {
			s := res.CampaignPerformance[cat]
			lines = append(lines, fmt.Sprintf(
				"Campaign Performance for %s: Revenue $%.2f, Avg Revenue $%.2f, Count %d",
				titler.String(cat), s.RevenueSum, s.RevenueMean, s.Count))
		}
		parts = append(parts, "Campaign Performance: "+strings.Join(lines, "; ")+".")
	}

	if len(res.MarketPenetration) > 0 {
		var lines []string
		for _, region := range sortedKeys(res.MarketPenetration) {
			s := res.MarketPenetration[region]
			lines = append(lines, fmt.Sprintf(
				"Market Penetration for %s: Customers %.0f, Revenue $%.2f",
				titler.String(region), s.Customers, s.Revenue))
		}
		parts = append(parts, "Market Penetration: "+strings.Join(lines, "; ")+".")
	}

	parts = append(parts, "Recommendations: 1) Optimize customer acquisition channels for lower costs, 2) Focus on high-ROI campaigns, 3) Expand market penetration in regions with potential.")
	return strings.Join(parts, " ")
}

func generic(res analyzer.Result) string {
	var parts []string

	if rev, ok := res.Metrics["revenue"]; ok {
		parts = append(parts, fmt.Sprintf(
			"Business Performance: Revenue shows %s trend with %.1f%% growth.",
			rev.TrendDirection, rev.GrowthRate))
	}

	if line := metricsLine("Key Business Metrics", res, false); line != "" {
		parts = append(parts, line)
	}

	if len(res.SeasonalPatterns) > 0 {
		parts = append(parts, "Market Insights: Seasonal patterns identified for strategic planning and resource allocation.")
	}

	if rev, ok := res.Metrics["revenue"]; ok && rev.GrowthRate > 0 {
		parts = append(parts, "Strategic Analysis: Positive business momentum indicates effective strategies. Focus on scaling and optimization.")
	} else {
		parts = append(parts, "Strategic Analysis: Business challenges detected. Focus on operational efficiency and market expansion.")
	}

	parts = append(parts, "Strategic Recommendations: 1) Optimize operational processes, 2) Leverage data insights for decision making, 3) Focus on growth opportunities.")
	return strings.Join(parts, " ")
}

// metricsLine summarizes every analyzed metric as "<Name>: <mean> (trend:
// <direction>)" clauses, metric names sorted for stable output.
func metricsLine(label string, res analyzer.Result, dollar bool) string {
	if len(res.Metrics) == 0 {
		return ""
	}
	var clauses []string
	for _, name := range sortedKeys(res.Metrics) {
		stats := res.Metrics[name]
		if dollar {
			clauses = append(clauses, printer.Sprintf("%s: $%.2f (trend: %s)",
				titler.String(name), stats.Mean, string(stats.TrendDirection)))
		} else {
			clauses = append(clauses, fmt.Sprintf("%s: %.2f (trend: %s)",
				titler.String(name), stats.Mean, stats.TrendDirection))
		}
	}
	return label + ": " + strings.Join(clauses, "; ") + "."
}

// topCategory picks the category value with the highest total revenue.
func topCategory(perf map[string]analyzer.CategoryPerformance) string {
	top, best := "N/A", -1.0
	for _, val := range sortedKeys(perf) {
		if perf[val].TotalRevenue > best {
			top, best = val, perf[val].TotalRevenue
		}
	}
	return top
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
