package llm

import (
	"fmt"
	"sort"
	"strings"
	"time"

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

// BuildContext renders an analysis result as newline-joined summary lines
// for the generative prompt, one line per present insight category, in a
// fixed priority order: headline metrics first, then the role-specific
// blocks, then regional and seasonal patterns.
func BuildContext(res analyzer.Result, role models.Role) string {
	var lines []string

	if rev, ok := res.Metrics["revenue"]; ok {
		lines = append(lines, printer.Sprintf(
			"Revenue Analysis: Average $%.2f, Growth Rate: %.1f%%, Trend: %s",
			rev.Mean, rev.GrowthRate, string(rev.TrendDirection)))
	}
	if ord, ok := res.Metrics["orders"]; ok {
		lines = append(lines, fmt.Sprintf(
			"Order Analysis: Average %.0f orders, Trend: %s, Growth: %.1f%%",
			ord.Mean, ord.TrendDirection, ord.GrowthRate))
	}
	if cust, ok := res.Metrics["customers"]; ok {
		lines = append(lines, fmt.Sprintf(
			"Customer Analysis: Average %.0f customers, Trend: %s",
			cust.Mean, cust.TrendDirection))
	}

	switch role {
	case models.RoleSales:
		var categories []string
		for cat := range res.CategoryInsights {
			categories = append(categories, cat)
		}
		sort.Strings(categories)
		for _, cat := range categories {
			lines = append(lines, fmt.Sprintf("%s Performance: %d categories analyzed",
				titler.String(cat), len(res.CategoryInsights[cat])))
		}
	case models.RoleFinance:
		if p := res.Profitability; p != nil {
			lines = append(lines, fmt.Sprintf("Profitability: Average margin %.2f, Trend: %s",
				p.AvgProfitMargin, p.ProfitTrend))
		}
		if c := res.CashFlow; c != nil {
			lines = append(lines, fmt.Sprintf("Cash Flow: Daily change $%.2f, Stability: %s",
				c.AvgDailyRevenueChange, c.Stability))
		}
	case models.RoleMarketing:
		if m := res.MarketingMetrics; m != nil {
			lines = append(lines, fmt.Sprintf(
				"Marketing Metrics: Average Customer Acquisition Cost $%.2f, Conversion Rate %.1f%%",
				m.AvgAcquisitionCost, m.ConversionRate))
		}
		if len(res.CampaignPerformance) > 0 {
			lines = append(lines, fmt.Sprintf("Campaign Performance: %d product categories analyzed",
				len(res.CampaignPerformance)))
		}
		if len(res.MarketPenetration) > 0 {
			lines = append(lines, fmt.Sprintf("Market Penetration: %d regions analyzed",
				len(res.MarketPenetration)))
		}
	}

	if len(res.RegionalInsights) > 0 {
		lines = append(lines, fmt.Sprintf("Regional Analysis: %d regions with performance data",
			len(res.RegionalInsights)))
	}

	if len(res.SeasonalPatterns) > 0 {
		best, worst := extremeMonths(res.SeasonalPatterns)
		lines = append(lines, fmt.Sprintf("Seasonal Patterns: Best performance in %s, lowest in %s", best, worst))
	}

	return strings.Join(lines, "\n")
}

func extremeMonths(patterns map[time.Month]float64) (best, worst time.Month) {
	first := true
	for month := time.January; month <= time.December; month++ {
		v, ok := patterns[month]
		if !ok {
			continue
		}
		if first || v > patterns[best] {
			best = month
		}
		if first || v < patterns[worst] {
			worst = month
		}
		first = false
	}
	return best, worst
}
