package insights

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/profitpulse/profitpulse/internal/dashboard"
	"github.com/profitpulse/profitpulse/internal/menu"
	"github.com/profitpulse/profitpulse/internal/staff"
)

var moneyPrinter = message.NewPrinter(language.English)

// money renders a dollar amount with thousands separators, e.g. $1,234.50.
func money(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}

// percent trims trailing zeros so 35.0 renders as 35 and 35.5 stays 35.5.
func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// signedPercent renders an explicit sign and drops it entirely at zero.
func signedPercent(v float64) string {
	if v == 0 {
		return "0"
	}
	if v > 0 {
		return "+" + percent(v)
	}
	return percent(v)
}

// buildInsightContext assembles the grounding data block embedded in the
// insight prompt. Figures are passed through as reported, not re-checked.
func buildInsightContext(dash dashboard.Report, perf menu.PerformanceReport, costs staff.CostReport) string {
	var b strings.Builder

	b.WriteString("=== DASHBOARD METRICS (This Week) ===\n")
	fmt.Fprintf(&b, "Week Revenue: %s\n", money(dash.Metrics.WeekRevenue))
	fmt.Fprintf(&b, "Month Revenue: %s\n", money(dash.Metrics.MonthRevenue))
	fmt.Fprintf(&b, "Food Cost: %s%%\n", percent(dash.Metrics.FoodCostPercent))
	fmt.Fprintf(&b, "Labour Cost: %s%%\n", percent(dash.Metrics.LabourCostPercent))
	fmt.Fprintf(&b, "Net Profit Margin: %s%%\n", percent(dash.Metrics.NetProfitMargin))
	fmt.Fprintf(&b, "Avg Transaction: %s\n", money(dash.Metrics.AvgTransactionValue))
	fmt.Fprintf(&b, "Revenue vs Last Week: %s%%\n", signedPercent(dash.Trends.RevenueVsLastWeek))

	b.WriteString("\n=== MENU PERFORMANCE (7 Days) ===\n")
	fmt.Fprintf(&b, "Total Menu Revenue: %s\n", money(perf.TotalRevenue))
	fmt.Fprintf(&b, "Average Margin: %s%%\n", percent(perf.AverageMargin))
	fmt.Fprintf(&b, "Best Performer: %s\n", perf.BestPerformer)
	fmt.Fprintf(&b, "Worst Margin Item: %s\n", perf.WorstMargin)
	b.WriteString("Top 5 Items by Revenue:\n")
	for i, item := range perf.Items {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "  - %s: %s revenue, %s%% margin, %d sold\n",
			item.Name, money(item.Revenue), percent(item.MarginPercent), item.TotalSold)
	}
	b.WriteString("Bottom 3 Items by Margin:\n")
	for _, item := range bottomByMargin(perf.Items, 3) {
		fmt.Fprintf(&b, "  - %s: %s%% margin, %s revenue\n",
			item.Name, percent(item.MarginPercent), money(item.Revenue))
	}

	b.WriteString("\n=== STAFF COSTS (7 Days) ===\n")
	fmt.Fprintf(&b, "Total Labour Cost: %s\n", money(costs.TotalLabourCost))
	fmt.Fprintf(&b, "Labour Cost %%: %s%%\n", percent(costs.LabourCostPercent))
	fmt.Fprintf(&b, "Total Overtime Hours: %sh\n", percent(costs.TotalOvertimeHours))
	b.WriteString("Staff with Overtime:\n")
	for _, m := range costs.Staff {
		if !m.HasOvertime {
			continue
		}
		fmt.Fprintf(&b, "  - %s (%s): %sh overtime\n", m.Name, m.Role, percent(m.OvertimeHours))
	}

	b.WriteString("\n=== ALERTS ===\n")
	for _, a := range dash.Alerts {
		fmt.Fprintf(&b, "  - [%s] %s\n", a.Severity, a.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// buildBriefContext is the condensed variant used for the weekly brief.
func buildBriefContext(dash dashboard.Report, perf menu.PerformanceReport, costs staff.CostReport) string {
	worstMargin := 0.0
	for _, item := range perf.Items {
		if item.Name == perf.WorstMargin {
			worstMargin = item.MarginPercent
			break
		}
	}
	alerts := make([]string, 0, len(dash.Alerts))
	for _, a := range dash.Alerts {
		alerts = append(alerts, a.Message)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Week Revenue: %s\n", money(dash.Metrics.WeekRevenue))
	fmt.Fprintf(&b, "Food Cost: %s%%\n", percent(dash.Metrics.FoodCostPercent))
	fmt.Fprintf(&b, "Labour Cost: %s%%\n", percent(dash.Metrics.LabourCostPercent))
	fmt.Fprintf(&b, "Net Margin: %s%%\n", percent(dash.Metrics.NetProfitMargin))
	fmt.Fprintf(&b, "Revenue vs Last Week: %s%%\n", signedPercent(dash.Trends.RevenueVsLastWeek))
	fmt.Fprintf(&b, "Customer Trend: %s%%\n", signedPercent(dash.Trends.CustomersVsLastWeek))
	fmt.Fprintf(&b, "Best Menu Item: %s\n", perf.BestPerformer)
	fmt.Fprintf(&b, "Worst Margin: %s (%s%%)\n", perf.WorstMargin, percent(worstMargin))
	fmt.Fprintf(&b, "Overtime Hours: %sh\n", percent(costs.TotalOvertimeHours))
	fmt.Fprintf(&b, "Alerts: %s", strings.Join(alerts, "; "))
	return b.String()
}

// bottomByMargin returns up to n sold items with the lowest margins.
func bottomByMargin(items []menu.ItemPerformance, n int) []menu.ItemPerformance {
	sold := make([]menu.ItemPerformance, 0, len(items))
	for _, item := range items {
		if item.TotalSold > 0 {
			sold = append(sold, item)
		}
	}
	sort.SliceStable(sold, func(i, j int) bool {
		return sold[i].MarginPercent < sold[j].MarginPercent
	})
	if len(sold) > n {
		sold = sold[:n]
	}
	return sold
}
