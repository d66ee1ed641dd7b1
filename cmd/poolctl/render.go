package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"poolpro/internal/domain/display"
	"poolpro/internal/domain/entities"
	"poolpro/internal/domain/query"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tabStyle    = lipgloss.NewStyle().Faint(true)
	activeTab   = lipgloss.NewStyle().Bold(true).Underline(true)
)

func customerStatus(c entities.Customer) entities.CustomerStatus { return c.Status }

// renderCustomers draws the status tabs with their counts over the
// filtered customer table. Counts are taken before filtering.
func renderCustomers(customers []entities.Customer, term, status string) string {
	if status == "" {
		status = query.All
	}
	counts := query.CountByStatus(customers, entities.CustomerStatuses(), customerStatus)
	filtered := query.Filter(customers, term, status, query.CustomerFields, customerStatus)

	tabs := []string{tab(query.All, "All", counts[query.All], status)}
	for _, s := range entities.CustomerStatuses() {
		tabs = append(tabs, tab(string(s), display.CustomerBadge(s).Label, counts[string(s)], status))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "EMAIL", "SERVICE DAY", "POOLS", "BALANCE", "STATUS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, c := range filtered {
		t.Row(
			c.Name,
			c.Email,
			string(c.ServiceDay),
			fmt.Sprint(len(c.Pools)),
			display.Balance(c.AccountBalance),
			display.CustomerBadge(c.Status).Render(),
		)
	}

	var b strings.Builder
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n")
	if len(filtered) == 0 {
		b.WriteString("No customers match.")
		return b.String()
	}
	b.WriteString(t.Render())
	return b.String()
}

func tab(key, label string, n int, selected string) string {
	s := fmt.Sprintf("%s (%d)", label, n)
	if key == selected {
		return activeTab.Render(s)
	}
	return tabStyle.Render(s)
}
