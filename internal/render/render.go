// Package render draws Punnett squares and distributions for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"punnettlab/internal/genetics"
)

const cellWidth = 9

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Width(cellWidth).Align(lipgloss.Center)
	cellStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Width(cellWidth).Align(lipgloss.Center)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Square draws the grid with parent 1 gametes across the top and parent 2 gametes
// down the side. Each cell shows the genotype and its phenotype.
func Square(square genetics.PunnettSquare, trait genetics.TraitConfig) string {
	accent := cellStyle
	if trait.Color != "" {
		accent = accent.BorderForeground(lipgloss.Color(trait.Color))
	}

	header := []string{headerStyle.Render("")}
	for _, gamete := range square.P1Gametes {
		header = append(header, headerStyle.Render("♂ "+gamete))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Bottom, header...)}

	for r, gamete := range square.P2Gametes {
		row := []string{headerStyle.Height(3).AlignVertical(lipgloss.Center).Render("♀ " + gamete)}
		for _, genotype := range square.Grid[r] {
			row = append(row, accent.Render(genotype+"\n"+genetics.PhenotypeOf(genotype, trait)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, row...))
	}

	title := titleStyle.Render(fmt.Sprintf("%s: %s x %s", trait.Name, joinGametes(square.P1Gametes), joinGametes(square.P2Gametes)))
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, rows...)...)
}

// Stats draws both distributions as aligned label, count and percent columns.
func Stats(stats genetics.Stats) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		distribution("Genotypes", stats.Genotypes),
		"",
		distribution("Phenotypes", stats.Phenotypes),
	)
}

func distribution(title string, dist genetics.Distribution) string {
	labelWidth := 0
	for _, e := range dist {
		if w := lipgloss.Width(e.Label); w > labelWidth {
			labelWidth = w
		}
	}
	label := lipgloss.NewStyle().Width(labelWidth + 2)

	lines := []string{titleStyle.Render(fmt.Sprintf("%s (%s)", title, dist.Ratio()))}
	for _, e := range dist {
		lines = append(lines, fmt.Sprintf("%s%d  %6.2f%%", label.Render(e.Label), e.Count, e.Percent))
	}
	return strings.Join(lines, "\n")
}

func joinGametes(g [genetics.Ploidy]string) string {
	return strings.Join(g[:], "")
}
