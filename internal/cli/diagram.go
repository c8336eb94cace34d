package cli

import (
	"strings"

	"options-analyzer/internal/models"
)

const (
	diagramRows = 13
	diagramCols = 61
)

// renderPayoffDiagram plots a payoff curve as an ASCII chart with a zero
// axis, profit above and loss below.
func renderPayoffDiagram(output *Output, curve []models.ProfitLossPoint) {
	if len(curve) < 2 {
		return
	}

	minPL, maxPL := curve[0].ProfitLoss, curve[0].ProfitLoss
	for _, p := range curve {
		if p.ProfitLoss < minPL {
			minPL = p.ProfitLoss
		}
		if p.ProfitLoss > maxPL {
			maxPL = p.ProfitLoss
		}
	}
	// Keep the zero axis on the chart even for all-profit or all-loss curves.
	if minPL > 0 {
		minPL = 0
	}
	if maxPL < 0 {
		maxPL = 0
	}
	span := maxPL - minPL
	if span == 0 {
		span = 1
	}

	grid := make([][]rune, diagramRows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", diagramCols))
	}

	rowFor := func(v float64) int {
		r := int((maxPL - v) / span * float64(diagramRows-1))
		if r < 0 {
			r = 0
		}
		if r >= diagramRows {
			r = diagramRows - 1
		}
		return r
	}

	zeroRow := rowFor(0)
	for c := 0; c < diagramCols; c++ {
		grid[zeroRow][c] = '─'
	}

	for c := 0; c < diagramCols; c++ {
		idx := c * (len(curve) - 1) / (diagramCols - 1)
		r := rowFor(curve[idx].ProfitLoss)
		if r == zeroRow {
			grid[r][c] = '┼'
		} else {
			grid[r][c] = '●'
		}
	}

	for r, row := range grid {
		label := strings.Repeat(" ", 12)
		switch r {
		case 0:
			label = padLabel(FormatPnL(maxPL))
		case zeroRow:
			label = padLabel("0")
		case diagramRows - 1:
			label = padLabel(FormatPnL(minPL))
		}
		output.Printf("  %s │%s\n", label, string(row))
	}

	low := FormatPrice(curve[0].StockPrice)
	mid := FormatPrice(curve[len(curve)/2].StockPrice)
	high := FormatPrice(curve[len(curve)-1].StockPrice)
	output.Printf("  %s └%s\n", strings.Repeat(" ", 12), strings.Repeat("─", diagramCols))
	output.Printf("  %s  %-*s%s%*s\n",
		strings.Repeat(" ", 12),
		diagramCols/2-len(mid)/2, low, mid, diagramCols/2-len(mid)+len(mid)/2, high)
}

func padLabel(s string) string {
	if len(s) >= 12 {
		return s[:12]
	}
	return strings.Repeat(" ", 12-len(s)) + s
}
