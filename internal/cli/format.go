package cli

import (
	"fmt"
	"strings"

	"options-analyzer/internal/models"
)

// FormatCurrency formats a dollar amount with thousands separators.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := addThousandsSeparators(parts[0])

	result := "$" + intPart + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

func addThousandsSeparators(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPnL formats P&L with an explicit sign.
func FormatPnL(pnl float64) string {
	formatted := FormatCurrency(pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatMoney formats a possibly-unbounded amount.
func FormatMoney(m models.Money) string {
	if m.Unbounded {
		return "Unlimited"
	}
	return FormatCurrency(m.Value)
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatProbability formats a probability in [0, 1] as a percentage.
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// FormatPrice formats a stock price.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

// FormatBreakEvens formats a break-even list.
func FormatBreakEvens(points []float64) string {
	if len(points) == 0 {
		return "-"
	}
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = FormatPrice(p)
	}
	return strings.Join(parts, ", ")
}

// FormatIV formats implied volatility.
func FormatIV(iv float64) string {
	return fmt.Sprintf("%.2f%%", iv*100)
}
