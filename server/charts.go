package server

import (
	"strings"

	archive "github.com/zuumi/trading-archive-analyze"
)

// PieSlice is one share of the holdings distribution chart, valued at
// the average purchase price.
type PieSlice struct {
	Label string        `json:"label"`
	Value archive.Money `json:"value"`
}

// ScatterPoint is one trade of the price/quantity scatter chart.
type ScatterPoint struct {
	Pair     string           `json:"pair"`
	Quantity archive.Quantity `json:"quantity"`
	Price    archive.Money    `json:"price"`
	Amount   archive.Money    `json:"amount"`
}

// pieSlices values each pair's holdings at its average purchase price.
// Pairs with nothing left are omitted so the chart never shows empty
// slices.
func pieSlices(report *archive.Report) []PieSlice {
	var slices []PieSlice
	for _, s := range report.Summaries() {
		value := s.AveragePurchasePrice.Mul(s.CurrentHoldings)
		if value.IsPositive() {
			slices = append(slices, PieSlice{Label: strings.ToUpper(s.Pair), Value: value.Round()})
		}
	}
	return slices
}

func scatterPoints(trades []archive.Trade) []ScatterPoint {
	points := make([]ScatterPoint, 0, len(trades))
	for _, t := range trades {
		points = append(points, ScatterPoint{
			Pair:     t.Pair,
			Quantity: t.Quantity,
			Price:    t.Price,
			Amount:   t.Amount().Round(),
		})
	}
	return points
}
