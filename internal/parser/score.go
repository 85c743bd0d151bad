package parser

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finlens/statement-parser/internal/models"
)

// Per-field confidence weights. Additive and independent — a row score is
// always the sum of the subset of weights whose checks hold.
const (
	dateWeight        = 0.5
	amountWeight      = 0.4
	descriptionWeight = 0.1

	identityWeight = 0.5
	stmtDateWeight = 0.1
	balanceWeight  = 0.2

	reconcileBonus     = 0.1
	reconcileTolerance = "0.01"
)

// scoreTransaction checks each field's validity independently.
func scoreTransaction(t models.Transaction) float64 {
	score := 0.0
	if isoDateExact.MatchString(t.Date) {
		score += dateWeight
	}
	if _, err := decimal.NewFromString(t.Amount); err == nil {
		score += amountWeight
	}
	if len(strings.Fields(t.Description)) >= 3 {
		score += descriptionWeight
	}
	return score
}

// scoreHeader shares one identity check across the three account fields;
// the statement date and each balance score separately.
func scoreHeader(h models.StatementHeader) float64 {
	score := 0.0
	if h.Bank != models.UnknownField || h.BankAccount != models.UnknownField ||
		h.CustomerAccount != models.UnknownField {
		score += identityWeight
	}
	if h.StatementDate != models.UnknownField {
		score += stmtDateWeight
	}
	if h.OpeningBalance != models.ZeroBalance {
		score += balanceWeight
	}
	if h.ClosingBalance != models.ZeroBalance {
		score += balanceWeight
	}
	return score
}

// scoreStatement freezes the per-row scores, averages them into the
// document score (the header counts once, weighted like any transaction),
// adds the reconciliation bonus when the balance equation closes, and
// rounds to five decimal places. The averaged set always contains at
// least the header score, so the divisor is never zero.
func (e *Engine) scoreStatement(header models.StatementHeader, txns []models.Transaction) *models.ParsedStatement {
	header.RowScore = scoreHeader(header)

	sum := header.RowScore
	for i := range txns {
		txns[i].RowScore = scoreTransaction(txns[i])
		sum += txns[i].RowScore
	}
	score := sum / float64(len(txns)+1)

	if reconciles(header, txns) {
		score += reconcileBonus
	}
	score = math.Round(score*1e5) / 1e5

	if txns == nil {
		txns = []models.Transaction{}
	}

	e.log.Debug("statement scored",
		"headerScore", header.RowScore,
		"transactions", len(txns),
		"documentScore", score)

	return &models.ParsedStatement{
		Header:        header,
		Transactions:  txns,
		DocumentScore: score,
	}
}

// reconciles reports whether |opening + Σ amounts − closing| < 0.01,
// computed with exact decimal arithmetic. Sentinel balances never
// reconcile.
func reconciles(h models.StatementHeader, txns []models.Transaction) bool {
	if h.OpeningBalance == models.ZeroBalance || h.ClosingBalance == models.ZeroBalance {
		return false
	}
	opening, err := decimal.NewFromString(strings.ReplaceAll(h.OpeningBalance, ",", ""))
	if err != nil {
		return false
	}
	closing, err := decimal.NewFromString(strings.ReplaceAll(h.ClosingBalance, ",", ""))
	if err != nil {
		return false
	}

	sum := opening
	for _, t := range txns {
		amt, err := decimal.NewFromString(t.Amount)
		if err != nil {
			continue
		}
		sum = sum.Add(amt)
	}

	tolerance, _ := decimal.NewFromString(reconcileTolerance)
	return sum.Sub(closing).Abs().LessThan(tolerance)
}
