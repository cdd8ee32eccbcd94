package report

import (
	"encoding/json"

	"github.com/nerdware-developers/pos-backend/internal/domain"
)

// The legacy backend answered in several envelope shapes over the
// years: {"success":true,"sales":[...]}, {"sales":[...]}, or a bare
// array. Each normalizer encodes all the fallback rules once and
// returns an empty list for anything unrecognized, never an error.

func ToSaleList(raw []byte) []domain.Sale {
	var envelope struct {
		Sales []domain.Sale `json:"sales"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Sales != nil {
		return envelope.Sales
	}
	var list []domain.Sale
	if err := json.Unmarshal(raw, &list); err == nil && list != nil {
		return list
	}
	return []domain.Sale{}
}

func ToExpenseList(raw []byte) []domain.Expense {
	var envelope struct {
		Expenses []domain.Expense `json:"expenses"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Expenses != nil {
		return envelope.Expenses
	}
	var list []domain.Expense
	if err := json.Unmarshal(raw, &list); err == nil && list != nil {
		return list
	}
	return []domain.Expense{}
}

func ToProductList(raw []byte) []domain.Product {
	var envelope struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Products != nil {
		return envelope.Products
	}
	var list []domain.Product
	if err := json.Unmarshal(raw, &list); err == nil && list != nil {
		return list
	}
	return []domain.Product{}
}
