package rest

import "github.com/shopspring/decimal"

func init() {
	// money is written as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}
