package provider

import "github.com/stepaks675/sproutcard/internal/model"

// SwapPage is one page of a wallet's swap history on a single chain.
// An empty NextCursor marks the last page.
type SwapPage struct {
	Records    []model.RawSwapRecord `json:"records"`
	NextCursor string                `json:"nextCursor"`
}

// priceResponse is the provider's price-lookup payload. Prices may be
// numbers or numeric strings depending on the chain backend, hence FlexFloat.
type priceResponse struct {
	Prices map[string]model.FlexFloat `json:"prices"`
}
