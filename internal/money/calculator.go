// Package money implements the monetary arithmetic shared by estimates,
// invoices and payment summaries. All amounts use shopspring/decimal with a
// 2-decimal scale; percentage applications round half-up at each step.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ServiceLine is a flat-priced labor charge.
type ServiceLine struct {
	Price decimal.Decimal
}

// ProductLine is a quantity × unit-price charge.
type ProductLine struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Breakdown holds every intermediate amount of a document total.
type Breakdown struct {
	ServicesTotal  decimal.Decimal
	ProductsTotal  decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// Calculate computes the document total from line items and percentages.
//
// The sequence is fixed: the discount amount is rounded to 2 decimals before
// subtraction, and the tax amount is rounded to 2 decimals before addition.
// Rounding only once at the end produces different totals for non-trivial
// percentages, so the two-step rounding must not be collapsed.
func Calculate(services []ServiceLine, products []ProductLine, discountPct, taxPct decimal.Decimal) Breakdown {
	servicesTotal := decimal.Zero
	for _, s := range services {
		servicesTotal = servicesTotal.Add(s.Price)
	}

	productsTotal := decimal.Zero
	for _, p := range products {
		productsTotal = productsTotal.Add(p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}

	subtotal := servicesTotal.Add(productsTotal)

	discountAmount := subtotal.Mul(discountPct).Div(hundred).Round(2)
	afterDiscount := subtotal.Sub(discountAmount)

	taxAmount := afterDiscount.Mul(taxPct).Div(hundred).Round(2)
	total := afterDiscount.Add(taxAmount)

	return Breakdown{
		ServicesTotal:  servicesTotal,
		ProductsTotal:  productsTotal,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		Total:          total,
	}
}

// CalculateTotal is the single-value shortcut used by the document services.
func CalculateTotal(services []ServiceLine, products []ProductLine, discountPct, taxPct decimal.Decimal) decimal.Decimal {
	return Calculate(services, products, discountPct, taxPct).Total
}
