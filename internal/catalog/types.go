// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import "github.com/jeranaias/painel-tui/internal/backend"

// Entities are decoded by the backend package; these aliases keep callers
// from importing it just for the types.
type (
	Client                      = backend.Customer
	Representative              = backend.Representative
	Product                     = backend.Product
	Color                       = backend.Color
	Size                        = backend.Size
	FormattedSizes              = backend.FormattedSizes
	Tissue                      = backend.Tissue
	Collection                  = backend.Collection
	PaymentMethod               = backend.PaymentMethod
	RepresentativePaymentMethod = backend.RepresentativePaymentMethod
	Carrier                     = backend.Carrier
	Price                       = backend.Price
	PriceReference              = backend.PriceReference
	PriceList                   = backend.PriceList

	ClientFilter         = backend.ClientFilter
	RepresentativeFilter = backend.RepresentativeFilter
	ProductFilter        = backend.ProductFilter
)

// Result is a fetched list. Failed is set when the fetch fell back to the
// empty list.
type Result[T any] struct {
	Items       []T
	WasFiltered bool
	Failed      bool
}

// Len returns the number of items.
func (r Result[T]) Len() int {
	return len(r.Items)
}

func resultOf[T any](items []T) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items}
}

func failedResult[T any]() Result[T] {
	return Result[T]{Items: []T{}, Failed: true}
}
