// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog serves the dashboard's reference data: clients,
// representatives, products, prices, payment methods and carriers.
//
// Service wraps the backend client with the session token and the
// notification center. Fetch failures never reach the caller as errors:
// they become a toast plus an empty result, and the caller gets a Result
// whose Failed flag tells it to render the "could not load" state.
//
// The package also holds the pure helpers used by the product screens:
// grouping variations by model code, EAN-13 barcodes, and diffing an
// edited record against the loaded one.
//
// # Usage
//
//	svc := catalog.NewService(client, manager, center, catalog.WithNavigator(nav))
//	res := svc.Clients(ctx, catalog.ClientFilter{Client: "loja"})
//	if res.Failed {
//	    return
//	}
//	for _, c := range res.Items {
//	    fmt.Println(c.ID, c.Nome)
//	}
//
//	groups := catalog.GroupProducts(svc.Products(ctx, catalog.ProductFilter{}).Items)
package catalog
