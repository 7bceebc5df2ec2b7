// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

/*
Package catalog loads and holds the mobile and broadband plan catalogs.

Catalogs are read from CSV files through an in-memory DuckDB connection
(read_csv_auto handles header detection and type inference) and then kept
as plain Go slices. After loading, a catalog is never modified, so it can be
shared by every request goroutine without locking.

# Mobile catalog

Required columns: price, validity_days, data_per_day, plan_class, price_per_GB.

# Broadband catalog

Required columns: "Price (₹)", "Validity (days)", "Speed (Mbps)", Region.

Any other columns are kept verbatim in each plan's Fields map so that
renderers can show the full record.

# Usage

	loader, err := catalog.NewLoader()
	if err != nil {
	    return err
	}
	defer loader.Close()

	mobile, err := loader.LoadMobile(ctx, cfg.Data.MobileCatalogPath)
	plans := mobile.Filter(catalog.MobileCriteria{Price: catalog.Around(199, 0.2)})
	catalog.SortByPricePerGB(plans)
*/
package catalog
