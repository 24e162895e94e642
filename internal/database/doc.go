// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

// Package database is the DuckDB metadata store for papers and favorites.
//
// # Overview
//
// The recommendation engine works on feature-matrix rows; this package maps
// those rows back to paper metadata and answers the questions the API needs
// around them:
//   - DailyBatchRange, CountByDate: the id range and size of one day's batch
//   - GetPaper, GetPapers, InsertPaper: paper metadata
//   - ListFavorites, AddFavorite, RemoveFavorite, IsFavorite: saved papers
//   - SearchPapers, SearchJournals, PapersByJournal: keyword search
//
// # Schema
//
// Two tables are created on startup if missing:
//
//	papers(id, title, abstract, authors, journal, link, published)
//	favorites(user_id, paper_id, created_at)
//
// Paper ids are dense and assigned in ingestion order, so the ids published on
// one date form a contiguous range.
//
// # Search Syntax
//
// ParseSearchQuery accepts whitespace separated words. Filters:
//
//	date:2026-10-16      papers published on that day
//	from:2026-10-01      published on or after
//	to:2026-10-15        published on or before
//	journal:nature       journal name, case-insensitive
//
// Every other word must appear in the abstract. All values are bound as
// query parameters.
//
// # Thread Safety
//
// DB is safe for concurrent use; database/sql pools the DuckDB connections.
package database
