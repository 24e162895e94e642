// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

/*
Package features holds the TF-IDF feature matrix that backs every
recommendation.

The matrix is stored in compressed sparse row (CSR) form. Row i belongs to
paper id i+1, so paper ids are dense and start at 1. The row count only grows:
new rows are published by Store.Append, which copies the arrays into a fresh
Matrix and swaps it in atomically. Readers call Store.Snapshot once per
computation and keep using that *Matrix, so an append that lands mid-request
can never shift row indices under them.

# Persistence

The artifact on disk is the .npz archive produced by scipy.sparse.save_npz:
a zip holding data.npy, indices.npy, indptr.npy, shape.npy and format.npy.
LoadNPZ and WriteNPZ read and write that layout, and Refresher re-reads the
artifact periodically to pick up rows appended by the ingestion job.

# Thread Safety

A *Matrix is immutable after construction and safe for concurrent reads.
Store serializes writers with a mutex; Snapshot is lock-free.
*/
package features
