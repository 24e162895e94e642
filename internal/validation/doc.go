// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

// Package validation wraps go-playground/validator v10 for API requests and
// configuration.
//
// A single validator instance is built on first use and shared, so struct
// metadata is parsed once. Field names in errors come from the json tag,
// falling back to the koanf tag, so messages name the key the caller actually
// sent:
//
//	type dailyQuery struct {
//	    Date  string `json:"date" validate:"omitempty,isodate"`
//	    Limit int    `json:"limit" validate:"gte=0,lte=50"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError() // Code "VALIDATION_ERROR"
//	}
//
// # Custom Tags
//
//   - isodate: a calendar date in YYYY-MM-DD form
package validation
