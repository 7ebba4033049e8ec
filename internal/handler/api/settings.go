// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetAllSettings returns every setting as a key/value map.
func (h *Handler) GetAllSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.GetAllSettings(r.Context())
	if err != nil {
		h.logger.Error("listing settings failed", "error", err)
		WriteInternalError(w, "Failed to list settings")
		return
	}

	WriteSuccess(w, settings, nil)
}

// GetSetting returns a single setting value by key.
func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := h.store.GetSetting(r.Context(), key)
	if err != nil {
		h.writeStoreError(w, err, "Setting not found", "")
		return
	}

	WriteSuccess(w, map[string]any{"key": key, "value": value}, nil)
}

// UpdateSettings upserts the given key/value pairs and returns the full
// settings map afterwards.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if !decodeJSON(w, r, &values) {
		return
	}
	if len(values) == 0 {
		WriteBadRequest(w, "No settings provided", nil)
		return
	}

	settings, err := h.store.SetManySettings(r.Context(), values)
	if err != nil {
		h.logger.Error("updating settings failed", "error", err)
		WriteInternalError(w, "Failed to update settings")
		return
	}

	WriteSuccess(w, settings, nil)
}

// DeleteSetting removes a setting by key.
func (h *Handler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.store.DeleteSetting(r.Context(), key); err != nil {
		h.writeStoreError(w, err, "Setting not found", "")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Setting deleted"}, nil)
}
