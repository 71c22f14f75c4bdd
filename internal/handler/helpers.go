package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go-cheatsheets-app/internal/data"
	"go-cheatsheets-app/internal/session"
)

func errNotFound(what string) error {
	return fmt.Errorf("%q not found", what)
}

// parseID parses a decimal id from a URL parameter.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return id, nil
}

// decodeJSON decodes a JSON request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// sectionManageURL points back at the manage-sections page owning a section.
func sectionManageURL(section *data.Section) string {
	return fmt.Sprintf("/admin/topic/%d/sections", section.TopicID)
}

// writeJSON encodes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// flash stores a one-shot user-facing message in the session.
func flash(sm session.Manager, r *http.Request, kind, msg string) {
	sm.Put(r.Context(), session.KeyFlash, msg)
	sm.Put(r.Context(), session.KeyFlashKind, kind)
}

// popFlash retrieves and clears the pending flash message, if any.
func popFlash(sm session.Manager, r *http.Request) map[string]string {
	msg := sm.PopString(r.Context(), session.KeyFlash)
	if msg == "" {
		return nil
	}
	kind := sm.PopString(r.Context(), session.KeyFlashKind)
	if kind == "" {
		kind = "info"
	}
	return map[string]string{"Kind": kind, "Message": msg}
}
