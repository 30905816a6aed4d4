package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/s-brown01/Doin-sub000/internal/models"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func parseUUIDPath(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}

var errInvalidPagination = errors.New("invalid pagination")

// parsePageRequest reads pagination from the query string. Missing values
// fall back to the first page of twenty; malformed values surface as an
// error so the handler can reject the request.
func parsePageRequest(r *http.Request) (*models.PageRequest, error) {
	page := &models.PageRequest{Page: 0, Size: 20, Sort: models.SortByTime, Desc: true}
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, errInvalidPagination
		}
		page.Page = n
	}
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			return nil, errInvalidPagination
		}
		page.Size = n
	}
	if raw := q.Get("sort"); raw != "" {
		page.Sort = raw
	}
	if raw := q.Get("desc"); raw != "" {
		desc, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errInvalidPagination
		}
		page.Desc = desc
	}
	return page, nil
}
