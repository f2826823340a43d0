package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"vibezone/internal/store"
)

type createCollectionRequest struct {
	Name string `json:"name"`
}

type createCollectionResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	CollectionID int64  `json:"collection_id"`
	Name         string `json:"name"`
}

type collectionItemRequest struct {
	CollectionID int64 `json:"collection_id"`
	FavoriteID   int64 `json:"favorite_id"`
}

func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.identify(w, r)
	if !ok {
		return
	}

	var req createCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	col, err := s.collections.Create(r.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrEmptyCollectionName) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "collection name is required"})
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, createCollectionResponse{
		Status:       "success",
		Message:      fmt.Sprintf("Collection %q created.", col.Name),
		CollectionID: col.ID,
		Name:         col.Name,
	})
}

// handleDeleteCollection removes a collection and its item links. A missing
// or foreign collection answers 403 so callers cannot probe for ids.
func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.identify(w, r)
	if !ok {
		return
	}

	collectionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid collection id"})
		return
	}

	if err := s.collections.Delete(r.Context(), userID, collectionID); err != nil {
		switch {
		case errors.Is(err, store.ErrCollectionNotFound), errors.Is(err, store.ErrNotOwner):
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "not authorized"})
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Collection deleted.",
	})
}

func (s *Server) handleAddToCollection(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.identify(w, r)
	if !ok {
		return
	}

	var req collectionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.CollectionID == 0 || req.FavoriteID == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "collection_id and favorite_id are required"})
		return
	}

	if err := s.collections.AddItem(r.Context(), userID, req.CollectionID, req.FavoriteID); err != nil {
		switch {
		case errors.Is(err, store.ErrCollectionNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "collection not found"})
		case errors.Is(err, store.ErrFavoriteNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "favorite not found"})
		case errors.Is(err, store.ErrNotOwner):
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "not authorized"})
		case errors.Is(err, store.ErrAlreadyInCollection):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "track is already in that collection"})
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Track added to collection.",
	})
}

func (s *Server) handleRemoveFromCollection(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.identify(w, r)
	if !ok {
		return
	}

	var req collectionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.CollectionID == 0 || req.FavoriteID == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "collection_id and favorite_id are required"})
		return
	}

	if err := s.collections.RemoveItem(r.Context(), userID, req.CollectionID, req.FavoriteID); err != nil {
		switch {
		case errors.Is(err, store.ErrCollectionItemNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "track is not in that collection"})
		case errors.Is(err, store.ErrNotOwner):
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "not authorized"})
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Track removed from collection.",
	})
}
