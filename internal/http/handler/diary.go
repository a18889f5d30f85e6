package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"neevamind/internal/auth"
	"neevamind/internal/diary"
)

type DiaryHandler struct {
	Store *diary.Store
}

type createEntryReq struct {
	EntryText     string  `json:"entryText"`
	MoodTag       *string `json:"moodTag"`
	MemoryClarity *int    `json:"memoryClarity"`
}

type entryDTO struct {
	ID            uint64    `json:"id"`
	EntryText     string    `json:"entry_text"`
	MoodTag       *string   `json:"mood_tag"`
	MemoryClarity *int      `json:"memory_clarity"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
}

func toEntryDTO(e diary.Entry) entryDTO {
	tags := []string(e.Tags)
	if tags == nil {
		tags = []string{}
	}
	return entryDTO{
		ID:            e.ID,
		EntryText:     e.Text,
		MoodTag:       e.MoodTag,
		MemoryClarity: e.MemoryClarity,
		Tags:          tags,
		CreatedAt:     e.CreatedAt,
	}
}

func (h *DiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createEntryReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	e, err := h.Store.CreateEntry(r.Context(), uid, diary.CreateEntryInput{
		Text:          req.EntryText,
		MoodTag:       req.MoodTag,
		MemoryClarity: req.MemoryClarity,
	})
	if err != nil {
		switch {
		case errors.Is(err, diary.ErrEmptyText):
			writeMessage(w, http.StatusBadRequest, "Entry text is required")
		case errors.Is(err, diary.ErrInvalidClarity), errors.Is(err, diary.ErrMoodTagTooLong):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("create diary entry failed", "user_id", uid, "error", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to create diary entry: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Diary entry created successfully",
		"entry":   toEntryDTO(e),
	})
}

// List returns every entry of the user. With ?tag= or ?q= it searches
// instead, capped by ?limit=.
func (h *DiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	query := r.URL.Query()
	tag := strings.TrimSpace(query.Get("tag"))
	text := strings.TrimSpace(query.Get("q"))

	var (
		entries []diary.Entry
		err     error
	)
	if tag == "" && text == "" {
		entries, err = h.Store.ListEntries(r.Context(), uid)
	} else {
		entries, err = h.Store.SearchEntries(r.Context(), uid, diary.EntryFilter{
			Tag:   tag,
			Query: text,
			Limit: queryInt(r, "limit"),
		})
	}
	if err != nil {
		slog.Error("list diary entries failed", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch diary entries: "+err.Error())
		return
	}

	out := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryDTO(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": out})
}

func (h *DiaryHandler) Tags(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	out, err := h.Store.TagCounts(r.Context(), uid, r.URL.Query().Get("q"), queryInt(r, "limit"))
	if err != nil {
		slog.Error("list tags failed", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch tags: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": out})
}
