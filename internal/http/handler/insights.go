package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"neevamind/internal/auth"
	"neevamind/internal/insight"
	"neevamind/internal/report"
)

type InsightHandler struct {
	Svc *insight.Service
}

func (h *InsightHandler) Generate(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	saved, err := h.Svc.Generate(r.Context(), uid)
	if err != nil {
		if errors.Is(err, insight.ErrNoEntries) {
			writeMessage(w, http.StatusBadRequest, "No diary entries found to analyze")
			return
		}
		slog.Error("insight generation failed", "user_id", uid, "kind", errorKind(err), "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to generate insights: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Insights generated successfully",
		"insights": nonNil(saved),
	})
}

func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	out, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		slog.Error("list insights failed", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch insights: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"insights": nonNil(out)})
}

type ReportHandler struct {
	Svc *report.Service
}

func (h *ReportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	rows, err := h.Svc.Weekly(r.Context(), uid)
	if err != nil {
		slog.Error("weekly report failed", "user_id", uid, "kind", errorKind(err), "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to generate weekly report: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": rows})
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, insight.ErrGenerativeService):
		return "generative_service"
	case errors.Is(err, insight.ErrPersistence), errors.Is(err, report.ErrPersistence):
		return "persistence"
	default:
		return "internal"
	}
}

func nonNil(in []insight.Insight) []insight.Insight {
	if in == nil {
		return []insight.Insight{}
	}
	return in
}
