package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/go-chi/chi/v5"
)

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, name, raw)
	}
	return id, nil
}

// queryDays reads ?days=, falling back to def when absent.
func queryDays(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return def, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0, fmt.Errorf("%w: days must be a non-negative integer, got %q", domain.ErrValidation, raw)
	}
	return days, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Stats.PortfolioSummary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPortfolioSummaryDTO(sum))
}

func (s *Server) handlePortfolioProperties(w http.ResponseWriter, r *http.Request) {
	rows, err := s.svc.Stats.PropertiesWithStats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPropertyStatsDTOs(rows))
}

func (s *Server) handlePortfolioRisk(w http.ResponseWriter, r *http.Request) {
	days, err := queryDays(r, s.windows.RiskDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rows, err := s.svc.Stats.PropertiesAtRisk(r.Context(), days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPropertyRiskDTOs(rows))
}

func (s *Server) handlePortfolioFlagged(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Stats.AllFlaggedItemsByProperty(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPropertyItemDTOs(items))
}

func (s *Server) handlePortfolioHeatmap(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Stats.CompletionMatrix(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toHeatmapDTO(m))
}

func (s *Server) handlePortfolioDeadlines(w http.ResponseWriter, r *http.Request) {
	days, err := queryDays(r, s.windows.DeadlineDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ds, err := s.svc.Stats.UpcomingDeadlines(r.Context(), days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeadlineDTOs(ds))
}

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	ps, err := s.svc.Properties.List(r.Context(), activeOnly)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPropertyDTOs(ps))
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.Properties.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPropertyDTO(p))
}

func (s *Server) handlePropertyStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	stats, err := s.svc.Stats.OverallStats(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOverallStatsDTO(stats))
}

func (s *Server) handlePropertyCategories(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rows, err := s.svc.Stats.SummaryByCategory(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategorySummaryDTOs(rows))
}

func (s *Server) handlePropertyItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.svc.Properties.GetByID(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	items, err := s.svc.Items.List(r.Context(), domain.ItemFilter{
		PropertyID: id,
		Category:   q.Get("category"),
		Status:     q.Get("status"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTOs(items))
}

func (s *Server) handlePropertyFlagged(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := s.svc.Stats.FlaggedItems(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTOs(items))
}

func (s *Server) handlePropertyDueSoon(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	days, err := queryDays(r, s.windows.DueSoonDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := s.svc.Stats.ItemsDueSoon(r.Context(), id, days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTOs(items))
}

func (s *Server) handlePropertyReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	days, err := queryDays(r, s.windows.DueSoonDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	md, err := s.svc.Reports.PropertyReport(r.Context(), id, days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(md))
}

func (s *Server) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tid, err := pathID(r, "tid")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := s.svc.Templates.ApplyTemplate(r.Context(), id, tid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, applyResultDTO{PropertyID: id, TemplateID: tid, ItemsAdded: n})
}

// handleUpdateItem applies a partial update: omitted fields keep their
// stored values, an empty due_date clears the date.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req itemPatchRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err))
		return
	}

	current, err := s.svc.Items.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	upd := domain.ItemUpdate{
		Status:           current.Status,
		ResponsibleParty: current.ResponsibleParty,
		DueDate:          current.DueDate,
		Notes:            current.Notes,
	}
	if req.Status != nil {
		upd.Status = domain.ItemStatus(*req.Status)
	}
	if req.ResponsibleParty != nil {
		upd.ResponsibleParty = *req.ResponsibleParty
	}
	if req.Notes != nil {
		upd.Notes = *req.Notes
	}
	if req.DueDate != nil {
		due, err := domain.ParseDate(*req.DueDate)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		upd.DueDate = due
	}

	updated, err := s.svc.Items.Update(r.Context(), id, upd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(updated))
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	ts, err := s.svc.Templates.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTemplateDTOs(ts))
}
