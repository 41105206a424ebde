package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"pitch-reports/logger"
	"pitch-reports/mailer"
	"pitch-reports/report"
	"pitch-reports/roster"
)

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"service": "Pitch Reports API",
		"version": "1.0.0",
		"status":  "online",
		"time":    time.Now().UTC(),
		"endpoints": map[string]interface{}{
			"health":     "/api/v1/health",
			"dates":      "/api/v1/dates",
			"pitchers":   "/api/v1/pitchers?date=YYYY-MM-DD",
			"report":     "/api/v1/pitchers/{name}/report?date=YYYY-MM-DD&level=D1",
			"report_pdf": "/api/v1/pitchers/{name}/report.pdf?date=YYYY-MM-DD",
			"stats":      "/api/v1/stats?date=YYYY-MM-DD",
			"email":      "/api/v1/reports/email",
			"metrics":    "/metrics",
		},
	}

	writeJSON(w, info)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"time":      time.Now().UTC(),
		"warehouse": "connected",
		"roster":    "connected",
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	healthy := true
	if err := s.warehouse.Ping(ctx); err != nil {
		health["warehouse"] = "disconnected"
		healthy = false
	}
	if err := s.roster.Ping(ctx); err != nil {
		health["roster"] = "disconnected"
		healthy = false
	}
	if !healthy {
		health["status"] = "unhealthy"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	writeJSON(w, health)
}

func (s *Server) getDatesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	dates, err := s.pitches.Dates(ctx)
	if err != nil {
		logger.Error("failed to query dates", "error", err)
		writeError(w, "Failed to query dates", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"dates": dates,
		"count": len(dates),
	})
}

func (s *Server) getPitchersHandler(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if !validateDateFormat(date) {
		writeError(w, "Invalid date format, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	names, err := s.pitches.Pitchers(ctx, date)
	if err != nil {
		logger.Error("failed to query pitchers", "error", err, "date", date)
		writeError(w, "Failed to query pitchers", http.StatusInternalServerError)
		return
	}

	type pitcherEntry struct {
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
	}
	pitchers := make([]pitcherEntry, 0, len(names))
	for _, name := range names {
		pitchers = append(pitchers, pitcherEntry{
			Name:        name,
			DisplayName: report.FormatPitcherName(name),
		})
	}

	writeJSON(w, map[string]interface{}{
		"date":     date,
		"pitchers": pitchers,
		"count":    len(pitchers),
	})
}

// buildReport loads a pitcher's outing and assembles the report document.
func (s *Server) buildReport(r *http.Request, name, date string, level report.Level) (*report.Report, int, error) {
	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	pitches, err := s.pitches.Batch(ctx, date, name)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("query pitch batch: %w", err)
	}

	rep, err := s.assembler.BuildReport(ctx, name, pitches, date, level)
	if errors.Is(err, report.ErrNoPitches) {
		return nil, http.StatusNotFound, err
	}
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	reportsGenerated.Inc()
	return rep, http.StatusOK, nil
}

// resolveLevel picks the benchmark level for a pitcher: an explicit query
// value wins, then the roster's recruiting target, then D1.
func (s *Server) resolveLevel(r *http.Request, name string) report.Level {
	if param := r.URL.Query().Get("level"); param != "" {
		return report.ResolveLevel(param)
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	prospect, err := s.roster.FindPitcher(ctx, report.FormatPitcherName(name))
	if err != nil {
		if !errors.Is(err, roster.ErrNotFound) {
			logger.Warn("roster level lookup failed", "error", err, "pitcher", name)
		}
		return report.LevelD1
	}
	return prospect.Level()
}

func (s *Server) getReportHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	date := r.URL.Query().Get("date")
	if !validateDateFormat(date) {
		writeError(w, "Invalid date format, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	level := s.resolveLevel(r, name)

	rep, status, err := s.buildReport(r, name, date, level)
	if err != nil {
		if status == http.StatusNotFound {
			writeError(w, "No pitches found for pitcher on date", status)
			return
		}
		logger.Error("failed to build report", "error", err, "pitcher", name, "date", date)
		writeError(w, "Failed to build report", status)
		return
	}

	writeJSON(w, rep)
}

func (s *Server) getReportPDFHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	date := r.URL.Query().Get("date")
	if !validateDateFormat(date) {
		writeError(w, "Invalid date format, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	level := s.resolveLevel(r, name)

	rep, status, err := s.buildReport(r, name, date, level)
	if err != nil {
		if status == http.StatusNotFound {
			writeError(w, "No pitches found for pitcher on date", status)
			return
		}
		logger.Error("failed to build report", "error", err, "pitcher", name, "date", date)
		writeError(w, "Failed to build report", status)
		return
	}

	pdf, err := s.renderer.ReportPDF(rep)
	if err != nil {
		logger.Error("failed to render pdf", "error", err, "pitcher", name, "date", date)
		writeError(w, "Failed to render PDF", http.StatusInternalServerError)
		return
	}
	pdfsRendered.Inc()

	filename := mailer.AttachmentName(rep.Pitcher, rep.Date)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(pdf)
}

// getStatsHandler reports dataset-wide totals and the tracked date range.
// With a date parameter it adds roster match accounting for that date, in
// both directions: roster pitchers without tracking data and tracked
// pitchers absent from the roster.
func (s *Server) getStatsHandler(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date != "" && !validateDateFormat(date) {
		writeError(w, "Invalid date format, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	totals, err := s.pitches.Totals(ctx)
	if err != nil {
		logger.Error("failed to query dataset totals", "error", err)
		writeError(w, "Failed to query dataset totals", http.StatusInternalServerError)
		return
	}

	prospects, err := s.roster.Pitchers(ctx)
	if err != nil {
		logger.Error("failed to query roster", "error", err)
		writeError(w, "Failed to query roster", http.StatusInternalServerError)
		return
	}

	stats := map[string]interface{}{
		"total_pitches":   totals.TotalPitches,
		"unique_dates":    totals.UniqueDates,
		"unique_pitchers": totals.UniquePitchers,
		"first_date":      totals.FirstDate,
		"last_date":       totals.LastDate,
		"roster_pitchers": len(prospects),
	}

	if date == "" {
		writeJSON(w, stats)
		return
	}

	names, err := s.pitches.Pitchers(ctx, date)
	if err != nil {
		logger.Error("failed to query pitchers", "error", err, "date", date)
		writeError(w, "Failed to query pitchers", http.StatusInternalServerError)
		return
	}

	matched, unmatched, warehouseOnly := roster.MatchPitchers(prospects, names)

	var withEmail, withoutEmail int
	for _, m := range matched {
		if m.Prospect.Email != nil && *m.Prospect.Email != "" {
			withEmail++
		} else {
			withoutEmail++
		}
	}

	unmatchedNames := make([]string, 0, len(unmatched))
	for _, p := range unmatched {
		unmatchedNames = append(unmatchedNames, p.Name)
	}

	stats["date"] = date
	stats["tracked_pitchers"] = len(names)
	stats["matched"] = len(matched)
	stats["matched_with_email"] = withEmail
	stats["matched_without_email"] = withoutEmail
	stats["unmatched_roster"] = unmatchedNames
	stats["warehouse_only"] = warehouseOnly
	stats["match_rate_percent"] = matchRate(len(matched), len(prospects))

	writeJSON(w, stats)
}

func matchRate(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total) * 100
}

type emailRequest struct {
	Date string `json:"date"`
}

type emailOutcome struct {
	ID       string `json:"id"`
	Prospect string `json:"prospect"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
}

// unmatchedOutcome records a roster pitcher who could not be emailed, with
// the reason delivery was skipped.
func unmatchedOutcome(name, reason string) emailOutcome {
	return emailOutcome{
		ID:       uuid.NewString(),
		Prospect: name,
		Status:   "unmatched",
		Reason:   reason,
	}
}

// emailReportsHandler generates and emails a report PDF to every roster
// pitcher matched in the warehouse for the requested date. Delivery runs
// sequentially; one failed send does not stop the rest of the batch.
func (s *Server) emailReportsHandler(w http.ResponseWriter, r *http.Request) {
	if s.mailer == nil {
		writeError(w, "Email delivery is not configured", http.StatusServiceUnavailable)
		return
	}

	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !validateDateFormat(req.Date) {
		writeError(w, "Invalid date format, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	prospects, err := s.roster.Pitchers(ctx)
	if err != nil {
		logger.Error("failed to query roster", "error", err)
		writeError(w, "Failed to query roster", http.StatusInternalServerError)
		return
	}

	names, err := s.pitches.Pitchers(ctx, req.Date)
	if err != nil {
		logger.Error("failed to query pitchers", "error", err, "date", req.Date)
		writeError(w, "Failed to query pitchers", http.StatusInternalServerError)
		return
	}

	matched, unmatched, _ := roster.MatchPitchers(prospects, names)

	var outcomes []emailOutcome
	var sent, failed, skipped int

	for _, m := range matched {
		outcome := s.emailReport(r, m, req.Date)
		switch outcome.Status {
		case "sent":
			sent++
		case "unmatched":
			skipped++
		default:
			failed++
		}
		outcomes = append(outcomes, outcome)
	}

	for _, p := range unmatched {
		outcomes = append(outcomes, unmatchedOutcome(p.Name, "no pitch data for this date"))
	}

	writeJSON(w, map[string]interface{}{
		"date":                  req.Date,
		"sent":                  sent,
		"failed":                failed,
		"unmatched":             len(unmatched) + skipped,
		"match_rate_percent":    matchRate(len(matched), len(prospects)),
		"delivery_rate_percent": matchRate(sent, len(matched)),
		"outcomes":              outcomes,
	})
}

// emailReport builds, renders, and sends one prospect's report.
func (s *Server) emailReport(r *http.Request, m roster.Match, date string) emailOutcome {
	outcome := emailOutcome{
		ID:       uuid.NewString(),
		Prospect: m.Prospect.Name,
		Status:   "failed",
	}

	if m.Prospect.Email == nil || *m.Prospect.Email == "" {
		outcome.Status = "unmatched"
		outcome.Reason = "no email address on file"
		return outcome
	}

	rep, _, err := s.buildReport(r, m.WarehouseName, date, m.Prospect.Level())
	if err != nil {
		logger.Error("failed to build report for email", "error", err,
			"prospect", m.Prospect.Name, "date", date)
		outcome.Reason = "failed to build report"
		emailsFailed.Inc()
		return outcome
	}

	pdf, err := s.renderer.ReportPDF(rep)
	if err != nil {
		logger.Error("failed to render pdf for email", "error", err,
			"prospect", m.Prospect.Name, "date", date)
		outcome.Reason = "failed to render PDF"
		emailsFailed.Inc()
		return outcome
	}
	pdfsRendered.Inc()

	err = s.mailer.SendReport(
		*m.Prospect.Email,
		mailer.Subject(rep.Pitcher, rep.Date),
		mailer.Body(rep.Pitcher, rep.Date, rep.TotalPitches),
		mailer.AttachmentName(rep.Pitcher, rep.Date),
		pdf,
	)
	if err != nil {
		logger.Error("failed to send report email", "error", err,
			"prospect", m.Prospect.Name, "date", date)
		outcome.Reason = "failed to send email"
		emailsFailed.Inc()
		return outcome
	}

	logger.Info("report emailed", "prospect", m.Prospect.Name, "date", date)
	outcome.Status = "sent"
	emailsSent.Inc()
	return outcome
}
