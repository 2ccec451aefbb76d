package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"roomlog/internal/engine"
	"roomlog/internal/export"
	"roomlog/internal/ledger"
	"roomlog/internal/store"
)

type indexData struct {
	Room    string
	Names   []string
	Rows    []engine.Row
	Error   string
	Message string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	names, err := s.svc.Store.Roster(ctx)
	if err != nil {
		s.internalError(w, "load roster", err)
		return
	}
	rows, err := s.svc.TodayRows(ctx)
	if err != nil {
		s.internalError(w, "group today's events", err)
		return
	}

	s.render(w, "index.html", indexData{
		Room:    s.cfg.Room,
		Names:   names,
		Rows:    rows,
		Error:   r.URL.Query().Get("error"),
		Message: r.URL.Query().Get("message"),
	})
}

func (s *Server) handleSign(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	action, err := ledger.ParseAction(r.FormValue("action"))
	if err != nil {
		redirectError(w, r, "/", err.Error())
		return
	}

	manualTime := ""
	if r.FormValue("use_current_time") == "" {
		manualTime = r.FormValue("manual_time")
	}

	_, err = s.svc.SignManual(r.Context(), name, action, manualTime)
	if err != nil {
		if engine.IsRejection(err) {
			redirectError(w, r, "/", err.Error())
			return
		}
		s.internalError(w, "record sign event", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	cardID := r.FormValue("card_id")
	if cardID == "" {
		redirectError(w, r, "/", "No card detected")
		return
	}

	_, err := s.svc.Scan(r.Context(), cardID)
	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, store.ErrCardNotRegistered):
		redirectError(w, r, "/", "Card not registered. Please contact the administrator.")
	case engine.IsRejection(err):
		redirectError(w, r, "/", err.Error())
	default:
		s.internalError(w, "record scan event", err)
	}
}

type adminData struct {
	Room       string
	Events     []ledger.Event
	Dates      []string
	FilterType string
	Date       string
	WeekDate   string
	Message    string
	Error      string
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	date := q.Get("date")
	weekDate := q.Get("week_date")
	filterType := q.Get("filter_type")
	if filterType == "" || filterType == "all" {
		switch {
		case date != "":
			filterType = "date"
		case weekDate != "":
			filterType = "week"
		default:
			filterType = "all"
		}
	}
	// A filter type without its date defaults to today.
	if filterType == "date" && date == "" {
		date = s.svc.Today()
	}
	if filterType == "week" && weekDate == "" {
		weekDate = s.svc.Today()
	}
	if filterType == "all" {
		date, weekDate = "", ""
	}

	events, _, err := s.svc.FilteredEvents(ctx, date, weekDate)
	if err != nil {
		redirectError(w, r, "/admin", err.Error())
		return
	}
	dates, err := s.svc.Store.Dates(ctx)
	if err != nil {
		s.internalError(w, "list dates", err)
		return
	}

	s.render(w, "admin.html", adminData{
		Room:       s.cfg.Room,
		Events:     events,
		Dates:      dates,
		FilterType: filterType,
		Date:       date,
		WeekDate:   weekDate,
		Message:    q.Get("message"),
		Error:      q.Get("error"),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, scope, err := s.svc.FilteredRows(r.Context(), q.Get("date"), q.Get("week_date"))
	if err != nil {
		redirectError(w, r, "/admin", err.Error())
		return
	}

	filename := export.CSVFilename(s.cfg.CSVBase, scope)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteCSV(w, rows); err != nil {
		slog.Error("stream csv export", "error", err)
	}
}

func (s *Server) handleExportSheets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, weekDate := q.Get("date"), q.Get("week_date")

	paths, err := s.svc.ExportSheets(r.Context(), s.cfg.ExportsDir, s.cfg.Room, s.cfg.SheetPrefix(), date, weekDate)
	if err != nil {
		redirectError(w, r, "/admin", err.Error())
		return
	}
	if len(paths) == 0 {
		redirectError(w, r, "/admin", "No logs found for the selected range.")
		return
	}

	msg := fmt.Sprintf("Generated %d sheet file(s) in %q.", len(paths), s.cfg.ExportsDir)
	http.Redirect(w, r, "/admin?message="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	if _, err := s.svc.Store.RemoveEvent(r.Context(), id); err != nil {
		s.internalError(w, "remove event", err)
		return
	}
	http.Redirect(w, r, adminReturnURL(r), http.StatusSeeOther)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	timestamp := r.FormValue("timestamp")
	if timestamp == "" {
		redirectError(w, r, "/admin", "Timestamp is required")
		return
	}

	if _, err := s.svc.Store.SetTimestamp(r.Context(), id, timestamp); err != nil {
		s.internalError(w, "edit event", err)
		return
	}
	http.Redirect(w, r, adminReturnURL(r), http.StatusSeeOther)
}

type cardsData struct {
	Room    string
	Names   []string
	Cards   []store.Card
	Message string
	Error   string
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	names, err := s.svc.Store.Roster(ctx)
	if err != nil {
		s.internalError(w, "load roster", err)
		return
	}
	cards, err := s.svc.Store.Cards(ctx)
	if err != nil {
		s.internalError(w, "list cards", err)
		return
	}

	s.render(w, "cards.html", cardsData{
		Room:    s.cfg.Room,
		Names:   names,
		Cards:   cards,
		Message: r.URL.Query().Get("message"),
		Error:   r.URL.Query().Get("error"),
	})
}

func (s *Server) handleLinkCard(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Store.LinkCard(r.Context(), r.FormValue("card_id"), r.FormValue("name")); err != nil {
		redirectError(w, r, "/cards", err.Error())
		return
	}
	http.Redirect(w, r, "/cards?message="+url.QueryEscape("Card linked."), http.StatusSeeOther)
}

func (s *Server) handleUnlinkCard(w http.ResponseWriter, r *http.Request) {
	removed, err := s.svc.Store.UnlinkCard(r.Context(), r.FormValue("card_id"))
	if err != nil {
		s.internalError(w, "unlink card", err)
		return
	}
	if !removed {
		redirectError(w, r, "/cards", "Card not found")
		return
	}
	http.Redirect(w, r, "/cards?message="+url.QueryEscape("Card removed."), http.StatusSeeOther)
}

// adminReturnURL rebuilds the admin URL with the filter parameters the
// form carried, so remove/edit keep the current view.
func adminReturnURL(r *http.Request) string {
	params := url.Values{}
	for _, key := range []string{"filter_type", "date", "week_date"} {
		if v := r.FormValue(key); v != "" {
			params.Set(key, v)
		}
	}
	if len(params) == 0 {
		return "/admin"
	}
	return "/admin?" + params.Encode()
}

func redirectError(w http.ResponseWriter, r *http.Request, base, msg string) {
	http.Redirect(w, r, base+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (s *Server) internalError(w http.ResponseWriter, what string, err error) {
	slog.Error(what, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
