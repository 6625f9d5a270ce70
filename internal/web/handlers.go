package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/journal"
	"github.com/hpungsan/selah/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	env      *ops.Env
	renderer *Renderer
}

// HandleCalendar handles GET /calendar: the 30-day grid grouped by week.
func (h *Handlers) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	progress, err := ops.Progress(ctx, h.env)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	done := make(map[int]bool, len(progress.Completed))
	for _, d := range progress.Completed {
		done[d] = true
	}

	entries := make(map[int]*journal.Entry)
	list, err := ops.List(ctx, h.env, ops.ListInput{})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	for i := range list.Items {
		e := &list.Items[i]
		if _, ok := entries[e.Day]; !ok {
			entries[e.Day] = e
		}
	}

	cal := h.env.Calendar
	today := cal.Today(h.env.Clock()).Day
	days := cal.Days()

	var weeks []WeekRow
	for _, wk := range cal.Weeks() {
		row := WeekRow{Week: wk}
		for _, d := range days[wk.First-1 : wk.Last] {
			row.Days = append(row.Days, DayCell{
				Day:       d,
				Icon:      d.Type.Icon(),
				Entry:     entries[d.Day],
				Completed: done[d.Day],
				Today:     d.Day == today,
			})
		}
		weeks = append(weeks, row)
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{
			"month":    cal.Month().String(),
			"weeks":    cal.Weeks(),
			"days":     days,
			"progress": progress,
		})
		return
	}

	h.renderer.renderPage(w, r, "calendar", CalendarPageData{
		PageData: PageData{
			Title:   "Calendar",
			Version: h.renderer.version,
			Nav:     "calendar",
		},
		Month:    cal.Month().String(),
		Weeks:    weeks,
		Progress: progress,
	})
}

// HandleDay handles GET /days/{day}: activity, prompts, and the day's entry.
func (h *Handlers) HandleDay(w http.ResponseWriter, r *http.Request) {
	day, err := dayParam(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	out, err := ops.Day(r.Context(), h.env, day)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, out)
		return
	}

	data := DayPageData{
		PageData: PageData{
			Title:   out.Date + ": " + out.Title,
			Version: h.renderer.version,
			Nav:     "calendar",
		},
		Day:   out,
		Moods: journal.Moods,
	}
	if out.Entry != nil {
		data.RenderedHTML = renderMarkdown(out.Entry.Content)
		data.TagsText = strings.Join(out.Entry.Tags, ", ")
	}
	h.renderer.renderPage(w, r, "day", data)
}

// HandleWrite handles POST /days/{day}/entry: create or update the day's entry.
func (h *Handlers) HandleWrite(w http.ResponseWriter, r *http.Request) {
	day, err := dayParam(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	out, err := ops.Write(r.Context(), h.env, ops.WriteInput{
		Day:     day,
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Mood:    r.FormValue("mood"),
		Tags:    strings.Split(r.FormValue("tags"), ","),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, out)
		return
	}
	h.redirect(w, r, "/days/"+strconv.Itoa(day))
}

// HandleComplete handles POST /days/{day}/complete. done=false clears the mark.
func (h *Handlers) HandleComplete(w http.ResponseWriter, r *http.Request) {
	day, err := dayParam(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	var out *ops.ProgressOutput
	if r.FormValue("done") == "false" {
		out, err = ops.Uncomplete(r.Context(), h.env, day)
	} else {
		out, err = ops.Complete(r.Context(), h.env, day)
	}
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, out)
		return
	}
	h.redirect(w, r, "/days/"+strconv.Itoa(day))
}

// HandleJournal handles GET /journal: all entries, or search results when q
// is set, optionally filtered by mood.
func (h *Handlers) HandleJournal(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	mood := r.URL.Query().Get("mood")

	result, err := ops.Search(r.Context(), h.env, ops.SearchInput{Query: query, Mood: mood})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	stats, err := ops.Stats(r.Context(), h.env)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "journal", JournalPageData{
		PageData: PageData{
			Title:   "Journal",
			Version: h.renderer.version,
			Nav:     "journal",
		},
		Query:    query,
		Mood:     mood,
		Moods:    journal.Moods,
		Items:    result.Items,
		Total:    result.Total,
		Stats:    stats,
		HasQuery: strings.TrimSpace(query) != "",
	})
}

// HandleDelete handles DELETE /journal/{id}.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("entry id is required"))
		return
	}

	result, err := ops.Delete(r.Context(), h.env, ops.DeleteInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}
	h.redirect(w, r, "/journal")
}

// redirect sends HTMX clients an HX-Redirect and everyone else a 303.
func (h *Handlers) redirect(w http.ResponseWriter, r *http.Request, to string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func dayParam(r *http.Request) (int, error) {
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil || !journal.ValidDay(day) {
		return 0, errors.NewInvalidRequest("day must be between 1 and 30")
	}
	return day, nil
}
