package web

import (
	"log/slog"
	"net/http"

	"github.com/mbenner/invtrack/internal/report"
)

// summaryRow is one formatted table row on the summary page.
type summaryRow struct {
	Location  string
	ItemCount int
	TotalCost string
}

// SummaryPage handles GET /summary: the per-location table plus the item
// share chart.
func (s *Server) SummaryPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	summaries, err := report.ByLocation(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to build summary", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := &struct {
		PageData
		None   string
		Rows   []summaryRow
		Series []report.SeriesPoint
	}{
		PageData: PageData{Title: "Summary", User: claims},
	}

	if len(summaries) == 0 {
		data.None = "No records found!"
		s.Templates.Render(w, "summary.html", data)
		return
	}

	for _, g := range summaries {
		data.Rows = append(data.Rows, summaryRow{
			Location:  g.Location,
			ItemCount: g.ItemCount,
			TotalCost: report.FormatUSD(g.TotalCost),
		})
	}
	data.Series = report.Series(summaries)

	s.Templates.Render(w, "summary.html", data)
}
