package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mbenner/invtrack/internal/export"
	"github.com/mbenner/invtrack/internal/model"
	"github.com/mbenner/invtrack/internal/store"
)

// pickerLists holds the reference-data listings the item forms need.
type pickerLists struct {
	Statuses      []model.Reference
	Locations     []model.Reference
	Areas         []model.Area
	Manufacturers []model.Reference
	Assignees     []model.Reference
	Approvers     []model.Reference
}

// InventoryPage handles GET /inventory.
func (s *Server) InventoryPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListItems(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var success string
	switch r.URL.Query().Get("flash") {
	case "added":
		success = "New inventory item added successfully!"
	case "updated":
		success = "Updated successfully!"
	}

	s.Templates.Render(w, "inventory.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "Inventory", User: claims, Success: success},
		Items:    items,
	})
}

// ItemNewPage handles GET /items/new.
func (s *Server) ItemNewPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	lists, err := s.loadPickerLists(r)
	if err != nil {
		slog.Error("failed to load picker lists", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "item_new.html", &struct {
		PageData
		Lists *pickerLists
	}{
		PageData: PageData{Title: "Add Item", User: claims},
		Lists:    lists,
	})
}

// ItemCreateSubmit handles POST /items/new.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	item, msg := s.parseItemForm(r)
	if msg != "" {
		lists, err := s.loadPickerLists(r)
		if err != nil {
			slog.Error("failed to load picker lists", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		s.Templates.Render(w, "item_new.html", &struct {
			PageData
			Lists *pickerLists
		}{
			PageData: PageData{Title: "Add Item", User: claims, Error: msg},
			Lists:    lists,
		})
		return
	}

	item.InsertedBy = claims.UserID
	if _, err := store.CreateItem(r.Context(), s.DB, item); err != nil {
		slog.Error("failed to create item", "error", err)
		lists, lerr := s.loadPickerLists(r)
		if lerr != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		s.Templates.Render(w, "item_new.html", &struct {
			PageData
			Lists *pickerLists
		}{
			PageData: PageData{Title: "Add Item", User: claims, Error: "Could not save the item. Item names must be unique."},
			Lists:    lists,
		})
		return
	}

	slog.Info("item created", "user", claims.Username, "item", item.Name)
	http.Redirect(w, r, "/inventory?flash=added", http.StatusSeeOther)
}

// ItemEditPage handles GET /items/{id}/edit. Each picker shows the current
// value separately, so its candidate list excludes the current selection;
// the area picker is restricted to the item's location.
func (s *Server) ItemEditPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	lists, err := s.loadEditPickerLists(r, item)
	if err != nil {
		slog.Error("failed to load picker lists", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "item_edit.html", &struct {
		PageData
		Item  *model.Item
		Lists *pickerLists
	}{
		PageData: PageData{Title: "Edit " + item.Name, User: claims},
		Item:     item,
		Lists:    lists,
	})
}

// ItemUpdateSubmit handles POST /items/{id}/edit.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	existing, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	item, msg := s.parseItemForm(r)
	if msg != "" {
		lists, lerr := s.loadEditPickerLists(r, existing)
		if lerr != nil {
			slog.Error("failed to load picker lists", "error", lerr)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		s.Templates.Render(w, "item_edit.html", &struct {
			PageData
			Item  *model.Item
			Lists *pickerLists
		}{
			PageData: PageData{Title: "Edit " + existing.Name, User: claims, Error: msg},
			Item:     existing,
			Lists:    lists,
		})
		return
	}
	item.ID = id

	if err := store.UpdateItem(r.Context(), s.DB, item, claims.Username); err != nil {
		slog.Error("failed to update item", "error", err)
		http.Error(w, "failed to update", http.StatusInternalServerError)
		return
	}

	slog.Info("item updated", "user", claims.Username, "item", item.Name)
	http.Redirect(w, r, "/inventory?flash=updated", http.StatusSeeOther)
}

// NotesPage handles GET /items/{id}/notes.
func (s *Server) NotesPage(w http.ResponseWriter, r *http.Request) {
	s.renderNotes(w, r, "")
}

// NoteSubmit handles POST /items/{id}/notes.
func (s *Server) NoteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	comment := strings.TrimSpace(r.FormValue("comment"))
	if comment == "" {
		s.renderNotes(w, r, "")
		return
	}

	if _, err := store.CreateNote(r.Context(), s.DB, id, comment, claims.Username); err != nil {
		slog.Error("failed to create note", "error", err)
		http.Error(w, "failed to save note", http.StatusInternalServerError)
		return
	}

	s.renderNotes(w, r, "Note added successfully!")
}

func (s *Server) renderNotes(w http.ResponseWriter, r *http.Request, success string) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	notes, err := store.ListNotes(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to list notes", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "notes.html", &struct {
		PageData
		Item  *model.Item
		Notes []model.Note
	}{
		PageData: PageData{Title: "Notes for " + item.Name, User: claims, Success: success},
		Item:     item,
		Notes:    notes,
	})
}

// AreaOptions handles GET /items/areas?location={id}, returning the area
// picker options for the chosen location as an HTML fragment. No location
// (or an unknown one) yields an empty option list, never an error.
func (s *Server) AreaOptions(w http.ResponseWriter, r *http.Request) {
	locationID, _ := strconv.ParseInt(r.URL.Query().Get("location"), 10, 64)

	areas, err := store.ListAreasByLocation(r.Context(), s.DB, locationID)
	if err != nil {
		slog.Error("failed to list areas", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.RenderFragment(w, "areas_options.html", &struct {
		Areas []model.Area
	}{Areas: areas})
}

// ExportCSV handles GET /inventory/export.
func (s *Server) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.csv"`)

	if err := export.WriteCSV(r.Context(), s.DB, w); err != nil {
		// Headers may already be out; the aborted stream is the signal.
		slog.Error("inventory export failed", "error", err)
	}
}

// loadPickerLists loads all reference listings, each sorted by name.
func (s *Server) loadPickerLists(r *http.Request) (*pickerLists, error) {
	ctx := r.Context()
	lists := &pickerLists{}
	var err error

	if lists.Statuses, err = store.ListReference(ctx, s.DB, model.KindStatus); err != nil {
		return nil, err
	}
	if lists.Locations, err = store.ListReference(ctx, s.DB, model.KindLocation); err != nil {
		return nil, err
	}
	if lists.Areas, err = store.ListAreas(ctx, s.DB); err != nil {
		return nil, err
	}
	if lists.Manufacturers, err = store.ListReference(ctx, s.DB, model.KindManufacturer); err != nil {
		return nil, err
	}
	if lists.Assignees, err = store.ListReference(ctx, s.DB, model.KindAssignee); err != nil {
		return nil, err
	}
	if lists.Approvers, err = store.ListReference(ctx, s.DB, model.KindApprover); err != nil {
		return nil, err
	}
	return lists, nil
}

// loadEditPickerLists loads the candidate lists for the edit form: every
// picker excludes the item's current selection, and areas are restricted to
// the item's location.
func (s *Server) loadEditPickerLists(r *http.Request, item *model.Item) (*pickerLists, error) {
	ctx := r.Context()
	lists := &pickerLists{}
	var err error

	var assigneeID int64
	if item.AssigneeID != nil {
		assigneeID = *item.AssigneeID
	}

	if lists.Statuses, err = store.ListReferenceExcluding(ctx, s.DB, model.KindStatus, item.StatusID); err != nil {
		return nil, err
	}
	if lists.Locations, err = store.ListReferenceExcluding(ctx, s.DB, model.KindLocation, item.LocationID); err != nil {
		return nil, err
	}
	if lists.Areas, err = store.ListAreasByLocation(ctx, s.DB, item.LocationID); err != nil {
		return nil, err
	}
	if lists.Manufacturers, err = store.ListReferenceExcluding(ctx, s.DB, model.KindManufacturer, item.ManufacturerID); err != nil {
		return nil, err
	}
	if lists.Assignees, err = store.ListReferenceExcluding(ctx, s.DB, model.KindAssignee, assigneeID); err != nil {
		return nil, err
	}
	if lists.Approvers, err = store.ListReferenceExcluding(ctx, s.DB, model.KindApprover, item.ApproverID); err != nil {
		return nil, err
	}
	return lists, nil
}

// parseItemForm validates the add/edit item form. It returns the parsed item
// or a user-facing validation message.
func (s *Server) parseItemForm(r *http.Request) (*model.Item, string) {
	item := &model.Item{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		// Model and serial numbers are normalized to upper case.
		ModelNo:      strings.ToUpper(strings.TrimSpace(r.FormValue("model_no"))),
		ApprovedDate: r.FormValue("approved_date"),
		PurchaseDate: r.FormValue("purchase_date"),
	}

	if item.Name == "" {
		return nil, "Item name is required."
	}

	if serial := strings.ToUpper(strings.TrimSpace(r.FormValue("serial_no"))); serial != "" {
		item.SerialNo = &serial
	}

	var err error
	if item.StatusID, err = strconv.ParseInt(r.FormValue("status_id"), 10, 64); err != nil {
		return nil, "Select a status."
	}
	if item.LocationID, err = strconv.ParseInt(r.FormValue("location_id"), 10, 64); err != nil {
		return nil, "Select a location."
	}
	if item.AreaID, err = strconv.ParseInt(r.FormValue("area_id"), 10, 64); err != nil {
		return nil, "Select an area."
	}
	if item.ManufacturerID, err = strconv.ParseInt(r.FormValue("manufacturer_id"), 10, 64); err != nil {
		return nil, "Select a manufacturer."
	}
	if item.ApproverID, err = strconv.ParseInt(r.FormValue("approved_by"), 10, 64); err != nil {
		return nil, "Select an approver."
	}
	if assignee := r.FormValue("assigned_to"); assignee != "" {
		id, err := strconv.ParseInt(assignee, 10, 64)
		if err != nil {
			return nil, "Invalid assignee."
		}
		item.AssigneeID = &id
	}

	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil || qty < 0 {
		return nil, "Quantity must be a non-negative number."
	}
	item.Qty = qty

	if cost := strings.TrimSpace(r.FormValue("total_cost")); cost != "" {
		d, err := decimal.NewFromString(cost)
		if err != nil {
			return nil, "Total cost must be a valid amount."
		}
		if !d.Equal(d.Round(2)) {
			return nil, "Total cost can have at most two decimal places."
		}
		item.TotalCost = &d
	}

	// The chosen area must belong to the chosen location.
	area, err := store.GetArea(r.Context(), s.DB, item.AreaID)
	if err != nil {
		slog.Error("failed to look up area", "error", err)
		return nil, "Could not validate the selected area."
	}
	if area == nil || area.LocationID != item.LocationID {
		return nil, "The selected area does not belong to the selected location."
	}

	return item, ""
}
