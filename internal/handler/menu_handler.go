package handler

import (
	"net/http"

	"github.com/bbqgrill/backend/internal/model"
)

// MenuHandler serves the static menu catalog.
type MenuHandler struct {
	catalog *model.MenuCatalog
}

func NewMenuHandler(catalog *model.MenuCatalog) *MenuHandler {
	if catalog == nil {
		catalog = &model.MenuCatalog{}
	}
	return &MenuHandler{catalog: catalog}
}

type menuItemView struct {
	model.MenuItem
	FormattedPrice string `json:"formatted_price"`
}

// List handles GET /api/menu[?category=].
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.catalog.Items
	if c := r.URL.Query().Get("category"); c != "" {
		category, err := model.ParseMenuCategory(c)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown_category"})
			return
		}
		items = h.catalog.ByCategory(category)
	}

	views := make([]menuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, menuItemView{MenuItem: item, FormattedPrice: item.FormattedPrice()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": views})
}
