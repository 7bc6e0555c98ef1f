package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"tsehay_admin/internal/middleware"
	"tsehay_admin/internal/models"
	"tsehay_admin/internal/services"
	"tsehay_admin/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	tabTables = "tables"
	tabMenu   = "menu"

	dashboardPath = "/admin/dashboard"
)

// DashboardResponse is the JSON form of the dashboard screen.
type DashboardResponse struct {
	services.DashboardView
	Notifications []models.Notification `json:"notifications"`
}

type dashboardPage struct {
	Username      string
	SiteURL       string
	Tab           string
	View          services.DashboardView
	Notifications []models.Notification
}

// DashboardHandler serves the admin dashboard screen.
type DashboardHandler struct {
	siteURL string
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(siteURL string) *DashboardHandler {
	if siteURL == "" {
		siteURL = "/"
	}
	return &DashboardHandler{siteURL: siteURL}
}

// session returns the caller's session with its dashboard mounted.
func (h *DashboardHandler) session(c *gin.Context) (*services.AdminSession, bool) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		utils.LogError(errors.New("session not found in context"), "DashboardHandler: AuthGate did not run")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing session in context"))
		return nil, false
	}
	session.Dashboard.Mount(c.Request.Context())
	return session, true
}

// ShowDashboard renders the screen, draining pending notifications.
func (h *DashboardHandler) ShowDashboard(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	view := session.Dashboard.View()
	notices := session.Notifications.Drain()

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, DashboardResponse{DashboardView: view, Notifications: nonNil(notices)})
		return
	}
	c.HTML(http.StatusOK, "dashboard.tmpl", dashboardPage{
		Username:      session.Username,
		SiteURL:       h.siteURL,
		Tab:           tabFromQuery(c.Query("tab")),
		View:          view,
		Notifications: notices,
	})
}

// ToggleTable flips the availability of the table in the path.
func (h *DashboardHandler) ToggleTable(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	tableID := c.Param("id")
	if err := session.Dashboard.ToggleTable(c.Request.Context(), tableID); err != nil {
		utils.LogWarn(err, "ToggleTable: table availability not updated", map[string]interface{}{"table_id": tableID})
	}
	h.respond(c, session, tabTables)
}

// BeginEdit puts the menu item in the path in edit mode.
func (h *DashboardHandler) BeginEdit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	itemID := c.Param("id")
	if err := session.Dashboard.BeginEdit(itemID); err != nil {
		utils.LogWarn(err, "BeginEdit: cannot edit menu item", map[string]interface{}{"item_id": itemID})
		if errors.Is(err, services.ErrMenuItemNotFound) && middleware.WantsJSON(c) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
			return
		}
	}
	h.respond(c, session, tabMenu)
}

// CancelEdit discards the scratch copy.
func (h *DashboardHandler) CancelEdit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Dashboard.CancelEdit()
	h.respond(c, session, tabMenu)
}

// SaveEdit applies the posted fields to the scratch copy and saves it.
func (h *DashboardHandler) SaveEdit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	values, err := postedFields(c)
	if err != nil {
		respondBadFields(c, err)
		return
	}
	if err := session.Dashboard.SubmitEditForm(c.Request.Context(), values); err != nil {
		utils.LogWarn(err, "SaveEdit: menu item not updated")
	}
	h.respond(c, session, tabMenu)
}

// BeginAdd shows the add-item form.
func (h *DashboardHandler) BeginAdd(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Dashboard.BeginAdd()
	h.respond(c, session, tabMenu)
}

// CancelAdd keeps what was typed into the draft and hides the add-item form.
func (h *DashboardHandler) CancelAdd(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	values, err := postedFields(c)
	if err != nil {
		utils.LogWarn(err, "CancelAdd: posted fields ignored")
		values = nil
	}
	if err := session.Dashboard.CancelAddForm(values); err != nil {
		utils.LogWarn(err, "CancelAdd: draft field rejected")
	}
	h.respond(c, session, tabMenu)
}

// SubmitAdd applies the posted fields to the draft and creates the item.
func (h *DashboardHandler) SubmitAdd(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	values, err := postedFields(c)
	if err != nil {
		respondBadFields(c, err)
		return
	}
	if err := session.Dashboard.SubmitAddForm(c.Request.Context(), values); err != nil {
		utils.LogWarn(err, "SubmitAdd: menu item not added")
	}
	h.respond(c, session, tabMenu)
}

// respond finishes a mutation: JSON clients get the new state, browsers are
// sent back to the tab they acted on.
func (h *DashboardHandler) respond(c *gin.Context, session *services.AdminSession, tab string) {
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, DashboardResponse{
			DashboardView: session.Dashboard.View(),
			Notifications: nonNil(session.Notifications.Drain()),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardPath+"?tab="+tab)
}

// postedFields collects the menu fields present in the request. Absent
// fields are left out so they keep their current value.
func postedFields(c *gin.Context) (map[models.MenuField]string, error) {
	values := make(map[models.MenuField]string)

	if c.ContentType() == gin.MIMEJSON {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload.", err.Error())
		}
		for key, raw := range body {
			if !models.IsValidMenuField(key) {
				return nil, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Input validation failed", fmt.Sprintf("unknown field %q", key))
			}
			if raw == nil {
				continue
			}
			values[models.MenuField(key)] = fmt.Sprint(raw)
		}
		return values, nil
	}

	for _, field := range models.MenuFields {
		if v, ok := c.GetPostForm(string(field)); ok {
			values[field] = v
		}
	}
	return values, nil
}

func respondBadFields(c *gin.Context, err error) {
	var apiErr *utils.APIError
	if errors.As(err, &apiErr) {
		utils.RespondWithError(c, apiErr)
		return
	}
	utils.RespondValidationFailed(c, err.Error())
}

func tabFromQuery(tab string) string {
	if tab == tabMenu {
		return tabMenu
	}
	return tabTables
}

func nonNil(notices []models.Notification) []models.Notification {
	if notices == nil {
		return []models.Notification{}
	}
	return notices
}
