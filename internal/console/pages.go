package console

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/labshare-dev/labshare/internal/api"
	"github.com/labshare-dev/labshare/internal/client"
	"github.com/labshare-dev/labshare/internal/metrics"
	"github.com/labshare-dev/labshare/internal/router"
	"github.com/labshare-dev/labshare/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var errBadRequest = errors.New("bad request")

func parseTemplates() (*template.Template, error) {
	return template.New("layout.html").Funcs(template.FuncMap{
		"time":        api.FormatTimestamp,
		"actionLabel": api.ActionLabel,
	}).ParseFS(templateFS, "templates/*.html")
}

// navLink is one entry of the navigation bar
type navLink struct {
	Path      string
	Title     string
	Available bool
}

// pageData is what the layout template renders
type pageData struct {
	Title   string
	Route   router.Route
	Params  router.Params
	Flags   session.Flags
	User    *api.Profile
	Nav     []navLink
	Data    any
	Error   string
	Version string
}

type homeData struct {
	Top []api.TopEquipment
}

type equipmentListData struct {
	Query      equipmentQuery
	Equipments []api.Equipment
}

type equipmentQuery struct {
	Keyword  string `form:"keyword"`
	LabID    int64  `form:"lab_id" binding:"omitempty,min=1"`
	Category int    `form:"category" binding:"omitempty,oneof=1 2"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
}

type equipmentDetailData struct {
	Equipment *api.Equipment
	TimeSlots []api.TimeSlot
	Dates     []string
}

type reservationsData struct {
	Reservations []api.Reservation
}

type auditLogData struct {
	Page *api.AuditLogPage
}

type helpTopic struct {
	Question string
	Answer   string
}

var helpTopics = []helpTopic{
	{"如何预约设备?", "在设备列表中选择设备, 查看可预约时段后提交预约申请."},
	{"预约提交后多久审批?", "预约提交后为待审批状态, 由管理员审批, 结果可在预约管理中查看."},
	{"如何取消预约?", "在预约管理中选择待审批或已通过的预约取消. 已拒绝或已取消的预约不能再次取消."},
	{"看不到审计日志?", "审计日志仅对管理员开放, 请使用管理员账号登录."},
}

// page renders one guarded view. Middleware has already admitted the visitor.
func (s *Server) page(route router.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		nav, ok := router.NavigationFrom(c)
		if !ok {
			nav = router.Navigation{Route: route, Title: router.Title(route)}
		}
		sess := router.SessionFrom(c)

		data, err := s.load(c, nav, sess)
		if err != nil {
			status := statusFor(err)
			s.logger.Warn().Err(err).Str("route", route.Name).Int("status", status).Msg("Failed to load page data")
			s.render(c, status, nav, sess, data, errorMessage(err))
			return
		}

		s.render(c, http.StatusOK, nav, sess, data, "")
	}
}

func (s *Server) notFound(c *gin.Context) {
	sess := s.sessionFromCookie(c)
	nav := router.Navigate(c.Request.URL.Path, sess.Flags())
	metrics.Get().ObserveNavigation(nav.Route.Name, nav.Decision.Allowed)
	s.render(c, http.StatusNotFound, nav, sess, nil, "")
}

// load fetches the data a view shows, calling the backend as the visitor
func (s *Server) load(c *gin.Context, nav router.Navigation, sess *session.Session) (any, error) {
	ctx := c.Request.Context()
	apiClient := s.client(sess)

	switch nav.Route.Name {
	case router.RouteHome:
		return s.homeData(c, sess), nil

	case router.RouteLaboratoryList:
		return apiClient.ListLaboratories(ctx)

	case router.RouteEquipment:
		var query equipmentQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		equipments, err := apiClient.ListEquipments(ctx, api.EquipmentListParams{
			LabID:    query.LabID,
			Keyword:  query.Keyword,
			Category: query.Category,
			Page:     query.Page,
		})
		return &equipmentListData{Query: query, Equipments: equipments}, err

	case router.RouteEquipmentDetail:
		id, err := strconv.ParseInt(nav.Params["id"], 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: invalid equipment id %q", errBadRequest, nav.Params["id"])
		}

		data := &equipmentDetailData{}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			equipment, err := apiClient.GetEquipment(gctx, id)
			data.Equipment = equipment
			return err
		})
		g.Go(func() error {
			slots, err := apiClient.GetTimeslots(gctx, id, true)
			data.TimeSlots = slots
			return err
		})
		g.Go(func() error {
			dates, err := apiClient.GetAvailableDates(gctx, id, "", 0)
			data.Dates = dates
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return data, nil

	case router.RouteReservations:
		if !sess.IsLoggedIn() {
			return &reservationsData{}, nil
		}
		reservations, err := apiClient.ListReservations(ctx, api.ReservationListParams{})
		return &reservationsData{Reservations: reservations}, err

	case router.RouteAuditLog:
		page, err := apiClient.ListAuditLogs(ctx, api.AuditLogListParams{
			OperatorID: c.Query("operator_id"),
			ActionType: c.Query("action_type"),
		})
		return &auditLogData{Page: page}, err

	case router.RouteHelp:
		return helpTopics, nil
	}

	return nil, nil
}

// homeData loads the usage ranking; the home view renders even when it fails
func (s *Server) homeData(c *gin.Context, sess *session.Session) *homeData {
	top, err := s.client(sess).GetTopEquipments(c.Request.Context(), api.TimeRangeWeek, api.DefaultTopLimit)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Failed to load equipment ranking")
	}
	return &homeData{Top: top}
}

func (s *Server) render(c *gin.Context, status int, nav router.Navigation, sess *session.Session, data any, message string) {
	flags := sess.Flags()

	var links []navLink
	for _, r := range router.Routes() {
		if r.Name == router.RouteNotFound || r.Name == router.RouteEquipmentDetail {
			continue
		}
		links = append(links, navLink{Path: r.Path, Title: r.Title, Available: router.Guard(r, flags).Allowed})
	}

	page := pageData{
		Title:   nav.Title,
		Route:   nav.Route,
		Params:  nav.Params,
		Flags:   flags,
		Nav:     links,
		Data:    data,
		Error:   message,
		Version: s.version,
	}
	if flags.LoggedIn {
		page.User = sess.Profile
	}

	metrics.Get().PageRenders.WithLabelValues(nav.Route.Name, strconv.Itoa(status)).Inc()

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := s.templates.ExecuteTemplate(c.Writer, "layout.html", page); err != nil {
		s.logger.Error().Err(err).Str("route", nav.Route.Name).Msg("Failed to render page")
	}
}

func statusFor(err error) int {
	if errors.Is(err, errBadRequest) {
		return http.StatusBadRequest
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

func errorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, errBadRequest) {
		return "请求参数无效"
	}
	return "加载数据失败, 请稍后重试"
}
