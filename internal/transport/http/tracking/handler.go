package tracking

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sakewinkel/console/internal/dto"
	"github.com/sakewinkel/console/internal/presentation/http/response"
	service "github.com/sakewinkel/console/internal/service/tracking"
	"github.com/sakewinkel/console/internal/tracking"
	"github.com/sakewinkel/console/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/sakewinkel/console/transport/http/tracking")

type querier interface {
	List(ctx context.Context, f tracking.Filter, page, size int) service.ListResult
	Order(ctx context.Context, id int64) (tracking.Record, error)
	Stats(ctx context.Context) service.StatsResult
	StatusNames(ctx context.Context) service.StatusesResult
	Dashboard(ctx context.Context, f tracking.Filter, page, size int) service.Dashboard
}

// Handler exposes order tracking endpoints over HTTP.
type Handler struct {
	svc querier
}

// NewHandler constructs a tracking Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/tracking")
	g.GET("/orders", h.list)
	g.GET("/orders/:id", h.getByID)
	g.GET("/stats", h.stats)
	g.GET("/statuses", h.statuses)
	g.GET("/dashboard", h.dashboard)
}

type listQuery struct {
	filter tracking.Filter
	page   int
	size   int
}

// bindListQuery reads the filter using the same names the response echoes
// back, so a returned filter can be replayed as a query.
func bindListQuery(c echo.Context) (listQuery, error) {
	q := listQuery{page: 1}
	err := echo.QueryParamsBinder(c).
		String("search", &q.filter.Search).
		String("status", &q.filter.Status).
		String("startDate", &q.filter.StartDate).
		String("endDate", &q.filter.EndDate).
		Int("page", &q.page).
		Int("pageSize", &q.size).
		BindError()
	if err != nil {
		return q, errorbank.BadRequest("invalid query parameters", errorbank.WithCause(err))
	}
	return q, nil
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	q, err := bindListQuery(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "tracking.list", trace.WithAttributes(attribute.Int("page", q.page)))
	defer span.End()

	res := h.svc.List(ctx, q.filter, q.page, q.size)
	return b.WithNotice(res.Notice).WithData(dto.FromPage(res.Page, res.Filter)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "tracking.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	rec, err := h.svc.Order(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.FromRecord(rec)).Build()
}

func (h *Handler) stats(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "tracking.stats")
	defer span.End()

	res := h.svc.Stats(ctx)
	return b.WithNotice(res.Notice).WithData(res.Stats).Build()
}

func (h *Handler) statuses(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "tracking.statuses")
	defer span.End()

	res := h.svc.StatusNames(ctx)
	return b.WithNotice(res.Notice).WithData(res.Names).Build()
}

func (h *Handler) dashboard(c echo.Context) error {
	b := response.New(c)

	q, err := bindListQuery(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "tracking.dashboard")
	defer span.End()

	d := h.svc.Dashboard(ctx, q.filter, q.page, q.size)

	b.WithNotices(map[string]*errorbank.Notice{
		"tracking": d.List.Notice,
		"stats":    d.Stats.Notice,
		"statuses": d.Statuses.Notice,
	})

	return b.WithData(dto.DashboardResponse{
		Tracking: dto.FromPage(d.List.Page, d.List.Filter),
		Stats:    d.Stats.Stats,
		Statuses: d.Statuses.Names,
	}).Build()
}
