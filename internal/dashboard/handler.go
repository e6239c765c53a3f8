package dashboard

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stockchat/internal/logger"
	"stockchat/internal/ta"
	"stockchat/internal/types"
)

// Handler exposes the dashboard operations as JSON endpoints.
type Handler struct {
	svc *Service
	now func() time.Time
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// Register mounts the dashboard routes on r.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/health", h.Health)
	r.GET("/api/stocks/:ticker", h.GetSeries)
	r.GET("/api/stocks/:ticker/predict", h.GetPrediction)
	r.GET("/api/news", h.GetNews)
}

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	h.Register(r)
	return r
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type seriesResponse struct {
	Ticker      string     `json:"ticker"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	LatestClose float64    `json:"latest_close"`
	Indicators  ta.Summary `json:"indicators"`
	Bars        []barJSON  `json:"bars"`
}

type barJSON struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// GetSeries handles GET /api/stocks/:ticker?start=&end=
func (h *Handler) GetSeries(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}
	ticker := c.Param("ticker")

	bars, err := h.svc.Series(c.Request.Context(), ticker, start, end)
	if err != nil {
		h.fail(c, err)
		return
	}

	latest, _ := LatestClose(bars)
	out := seriesResponse{
		Ticker:      strings.ToUpper(ticker),
		Start:       start.Format(DateLayout),
		End:         end.Format(DateLayout),
		LatestClose: latest,
		Indicators:  ta.Summarize(bars),
		Bars:        make([]barJSON, len(bars)),
	}
	for i, b := range bars {
		out.Bars[i] = barJSON{b.Time.Format(DateLayout), b.Open, b.High, b.Low, b.Close, b.Volume}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   out,
	})
}

// GetPrediction handles GET /api/stocks/:ticker/predict?start=&end=&date=
func (h *Handler) GetPrediction(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}
	future, err := ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.Predict(c.Request.Context(), c.Param("ticker"), start, end, future)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   p,
	})
}

// GetNews handles GET /api/news
func (h *Handler) GetNews(c *gin.Context) {
	articles, err := h.svc.News(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   articles,
	})
}

// dateRange reads start/end; missing start defaults to one year before end,
// missing end to today.
func (h *Handler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := h.now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if v := c.Query("end"); v != "" {
		t, err := ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return time.Time{}, time.Time{}, false
		}
		end = t
	}
	start := end.AddDate(-1, 0, 0)
	if v := c.Query("start"); v != "" {
		t, err := ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return time.Time{}, time.Time{}, false
		}
		start = t
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must not be before start"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrNoData):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrUnresolvedEntity):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}
	logger.ErrorWithErr(c.Request.Context(), "Dashboard request failed", err,
		"path", c.FullPath(),
		"status", status,
	)
	c.JSON(status, gin.H{"error": err.Error()})
}
