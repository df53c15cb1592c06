package handler

import (
	"alpha-sparrow/internal/job"
	"alpha-sparrow/internal/recorder"
	"alpha-sparrow/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer    trace.Tracer
	market    *service.MarketService
	recorder  *recorder.Recorder
	scheduler *job.Scheduler
}

func New(tracer trace.Tracer, market *service.MarketService, rec *recorder.Recorder, scheduler *job.Scheduler) *Handler {
	return &Handler{
		tracer:    tracer,
		market:    market,
		recorder:  rec,
		scheduler: scheduler,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/prices", h.GetAllPrices)
	r.GET("/api/prices/:symbol", h.GetPrice)
	r.GET("/api/movers", h.GetMovers)
	r.GET("/api/summary", h.GetSummary)
	r.GET("/api/jobs", h.GetJobs)
}
