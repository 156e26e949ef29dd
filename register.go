package billing_service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
	"github.com/mounasaba/billing_service/billing_model"
	"github.com/mounasaba/billing_service/common"
	"github.com/mounasaba/billing_service/invoice"
	"github.com/mounasaba/billing_service/payment"
	"github.com/mounasaba/billing_service/report"
	"github.com/mounasaba/billing_service/schedule"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func statusFromError(err error) int {
	kind, ok := billing_core.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch kind {
	case billing_core.KindNotFound:
		return http.StatusNotFound
	case billing_core.KindInvalidInput:
		return http.StatusBadRequest
	case billing_core.KindConflict:
		return http.StatusConflict
	case billing_core.KindForbidden:
		return http.StatusForbidden
	}

	return http.StatusInternalServerError
}

func writeError(c *gin.Context, log *zap.Logger, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Error("internal error", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// bodyHandler adapts a service method onto a JSON-bound gin route.
func bodyHandler[Req any, Res any](log *zap.Logger, fn func(ctx *gin.Context, req *Req) (Res, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Req
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, log, billing_core.InvalidInputf("invalid request body: %s", err.Error()))
			return
		}

		res, err := fn(c, &req)
		if err != nil {
			writeError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

// queryHandler adapts a service method onto a query-bound gin route.
func queryHandler[Req any, Res any](log *zap.Logger, fn func(ctx *gin.Context, req *Req) (Res, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Req
		if err := c.ShouldBindQuery(&req); err != nil {
			writeError(c, log, billing_core.InvalidInputf("invalid query: %s", err.Error()))
			return
		}

		res, err := fn(c, &req)
		if err != nil {
			writeError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, billing_core.InvalidInputf("malformed %s", name)
	}
	return id, nil
}

type RegisterHandler func()

func NewRegister(
	db *gorm.DB,
	auth common.Authorization,
	engine *gin.Engine,
	log *zap.Logger,
) RegisterHandler {
	return func() {
		// deposit settlements advance the booking lifecycle
		billing_core.RegisterCustomHandler("deposit_escalation", billing_model.NewDepositEscalationHandler(db))

		scheduleSrv := schedule.NewScheduleService(db, log)
		paymentSrv := payment.NewPaymentService(db, log)
		invoiceSrv := invoice.NewInvoiceService(db, log)
		reportSrv := report.NewReportService(db)

		api := engine.Group("/api/v1", common.AuthMiddleware(auth))

		api.POST("/schedules", bodyHandler(log, func(c *gin.Context, req *schedule.ScheduleCreateRequest) (any, error) {
			return scheduleSrv.ScheduleCreate(c.Request.Context(), req)
		}))

		api.GET("/events/:event_id/milestones", func(c *gin.Context) {
			eventID, err := pathUUID(c, "event_id")
			if err != nil {
				writeError(c, log, err)
				return
			}

			res, err := scheduleSrv.MilestonesByEvent(c.Request.Context(), &schedule.MilestonesByEventRequest{
				EventID: eventID,
			})
			if err != nil {
				writeError(c, log, err)
				return
			}

			c.JSON(http.StatusOK, res)
		})

		api.POST("/milestones/:id/confirm", func(c *gin.Context) {
			milestoneID, err := pathUUID(c, "id")
			if err != nil {
				writeError(c, log, err)
				return
			}

			req := payment.MilestoneConfirmRequest{}
			if err := c.ShouldBindJSON(&req); err != nil {
				writeError(c, log, billing_core.InvalidInputf("invalid request body: %s", err.Error()))
				return
			}
			req.MilestoneID = milestoneID

			res, err := paymentSrv.MilestoneConfirm(c.Request.Context(), &req)
			if err != nil {
				writeError(c, log, err)
				return
			}

			c.JSON(http.StatusOK, res)
		})

		api.GET("/milestones", queryHandler(log, func(c *gin.Context, req *payment.MilestoneListRequest) (any, error) {
			return paymentSrv.MilestoneList(c.Request.Context(), req)
		}))

		api.POST("/invoices", bodyHandler(log, func(c *gin.Context, req *invoice.InvoiceCreateRequest) (any, error) {
			return invoiceSrv.InvoiceCreate(c.Request.Context(), req)
		}))

		api.POST("/invoices/:id/send", func(c *gin.Context) {
			invoiceID, err := pathUUID(c, "id")
			if err != nil {
				writeError(c, log, err)
				return
			}

			res, err := invoiceSrv.InvoiceSend(c.Request.Context(), &invoice.InvoiceSendRequest{
				InvoiceID: invoiceID,
			})
			if err != nil {
				writeError(c, log, err)
				return
			}

			c.JSON(http.StatusOK, res)
		})

		api.GET("/invoices", queryHandler(log, func(c *gin.Context, req *invoice.InvoiceListRequest) (any, error) {
			return invoiceSrv.InvoiceList(c.Request.Context(), req)
		}))

		api.GET("/reports/revenue", func(c *gin.Context) {
			res, err := reportSrv.RevenueOverview(c.Request.Context(), &report.RevenueOverviewRequest{})
			if err != nil {
				writeError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, res)
		})

		api.GET("/reports/revenue/monthly", queryHandler(log, func(c *gin.Context, req *report.MonthlyRevenueRequest) (any, error) {
			return reportSrv.MonthlyRevenue(c.Request.Context(), req)
		}))

		api.GET("/reports/payment-methods", func(c *gin.Context) {
			res, err := reportSrv.PaymentMethodBreakdown(c.Request.Context(), &report.PaymentMethodBreakdownRequest{})
			if err != nil {
				writeError(c, log, err)
				return
			}
			c.JSON(http.StatusOK, res)
		})
	}
}
