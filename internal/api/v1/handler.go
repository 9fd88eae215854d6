package v1

import (
	"time"

	"github.com/captainblair/vertex/internal/api/validator"
	"github.com/captainblair/vertex/internal/constants"
	"github.com/captainblair/vertex/internal/metrics"
	"github.com/captainblair/vertex/internal/service"
	"github.com/captainblair/vertex/pkg/daraja"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger     *zap.Logger
	payments   service.PaymentService
	reconciler service.ReconcilerService
	statuses   service.StatusService
	orders     service.OrderService
	validator  validator.XValidator
	metrics    *metrics.Metrics
}

func NewHandler(logger *zap.Logger, payments service.PaymentService, reconciler service.ReconcilerService,
	statuses service.StatusService, orders service.OrderService, validator validator.XValidator,
	metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:     logger,
		payments:   payments,
		reconciler: reconciler,
		statuses:   statuses,
		orders:     orders,
		validator:  validator,
		metrics:    metrics,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) StkPush(c *fiber.Ctx) error {
	start := time.Now()

	var request StkPushRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
			"code":  constants.ErrCodeInvalidRequestBody,
		})
	}

	if errs := h.validator.Validate(request); len(errs) > 0 {
		for _, validationErr := range errs {
			h.metrics.RecordValidationError(validationErr.FailedField, validationErr.Tag)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validator.Message(errs, constants.MessageErrorFormat),
			"code":  constants.ErrCodeValidationFailed,
		})
	}

	cmd := service.InitiatePushCommand{
		PhoneNumber:      request.PhoneNumber,
		Amount:           request.Amount,
		AccountReference: request.AccountReference,
		TransactionDesc:  request.TransactionDesc,
		OrderID:          request.OrderID,
	}

	response, err := h.payments.InitiatePush(c.UserContext(), cmd)
	if err != nil {
		h.metrics.RecordPush("error")
		h.logger.Error("Failed to initiate STK push",
			zap.Error(err),
			zap.String("phone", request.PhoneNumber),
			zap.Int64("amount", request.Amount))
		return err
	}

	outcome := "accepted"
	if response.ResponseCode != daraja.ResponseCodeSuccess {
		outcome = "rejected"
	}
	h.metrics.RecordPush(outcome)

	h.logger.Info("STK push initiated",
		zap.String("phone", request.PhoneNumber),
		zap.Int64("amount", request.Amount),
		zap.String("checkoutRequestID", response.CheckoutRequestID),
		zap.String("responseCode", response.ResponseCode),
		zap.Duration("duration", time.Since(start)),
	)

	return c.JSON(response)
}

// Callback receives the processor webhook. It always acknowledges with 200 so
// the processor never retries against a payload we already consumed.
func (h *Handler) Callback(c *fiber.Ctx) error {
	var envelope daraja.CallbackEnvelope
	if err := c.BodyParser(&envelope); err != nil {
		h.logger.Warn("Failed to parse callback body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		h.metrics.RecordCallback("unparseable")
		return c.JSON(CallbackAckResponse{Result: "success"})
	}

	if err := h.reconciler.ReconcileCallback(c.UserContext(), envelope); err != nil {
		h.logger.Error("Failed to reconcile callback", zap.Error(err))
		h.metrics.RecordCallback("error")
		return c.JSON(CallbackAckResponse{Result: "success"})
	}

	result := "ignored"
	if cb := envelope.Body.StkCallback; cb != nil {
		if cb.ResultCode == 0 {
			result = "completed"
		} else {
			result = "failed"
		}
	}
	h.metrics.RecordCallback(result)

	return c.JSON(CallbackAckResponse{Result: "success"})
}

func (h *Handler) Status(c *fiber.Ctx) error {
	checkoutRequestID := c.Params("checkoutRequestId")

	status, err := h.statuses.QueryStatus(c.UserContext(), checkoutRequestID)
	if err != nil {
		h.logger.Error("Failed to query transaction status",
			zap.Error(err),
			zap.String("checkoutRequestID", checkoutRequestID))
		return err
	}

	h.metrics.RecordStatusLookup(status)

	return c.JSON(StatusResponse{CheckoutRequestID: checkoutRequestID, Status: status})
}

func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	var request CreateOrderRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
			"code":  constants.ErrCodeInvalidRequestBody,
		})
	}

	if errs := h.validator.Validate(request); len(errs) > 0 {
		for _, validationErr := range errs {
			h.metrics.RecordValidationError(validationErr.FailedField, validationErr.Tag)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validator.Message(errs, constants.MessageErrorFormat),
			"code":  constants.ErrCodeValidationFailed,
		})
	}

	cmd := service.CreateOrderCommand{PhoneNumber: request.PhoneNumber, Amount: request.Amount}

	response, err := h.orders.CreateOrder(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	h.metrics.RecordOrderCreated()

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *Handler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	record, err := h.orders.GetOrder(c.UserContext(), orderID)
	if err != nil {
		return err
	}

	return c.JSON(OrderResponse{
		OrderID:           record.ID,
		PhoneNumber:       record.PhoneNumber,
		TotalAmount:       record.TotalAmount,
		Status:            record.Status,
		CheckoutRequestID: record.CheckoutRequestID,
		CreatedAt:         record.CreatedAt.Format(time.RFC3339),
	})
}
