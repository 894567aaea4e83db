package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"bank-assistant/internal/domain"
	"bank-assistant/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

// Replier is the usecase consumed by the handler.
type Replier interface {
	Reply(ctx context.Context, in usecase.ReplyInput) (usecase.ReplyOutput, error)
}

type errorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId"`
}

// Handler serves POST /chat behind API Gateway.
type Handler struct {
	replier Replier
	logger  *slog.Logger
}

func NewHandler(r Replier) (*Handler, error) {
	if r == nil {
		return nil, errors.New("handler: replier must not be nil")
	}
	return &Handler{replier: r, logger: slog.Default()}, nil
}

func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := headerValue(req.Headers, correlationHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	logger := h.logger.With("correlation_id", correlationID)

	if req.HTTPMethod != "" && req.HTTPMethod != http.MethodPost {
		return errorJSON(http.StatusMethodNotAllowed, string(usecase.ErrorInvalidInput), correlationID), nil
	}

	var body domain.ChatRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		logger.Warn("invalid request body", "err", err)
		return errorJSON(http.StatusBadRequest, string(usecase.ErrorInvalidInput), correlationID), nil
	}

	out, err := h.replier.Reply(ctx, usecase.ReplyInput{Message: body.Message, Context: body.Context})
	if err != nil {
		status, code := mapError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("reply failed", "err", err)
		} else {
			logger.Info("reply rejected", "err", err)
		}
		return errorJSON(status, code, correlationID), nil
	}

	logger.Info("reply sent", "intent", out.Intent, "farewell", out.Farewell)
	return jsonResponse(http.StatusOK, out.ChatReply(), correlationID), nil
}

// mapError translates usecase errors to an HTTP status and public code.
func mapError(err error) (int, string) {
	code := usecase.CodeOf(err)
	return code.HTTPStatus(), string(code)
}

func errorJSON(status int, code, correlationID string) events.APIGatewayProxyResponse {
	return jsonResponse(status, errorResponse{Error: code, CorrelationID: correlationID}, correlationID)
}

func jsonResponse(status int, v any, correlationID string) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"INTERNAL_ERROR"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: correlationID,
		},
		Body: string(body),
	}
}

func headerValue(headers map[string]string, key string) string {
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
