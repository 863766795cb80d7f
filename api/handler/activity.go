package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskforge/backend/api/transport"
	"github.com/taskforge/backend/pkg/httpcontext"
	activityUC "github.com/taskforge/backend/usecase/activity"
)

type ActivityHandler struct {
	baseHandler
	uc *activityUC.UseCase
}

func NewActivityHandler(uc *activityUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Recent task activity for the caller
// @Tags activity
// @Router /api/v1/activity [get]
func (h *ActivityHandler) Recent(ctx *fasthttp.RequestCtx) {
	userID, ok := h.principal(ctx)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("limit")))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.uc.Recent(stdCtx, userID, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewActivityListResponse(entries))
}
