package handler

import (
	"github.com/gin-gonic/gin"

	"pravaah/internal/service"
)

// ReviewQueueHandler lists documents awaiting human review.
type ReviewQueueHandler struct {
	reviewQueueService service.ReviewQueueService
}

// NewReviewQueueHandler creates a new ReviewQueueHandler.
func NewReviewQueueHandler(reviewQueueService service.ReviewQueueService) *ReviewQueueHandler {
	return &ReviewQueueHandler{reviewQueueService: reviewQueueService}
}

// List handles GET /review-queue
// @Summary Review queue
// @Description Documents awaiting review, in insertion order
// @Tags review
// @Produce json
// @Success 200 {array} domain.ReviewQueueEntry "Queued documents"
// @Failure 500 {object} ErrorResponseBody "Queue unreadable"
// @Router /review-queue [get]
func (h *ReviewQueueHandler) List(c *gin.Context) {
	entries, err := h.reviewQueueService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}
