package webhook

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
	"github.com/petersparlor/parlor-fulfillment/dialogue/fulfillment"
	statex "github.com/petersparlor/parlor-fulfillment/dialogue/state"
)

func (s *Server) handleFulfillment(c *gin.Context) {
	ctx := c.Request.Context()

	var req contractx.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("malformed webhook payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	resp, err := s.svc.Handle(ctx, req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, resp)

	case errors.Is(err, contractx.ErrUnknownIntent):
		// Not ours to answer; an empty fulfillment lets the platform's own
		// default response through.
		log.Debug().
			Str("intent", req.QueryResult.Intent.DisplayName).
			Msg("unhandled intent, deferring to platform")
		c.JSON(http.StatusOK, contractx.WebhookResponse{})

	case isBadInput(err):
		log.Warn().Err(err).
			Str("session", req.Session).
			Str("intent", req.QueryResult.Intent.DisplayName).
			Msg("rejected webhook turn")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		// Persistence-layer failure: the success reply and the error path are
		// mutually exclusive outcomes of a turn.
		log.Error().Err(err).
			Str("session", req.Session).
			Msg("fulfillment turn failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order could not be placed"})
	}
}

func isBadInput(err error) bool {
	return errors.Is(err, fulfillment.ErrInvalidSession) ||
		errors.Is(err, fulfillment.ErrInvalidIntent) ||
		errors.Is(err, contractx.ErrValidation) ||
		errors.Is(err, statex.ErrContextNotFound) ||
		errors.Is(err, statex.ErrMissingParameter) ||
		errors.Is(err, statex.ErrBadParameter)
}
