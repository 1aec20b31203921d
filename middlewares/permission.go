package middlewares

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/lunch-vote/policy"
	"github.com/yeremiapane/lunch-vote/utils"
)

// Require evaluates preds against the current request and aborts with the
// first denial.
func Require(preds ...policy.Predicate) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := policy.Request{
			UserID:     CurrentUserID(c),
			APIVersion: c.GetHeader(policy.APIVersionHeader),
		}

		decision := policy.Evaluate(c.Request.Context(), req, preds...)
		if !decision.Allowed {
			utils.InfoLogger.WithFields(logrus.Fields{
				"path":    c.FullPath(),
				"user_id": req.UserID,
				"status":  decision.Status,
			}).Info("request denied by policy")
			utils.RespondError(c, decision.Status, errors.New(decision.Reason))
			c.Abort()
			return
		}
		c.Next()
	}
}
