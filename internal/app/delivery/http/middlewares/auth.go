package middlewares

import (
	"context"
	"errors"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/exceptions"
	"hospital-lab-service/internal/pkg/utils"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, constvars.HeaderBearerPrefix)
		sessionID, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		sessionData, err := m.SessionService.GetSessionData(ctx, sessionID)
		if err != nil {
			m.Log.Error("Middlewares.Authenticate error getting session data",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			if errors.Is(err, context.DeadlineExceeded) {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerDeadlineExceeded(err))
				return
			}
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		session, err := m.SessionService.ParseSessionData(ctx, sessionData)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		if session.IsExpired(time.Now()) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidSession(errors.New("session expired")))
			return
		}

		if session.SessionID == "" {
			session.SessionID = sessionID
		}

		reqCtx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, sessionData)
		reqCtx = utils.SetPrincipal(reqCtx, session.Principal())
		next.ServeHTTP(w, r.WithContext(reqCtx))
	})
}
