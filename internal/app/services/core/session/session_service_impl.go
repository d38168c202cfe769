package session

import (
	"context"
	"errors"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
)

var (
	sessionServiceInstance contracts.SessionService
	onceSessionService     sync.Once
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
}

func NewSessionService(redisRepository contracts.RedisRepository) contracts.SessionService {
	onceSessionService.Do(func() {
		sessionServiceInstance = &sessionService{
			RedisRepository: redisRepository,
		}
	})
	return sessionServiceInstance
}

func (svc *sessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	session := new(models.Session)
	err := json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrInvalidSession(err)
	}
	if session.UserID == "" || session.Role == "" {
		return nil, exceptions.ErrInvalidSession(errors.New("session missing user id or role"))
	}
	return session, nil
}

func (svc *sessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if sessionData == "" {
		return "", exceptions.ErrInvalidSession(errors.New("session not found"))
	}
	return sessionData, nil
}
