package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/SundayYogurt/inventory_service/internal/interfaces"
	"github.com/SundayYogurt/inventory_service/internal/repository"
	"github.com/google/uuid"
)

type AuditService interface {
	// Record appends one entry attributed to the acting user. It must only
	// be called after the corresponding mutation has been committed.
	Record(actor domain.User, action domain.LogAction, description, targetCode string, changes []domain.FieldChange) error
	List() ([]domain.Log, error)
}

type auditService struct {
	logRepo  repository.LogRepository
	producer interfaces.ProducerHandler
}

func NewAuditService(logRepo repository.LogRepository, producer interfaces.ProducerHandler) AuditService {
	return &auditService{logRepo: logRepo, producer: producer}
}

func (s *auditService) Record(actor domain.User, action domain.LogAction, description, targetCode string, changes []domain.FieldChange) error {
	entry := domain.Log{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UnixMilli(),
		UserID:      actor.ID,
		UserEmail:   actor.Email,
		Action:      action,
		Description: description,
		TargetCode:  targetCode,
		Changes:     changes,
	}

	if err := s.logRepo.Append(entry); err != nil {
		return err
	}

	// Best effort: the entry is committed, streaming failures only log.
	if s.producer != nil {
		payload, err := json.Marshal(entry)
		if err == nil {
			if err := s.producer.PublishMessage([]byte(string(action)), payload); err != nil {
				log.Printf("publish audit entry error: %v", err)
			}
		}
	}
	return nil
}

// List returns entries newest first.
func (s *auditService) List() ([]domain.Log, error) {
	logs, err := s.logRepo.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Log, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		out = append(out, logs[i])
	}
	return out, nil
}
