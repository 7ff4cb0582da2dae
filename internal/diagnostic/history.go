package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// historyMessageCap bounds how much transcript reaches the prompt.
const historyMessageCap = 20

// HistoryLoader fetches the prior diagnostic conversation for a work
// order as role-labeled lines.
type HistoryLoader interface {
	LoadConversationHistory(workOrderID uuid.UUID) (string, error)
}

type GormHistoryLoader struct {
	db *gorm.DB
}

func NewGormHistoryLoader(db *gorm.DB) *GormHistoryLoader {
	return &GormHistoryLoader{db: db}
}

// LoadConversationHistory returns the most recent session's messages in
// creation order, capped at the most recent 20. No session means an
// empty transcript, not an error.
func (l *GormHistoryLoader) LoadConversationHistory(workOrderID uuid.UUID) (string, error) {
	var session models.ChatSession
	err := l.db.Where("work_order_id = ?", workOrderID).
		Order("created_at DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load chat session: %w", err)
	}

	var messages []models.ChatMessage
	if err := l.db.Where("session_id = ?", session.ID).
		Order("created_at DESC").
		Limit(historyMessageCap).
		Find(&messages).Error; err != nil {
		return "", fmt.Errorf("failed to load chat messages: %w", err)
	}

	// fetched newest-first, rendered oldest-first
	lines := make([]string, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		lines = append(lines, messages[i].Role+": "+messages[i].Content)
	}
	return strings.Join(lines, "\n"), nil
}
