// Package service wires the turn pipeline: conversation state, emotion
// tagging, safety screen, classification, agent fan-out, merge, and
// persistence.
package service

import (
	"go.uber.org/zap"

	"github.com/soulsync/orchestrator/internal/agents"
	"github.com/soulsync/orchestrator/internal/conversation"
	"github.com/soulsync/orchestrator/internal/domain"
	"github.com/soulsync/orchestrator/internal/repository"
	"github.com/soulsync/orchestrator/internal/supervisor"
	"github.com/soulsync/orchestrator/policy"
)

// DefaultRoomID is used when a request names no room or an unknown one.
const DefaultRoomID = "general_support"

type Service struct {
	store        repository.Store
	rooms        map[string]domain.RoomConfig
	drafter      *agents.Drafter
	tagger       *agents.Tagger
	super        *supervisor.Supervisor
	convs        *conversation.Manager
	policyEngine *policy.Engine
	logger       *zap.Logger
}

func New(
	store repository.Store,
	rooms map[string]domain.RoomConfig,
	drafter *agents.Drafter,
	tagger *agents.Tagger,
	super *supervisor.Supervisor,
	policyEngine *policy.Engine,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:        store,
		rooms:        rooms,
		drafter:      drafter,
		tagger:       tagger,
		super:        super,
		convs:        conversation.NewManager(),
		policyEngine: policyEngine,
		logger:       logger,
	}
}

// Room resolves a room profile, falling back to the default room.
func (s *Service) Room(roomID string) domain.RoomConfig {
	if room, ok := s.rooms[roomID]; ok {
		return room
	}
	return s.rooms[DefaultRoomID]
}

// Rooms lists the configured room profiles.
func (s *Service) Rooms() []domain.RoomConfig {
	out := make([]domain.RoomConfig, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}
