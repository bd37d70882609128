package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soulsync/orchestrator/internal/domain"
)

// roomsFile is the YAML shape of a room-profile override file.
type roomsFile struct {
	Rooms []domain.RoomConfig `yaml:"rooms"`
}

// DefaultRooms returns the built-in room profiles. Weights are relative
// priorities per agent; they need not sum to 1.
func DefaultRooms() map[string]domain.RoomConfig {
	rooms := []domain.RoomConfig{
		{
			RoomID: "general_support",
			Style:  domain.RoomStyleEmpathetic,
			Weights: map[string]float64{
				"listener": 0.7, "cognitive": 0.2, "mindfulness": 0.1,
			},
		},
		{
			RoomID: "relationship_support",
			Style:  domain.RoomStyleRelationshipFocused,
			Weights: map[string]float64{
				"listener": 0.6, "cognitive": 0.3, "mindfulness": 0.1,
			},
		},
		{
			RoomID: "family_support",
			Style:  domain.RoomStyleSystemic,
			Weights: map[string]float64{
				"listener": 0.4, "cognitive": 0.2, "mindfulness": 0.1, "family_conflict": 0.5,
			},
		},
		{
			RoomID: "grief_support",
			Style:  domain.RoomStyleGriefFocused,
			Weights: map[string]float64{
				"listener": 0.8, "cognitive": 0.1, "mindfulness": 0.1,
			},
		},
		{
			RoomID: "trauma_support",
			Style:  domain.RoomStyleTraumaInformed,
			Weights: map[string]float64{
				"listener": 0.6, "cognitive": 0.1, "mindfulness": 0.3,
			},
		},
		{
			RoomID: "crisis_support",
			Style:  domain.RoomStyleCrisis,
			Weights: map[string]float64{
				"listener": 0.8, "cognitive": 0.0, "mindfulness": 0.3,
			},
		},
	}

	byID := make(map[string]domain.RoomConfig, len(rooms))
	for _, r := range rooms {
		byID[r.RoomID] = r
	}
	return byID
}

// LoadRooms returns the room profiles, overlaying any rooms defined in the
// YAML file at path on top of the defaults. An empty path means defaults
// only.
func LoadRooms(path string) (map[string]domain.RoomConfig, error) {
	rooms := DefaultRooms()
	if path == "" {
		return rooms, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rooms file: %w", err)
	}

	var parsed roomsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse rooms file: %w", err)
	}

	for _, r := range parsed.Rooms {
		if r.RoomID == "" {
			return nil, fmt.Errorf("rooms file: entry missing room_id")
		}
		rooms[r.RoomID] = r
	}
	return rooms, nil
}
