package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/akhilrajvs/SquidEventWssService/internal/model"
)

// BridgeLinks maps each of the five bridge steps to an external
// destination link, one list per choice.
type BridgeLinks struct {
	Safe  []string `json:"safe"`
	Risky []string `json:"risky"`
}

// EventConfig is the static, read-only event definition loaded once at
// process start. It is never mutated afterwards.
type EventConfig struct {
	EventName         string                    `json:"eventName"`
	AdminEmails       []string                  `json:"adminEmails"`
	ParticipantEmails []string                  `json:"participantEmails"`
	Round1Forms       []string                  `json:"round1Forms"`
	Round2Shapes      map[model.ShapeKey]string `json:"round2Shapes"`
	BridgeLinks       BridgeLinks               `json:"bridgeLinks"`
}

// LoadEventConfig reads and validates the event definition file.
func LoadEventConfig(path string) (*EventConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event config: %w", err)
	}

	var cfg EventConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse event config: %w", err)
	}

	if len(cfg.Round1Forms) != model.MaxFormIndex {
		return nil, fmt.Errorf("event config needs %d round1 forms, got %d", model.MaxFormIndex, len(cfg.Round1Forms))
	}
	if len(cfg.BridgeLinks.Safe) != model.BridgeSteps || len(cfg.BridgeLinks.Risky) != model.BridgeSteps {
		return nil, fmt.Errorf("event config needs %d bridge links per choice", model.BridgeSteps)
	}
	for _, shape := range model.Shapes {
		if cfg.Round2Shapes[shape] == "" {
			return nil, fmt.Errorf("event config missing link for shape %q", shape)
		}
	}

	return &cfg, nil
}

// NormalizeEmail lowers and trims an email the same way everywhere the
// allow-lists are consulted.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAdminEmail reports membership in the admin allow-list.
func (c *EventConfig) IsAdminEmail(email string) bool {
	email = NormalizeEmail(email)
	for _, e := range c.AdminEmails {
		if NormalizeEmail(e) == email {
			return true
		}
	}
	return false
}

// IsAllowedEmail reports membership in either allow-list.
func (c *EventConfig) IsAllowedEmail(email string) bool {
	if c.IsAdminEmail(email) {
		return true
	}
	email = NormalizeEmail(email)
	for _, e := range c.ParticipantEmails {
		if NormalizeEmail(e) == email {
			return true
		}
	}
	return false
}

// ShapeLink returns the external challenge link for a locked shape.
func (c *EventConfig) ShapeLink(shape model.ShapeKey) (string, bool) {
	link, ok := c.Round2Shapes[shape]
	return link, ok
}

// BridgeLink returns the destination for the given choice at a zero-based
// step index.
func (c *EventConfig) BridgeLink(choice model.BridgeChoice, stepIndex int) (string, bool) {
	if stepIndex < 0 || stepIndex >= model.BridgeSteps {
		return "", false
	}
	if choice == model.ChoiceSafe {
		return c.BridgeLinks.Safe[stepIndex], true
	}
	return c.BridgeLinks.Risky[stepIndex], true
}
