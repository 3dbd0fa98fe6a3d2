package gate

import (
	"context"
	"log"

	"github.com/akhilrajvs/SquidEventWssService/internal/config"
	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/akhilrajvs/SquidEventWssService/internal/model"
)

// ParticipantStore is the slice of the participant repository the gate
// needs for first-login provisioning.
type ParticipantStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Participant, error)
	Create(ctx context.Context, p *model.Participant) error
}

// rejection is deliberately identical for a wrong event password, an email
// absent from both allow-lists, and a credential mismatch, so a failed
// attempt cannot probe who is registered.
const rejectionMessage = "invalid email or event password"

// Verdict is the result of a successful authorization.
type Verdict struct {
	UserID string
	Email  string
	Role   model.Role
}

// AccessGate validates whether an identity may enter the event and
// classifies it as admin or participant. On first success it provisions
// the participant record with isAdmin fixed from allow-list membership at
// creation time; later allow-list edits never retroactively promote an
// existing record.
type AccessGate struct {
	cfg           *config.EventConfig
	eventPassword string
	identity      IdentityProvider
	participants  ParticipantStore
}

func NewAccessGate(cfg *config.EventConfig, eventPassword string, identity IdentityProvider, participants ParticipantStore) *AccessGate {
	return &AccessGate{
		cfg:           cfg,
		eventPassword: eventPassword,
		identity:      identity,
		participants:  participants,
	}
}

// Authorize runs the full admission check: shared secret, allow-lists,
// identity provider, then record provisioning.
func (g *AccessGate) Authorize(ctx context.Context, email, eventPassword string) (*Verdict, error) {
	email = config.NormalizeEmail(email)
	if email == "" || eventPassword == "" {
		return nil, errs.AuthorizationDenied(rejectionMessage)
	}

	if eventPassword != g.eventPassword {
		log.Printf("[Gate] wrong event password for %s", email)
		return nil, errs.AuthorizationDenied(rejectionMessage)
	}

	if !g.cfg.IsAllowedEmail(email) {
		log.Printf("[Gate] email not on any allow-list: %s", email)
		return nil, errs.AuthorizationDenied(rejectionMessage)
	}

	userID, err := g.identity.Authenticate(ctx, email, eventPassword)
	if err != nil {
		if errs.Is(err, errs.KindTransport) {
			return nil, err
		}
		log.Printf("[Gate] identity rejected %s: %v", email, err)
		return nil, errs.AuthorizationDenied(rejectionMessage)
	}

	p, err := g.ensureParticipant(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	return &Verdict{UserID: userID, Email: p.Email, Role: p.Role()}, nil
}

// ensureParticipant creates the record on first successful entry. Role is
// read back from the stored record, not the current allow-list.
func (g *AccessGate) ensureParticipant(ctx context.Context, userID, email string) (*model.Participant, error) {
	existing, err := g.participants.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	p := &model.Participant{
		UserID:  userID,
		Email:   email,
		IsAdmin: g.cfg.IsAdminEmail(email),
	}
	if err := g.participants.Create(ctx, p); err != nil {
		return nil, err
	}
	log.Printf("[Gate] provisioned participant %s (admin=%v)", email, p.IsAdmin)
	return p, nil
}
