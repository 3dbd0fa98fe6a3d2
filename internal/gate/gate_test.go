package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/akhilrajvs/SquidEventWssService/internal/config"
	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	userIDs map[string]string
	err     error
}

func (f *fakeIdentity) Authenticate(ctx context.Context, email, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if id, ok := f.userIDs[email]; ok {
		return id, nil
	}
	return "uid-" + email, nil
}

type fakeParticipants struct {
	byEmail map[string]*model.Participant
	created []*model.Participant
}

func (f *fakeParticipants) GetByEmail(ctx context.Context, email string) (*model.Participant, error) {
	return f.byEmail[email], nil
}

func (f *fakeParticipants) Create(ctx context.Context, p *model.Participant) error {
	f.created = append(f.created, p)
	if f.byEmail == nil {
		f.byEmail = make(map[string]*model.Participant)
	}
	f.byEmail[p.Email] = p
	return nil
}

func testGate(identity IdentityProvider, store ParticipantStore) *AccessGate {
	cfg := &config.EventConfig{
		AdminEmails:       []string{"Boss@Event.com"},
		ParticipantEmails: []string{"player@event.com"},
	}
	return NewAccessGate(cfg, "venue-secret", identity, store)
}

func TestAuthorizeProvisionsOnFirstEntry(t *testing.T) {
	store := &fakeParticipants{}
	g := testGate(&fakeIdentity{}, store)

	verdict, err := g.Authorize(context.Background(), "  Player@Event.COM ", "venue-secret")
	require.NoError(t, err)

	assert.Equal(t, "player@event.com", verdict.Email)
	assert.Equal(t, model.RoleParticipant, verdict.Role)
	require.Len(t, store.created, 1)
	created := store.created[0]
	assert.False(t, created.IsAdmin)
	assert.False(t, created.Round2Completed)
	assert.False(t, created.ShapeLocked)
	assert.Zero(t, created.GlassStep)
}

func TestAuthorizeClassifiesAdmin(t *testing.T) {
	g := testGate(&fakeIdentity{}, &fakeParticipants{})

	verdict, err := g.Authorize(context.Background(), "boss@event.com", "venue-secret")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, verdict.Role)
}

func TestAuthorizeRoleComesFromStoredRecord(t *testing.T) {
	// record created before the email was added to the admin list:
	// no retroactive promotion
	store := &fakeParticipants{byEmail: map[string]*model.Participant{
		"boss@event.com": {UserID: "u1", Email: "boss@event.com", IsAdmin: false},
	}}
	g := testGate(&fakeIdentity{}, store)

	verdict, err := g.Authorize(context.Background(), "boss@event.com", "venue-secret")
	require.NoError(t, err)
	assert.Equal(t, model.RoleParticipant, verdict.Role)
	assert.Empty(t, store.created)
}

func TestAuthorizeRejections(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		identity IdentityProvider
	}{
		{"wrong event password", "player@event.com", "nope", &fakeIdentity{}},
		{"email on no allow-list", "stranger@event.com", "venue-secret", &fakeIdentity{}},
		{"credential mismatch", "player@event.com", "venue-secret", &fakeIdentity{err: errs.AuthorizationDenied("credential mismatch")}},
		{"empty email", "", "venue-secret", &fakeIdentity{}},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGate(tt.identity, &fakeParticipants{})
			_, err := g.Authorize(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.KindAuthorizationDenied))
			messages = append(messages, err.Error())
		})
	}

	// every rejection reads the same, so callers cannot probe which
	// allow-list failed
	for i := 1; i < len(messages); i++ {
		assert.Equal(t, messages[0], messages[i])
	}
}

func TestAuthorizeSurfacesTransportErrors(t *testing.T) {
	identity := &fakeIdentity{err: errs.Transport("store down", errors.New("dial refused"))}
	g := testGate(identity, &fakeParticipants{})

	_, err := g.Authorize(context.Background(), "player@event.com", "venue-secret")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindTransport))
}
