package gate

import (
	"context"
	"errors"

	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// IdentityProvider authenticates a credential and yields the stable
// identifier used as the participant record key. First-seen emails are
// provisioned rather than rejected; the event password checked by the
// access gate is the real admission control.
type IdentityProvider interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
}

type credential struct {
	UserID       string `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash []byte `bson:"passwordHash"`
}

// MongoIdentityProvider keeps credentials in their own collection, one per
// email, hashed with bcrypt.
type MongoIdentityProvider struct {
	credentials *mongo.Collection
}

func NewMongoIdentityProvider(client *mongo.Client, dbName string) *MongoIdentityProvider {
	return &MongoIdentityProvider{
		credentials: client.Database(dbName).Collection("credentials"),
	}
}

// Authenticate signs an existing credential in, or provisions a new one on
// first sight. A wrong password for a known email is a credential
// mismatch.
func (p *MongoIdentityProvider) Authenticate(ctx context.Context, email, password string) (string, error) {
	var cred credential
	err := p.credentials.FindOne(ctx, bson.M{"email": email}).Decode(&cred)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return p.provision(ctx, email, password)
	}
	if err != nil {
		return "", errs.Transport("failed to read credential", err)
	}

	if bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)) != nil {
		return "", errs.AuthorizationDenied("credential mismatch")
	}
	return cred.UserID, nil
}

func (p *MongoIdentityProvider) provision(ctx context.Context, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errs.Transport("failed to hash credential", err)
	}

	cred := credential{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := p.credentials.InsertOne(ctx, cred); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// concurrent first login won the insert; sign in against it
			return p.Authenticate(ctx, email, password)
		}
		return "", errs.Transport("failed to provision credential", err)
	}
	return cred.UserID, nil
}
