package main

import (
	"context"
	"log"

	adminpkg "github.com/akhilrajvs/SquidEventWssService/internal/admin"
	"github.com/akhilrajvs/SquidEventWssService/internal/config"
	"github.com/akhilrajvs/SquidEventWssService/internal/db"
	"github.com/akhilrajvs/SquidEventWssService/internal/gate"
	"github.com/akhilrajvs/SquidEventWssService/internal/global"
	"github.com/akhilrajvs/SquidEventWssService/internal/handlers"
	"github.com/akhilrajvs/SquidEventWssService/internal/jwt"
	"github.com/akhilrajvs/SquidEventWssService/internal/leaderboard"
	"github.com/akhilrajvs/SquidEventWssService/internal/repo"
	localstate "github.com/akhilrajvs/SquidEventWssService/internal/state"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss"
	wsshandler "github.com/akhilrajvs/SquidEventWssService/internal/wss/handlers"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/middleware"
	wsstypes "github.com/akhilrajvs/SquidEventWssService/internal/wss/types"
)

func main() {
	cfg := config.LoadConfig()

	eventCfg, err := config.LoadEventConfig(cfg.EventConfigPath)
	if err != nil {
		log.Fatalf("event config: %v", err)
	}
	if cfg.EventPassword == "" {
		log.Fatal("EVENTPASSWORD must be set")
	}

	mongoClient, err := db.InitMongo(&cfg)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	redisClient := db.NewRedisClient(cfg)
	psqlDB, err := db.InitPsql(&cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}

	events := repo.NewEventStateRepository(mongoClient, cfg.MongoDBName)
	participants := repo.NewParticipantRepository(mongoClient, cfg.MongoDBName)
	archive, err := repo.NewArchiveRepository(psqlDB)
	if err != nil {
		log.Fatalf("archive: %v", err)
	}

	ctx := context.Background()
	if err := events.EnsureCreated(ctx); err != nil {
		log.Fatalf("event state init: %v", err)
	}

	lb := leaderboard.NewManager(redisClient)
	if all, err := participants.All(ctx); err != nil {
		log.Printf("leaderboard rebuild skipped: %v", err)
	} else if err := lb.Rebuild(ctx, all); err != nil {
		log.Printf("leaderboard rebuild failed: %v", err)
	}

	jwtManager := jwt.NewJWTManager(cfg.JWTSecret)
	identity := gate.NewMongoIdentityProvider(mongoClient, cfg.MongoDBName)
	accessGate := gate.NewAccessGate(eventCfg, cfg.EventPassword, identity, participants)
	commandSurface := adminpkg.NewCommandSurface(events, participants, lb)
	local := localstate.NewLocalStateManager()

	app := &global.State{
		EventCfg:     eventCfg,
		Events:       events,
		Participants: participants,
		Archive:      archive,
		Leaderboard:  lb,
		Local:        local,
		Gate:         accessGate,
		Admin:        commandSurface,
		JwtManager:   jwtManager,
	}

	wsState := &wsstypes.State{
		EventCfg:     eventCfg,
		Events:       events,
		Participants: participants,
		Local:        local,
		Gate:         accessGate,
		Admin:        commandSurface,
		Leaderboard:  lb,
		JwtManager:   jwtManager,
	}

	auth := middleware.NewAuthMiddleware(jwtManager)
	dispatcher := wss.NewDispatcher()
	dispatcher.Register(wsstypes.JOIN_EVENT, wsshandler.NewJoinEventHandler(auth))
	dispatcher.Register(wsstypes.REFETCH_STATE, wsshandler.NewRefetchStateHandler(auth))
	dispatcher.Register(wsstypes.LOCK_SHAPE, wsshandler.NewLockShapeHandler(auth))
	dispatcher.Register(wsstypes.ADVANCE_BRIDGE, wsshandler.NewAdvanceBridgeHandler(auth))

	wss.NewSyncer(wsState).Run(ctx)

	if err := handlers.StartServer(":"+cfg.HTTPPort, app, dispatcher, wsState); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
