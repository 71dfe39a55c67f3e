package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	apirest "github.com/ireantrader/server/api/rest"
	"github.com/ireantrader/server/config"
	dbadapter "github.com/ireantrader/server/db"
	"github.com/ireantrader/server/game/player"
	"github.com/ireantrader/server/game/session"
	"github.com/ireantrader/server/game/worldmap"
	mw "github.com/ireantrader/server/middleware"
	"github.com/ireantrader/server/model"
	"github.com/ireantrader/server/resource"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfgPath := "config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	// ---- Database ----
	db, err := dbadapter.Open(cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	logger.Info("DB initialized")

	// ---- Catalogs ----
	catalogs := resource.NewLoader(cfg.Data.GoodsPath, cfg.Data.EventsPath, cfg.Data.MapPath)
	if err := catalogs.Load(); err != nil {
		log.Fatalf("catalogs: %v", err)
	}
	logger.Info("catalogs loaded",
		zap.Int("goods", len(catalogs.Goods)),
		zap.Int("events", len(catalogs.Events)),
	)

	// ---- World map ----
	var worldMap *worldmap.Map
	if len(catalogs.MapRows) > 0 {
		worldMap, err = worldmap.Parse(catalogs.MapRows)
		if err != nil {
			log.Fatalf("map: %v", err)
		}
	} else {
		gen := worldmap.DefaultGenConfig()
		gen.Width = cfg.Game.MapWidth
		gen.Height = cfg.Game.MapHeight
		gen.Cities = cfg.Game.MapCities
		gen.Seed = cfg.Game.Seed
		worldMap = worldmap.Generate(gen)
		logger.Info("overworld generated",
			zap.Int("width", worldMap.Width()),
			zap.Int("height", worldMap.Height()),
			zap.Int("cities", len(worldMap.Cities())),
		)
	}
	if len(worldMap.Cities()) == 0 {
		log.Fatalf("map has no cities")
	}

	// ---- Randomness ----
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// ---- Session ----
	ref := &apirest.SessionRef{}
	startFn := func(p *player.Character) (*session.Session, error) {
		return session.New(p, worldMap, catalogs, db, rng, logger)
	}

	// A finalized character routes the session straight into the game.
	if payload, ok, err := model.GetSlot(db, model.SlotCharacter); err != nil {
		log.Fatalf("store: %v", err)
	} else if ok {
		var rec apirest.CharacterRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			log.Fatalf("character record is corrupt: %v", err)
		}
		p := &player.Character{
			Race:       rec.Race,
			Gender:     rec.Gender,
			Background: rec.Background,
			Name:       rec.Name,
			Language:   rec.Language,
			Alignment:  rec.Alignment,
			Stats:      rec.Stats,
			Gold:       cfg.Game.StartingGold,
		}
		sess, err := startFn(p)
		if err != nil {
			log.Fatalf("session: %v", err)
		}
		ref.Set(sess)
		logger.Info("session restored for finalized character", zap.String("name", p.Name))
	} else {
		logger.Info("no character record; awaiting character creation")
	}

	// ---- Gin HTTP Server ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(logger), mw.Recovery(logger))
	r.Use(mw.RateLimit(rate.Limit(cfg.Security.RateLimitRPS), cfg.Security.RateLimitBurst))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	charH := apirest.NewCharacterHandler(db, cfg.Game, ref, startFn)
	gameH := apirest.NewGameHandler(ref)
	cityH := apirest.NewCityHandler(ref)

	api := r.Group("/api")
	{
		api.GET("/character", charH.Get)
		api.POST("/character", charH.Create)

		gameG := api.Group("/game")
		gameG.GET("/state", gameH.State)
		gameG.GET("/map", gameH.MapView)
		gameG.POST("/move", gameH.Move)
		gameG.POST("/end-day", gameH.EndDay)
		gameG.GET("/event", gameH.Event)
		gameG.POST("/event/resolve", gameH.ResolveEvent)
		gameG.POST("/save", gameH.Save)
		gameG.POST("/load", gameH.Load)

		cityG := api.Group("/city")
		cityG.GET("/stock", cityH.Stock)
		cityG.POST("/buy", cityH.Buy)
		cityG.POST("/sell", cityH.Sell)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
