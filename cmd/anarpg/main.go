// Package main is a command-line walkthrough of the action-resolution engine.
// It loads ability content, builds a character and logs the cooldowns,
// durations and success chances the engine computes for it.
package main

import (
	"flag"
	"log"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/anarpg/internal/config"
	"github.com/cory-johannsen/anarpg/internal/game/ability"
	"github.com/cory-johannsen/anarpg/internal/game/action"
	"github.com/cory-johannsen/anarpg/internal/game/character"
	"github.com/cory-johannsen/anarpg/internal/game/stats"
	"github.com/cory-johannsen/anarpg/internal/game/timing"
	"github.com/cory-johannsen/anarpg/internal/observability"
	"github.com/cory-johannsen/anarpg/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty uses defaults")
	name := flag.String("name", "Lev", "character name")
	class := flag.String("class", "Gouine motarde", "character class tags")
	attr := flag.String("attribute", "badassness", "attribute gating the planned actions: badassness, skill, swag")
	difficulty := flag.Int("difficulty", 2, "difficulty of the planned actions")
	flag.Parse()

	var (
		cfg config.Config
		err error
	)
	if *configPath == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(*configPath)
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, zap.String("tool", "anarpg"))
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	curve, err := stats.NewCurve(cfg.Engine.ProbabilityHalf)
	if err != nil {
		logger.Fatal("building probability curve", zap.Error(err))
	}
	gate, err := action.ParseAttribute(*attr)
	if err != nil {
		logger.Fatal("parsing attribute", zap.Error(err))
	}
	if *difficulty < math.MinInt16 || *difficulty > math.MaxInt16 {
		logger.Fatal("difficulty out of range", zap.Int("difficulty", *difficulty))
	}

	var hooks ability.Hooks
	if cfg.Content.ScriptsDir != "" {
		mgr := scripting.NewManager(curve, cfg.Scripting.InstructionLimit, logger)
		if err := mgr.Load(cfg.Content.ScriptsDir); err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
		defer mgr.Close()
		hooks = mgr
	}

	reg, err := ability.LoadDirectory(cfg.Content.AbilitiesDir)
	if err != nil {
		logger.Fatal("loading abilities", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.String("abilities_dir", cfg.Content.AbilitiesDir),
		zap.Int("abilities", reg.Len()),
		zap.Bool("scripting", hooks != nil),
	)

	c := character.New(*name, *class)
	for _, def := range reg.All() {
		a, err := reg.New(def.ID, hooks)
		if err != nil {
			logger.Fatal("building ability", zap.String("ability", def.ID), zap.Error(err))
		}
		c.AddAbility(a)
	}
	logger.Info("character created",
		zap.String("id", c.ID),
		zap.String("name", c.Name),
		zap.Strings("classes", c.Classes()),
		zap.Any("stats", c.Stats),
	)

	// A cooldown that badassness wears down, against bare, baseline and
	// buffed stats.
	cooldown := timing.New().WithFixed(1.0).WithBadassness(1.0)
	badass := stats.New()
	badass.Badassness = 20
	logger.Info("cooldown",
		zap.Float32("bare", cooldown.Cooldown(stats.Zero())),
		zap.Float32("default", cooldown.Cooldown(stats.New())),
		zap.Float32("badass", cooldown.Cooldown(badass)),
	)

	planner := action.NewPlanner(curve, logger)
	ests, err := planner.PlanAll(c, gate, int16(*difficulty))
	if err != nil {
		logger.Fatal("planning actions", zap.Error(err))
	}
	for _, est := range ests {
		logger.Info("action",
			zap.String("ability", est.Ability),
			zap.Stringer("attribute", gate),
			zap.Int("difficulty", *difficulty),
			zap.Float32("probability", est.Probability),
			zap.Float32("duration", est.Duration),
			zap.Float32("cooldown", est.Cooldown),
		)
	}

	logger.Info("done", zap.Duration("elapsed", time.Since(start)))
}
