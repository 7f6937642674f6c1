package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/IvanBondariev/telegram-bot/internal/bot"
	"github.com/IvanBondariev/telegram-bot/internal/config"
	"github.com/IvanBondariev/telegram-bot/internal/db"
	"github.com/IvanBondariev/telegram-bot/internal/lock"
	"github.com/IvanBondariev/telegram-bot/internal/mirror"
	"github.com/IvanBondariev/telegram-bot/internal/repo"
)

func main() {
	cfg := config.MustLoad()

	// Exactly one instance: take the lock before touching any state.
	fl, err := lock.Acquire(cfg.LockPath)
	if err != nil {
		log.Fatalf("single instance: %v", err)
	}
	defer func() { _ = fl.Unlock() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gdb := db.MustConnect(cfg.DBPath)

	store := mirror.New(cfg.StorageDir)
	if err := store.EnsureDirs(); err != nil {
		log.Fatalf("mirror storage: %v", err)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("bot init: %v", err)
	}
	botAPI.Debug = false

	rUsers := repo.NewUsers(gdb)
	rProfits := repo.NewProfits(gdb)
	rSessions := repo.NewSessions(gdb)

	h := bot.NewHandler(botAPI, cfg, rUsers, rProfits, rSessions, store)

	// Graceful shutdown
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	// Dialog inactivity timeouts
	go h.RunSessionSweeper(ctx, 30*time.Second)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	log.Printf("ProfitBot started as @%s", botAPI.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			log.Println("shutdown")
			return
		case upd := <-updates:
			h.HandleUpdate(ctx, upd)
		}
	}
}
