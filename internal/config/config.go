package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup and injected into every component.
// Nothing reads the environment after MustLoad returns.
type Config struct {
	BotToken string
	AdminID  int64 // the single approver
	GroupID  int64 // shared-audience chat, 0 when not configured

	Timezone        string
	ApprovedSticker string // sent to the submitter on approval, optional
	GroupSticker    string // sent to the group on approval, optional

	DBPath     string
	StorageDir string
	LockPath   string

	SessionTimeout time.Duration
}

func MustLoad() Config {
	_ = godotenv.Load()

	bt := os.Getenv("BOT_TOKEN")
	if bt == "" {
		log.Fatal("BOT_TOKEN is required")
	}

	adminStr := os.Getenv("ADMIN_ID")
	if adminStr == "" {
		log.Fatal("ADMIN_ID is required")
	}
	adminID, err := strconv.ParseInt(adminStr, 10, 64)
	if err != nil {
		log.Fatalf("ADMIN_ID must be a numeric Telegram id: %v", err)
	}

	var groupID int64
	if g := os.Getenv("GROUP_ID"); g != "" {
		groupID, err = strconv.ParseInt(g, 10, 64)
		if err != nil {
			log.Fatalf("GROUP_ID must be a numeric chat id: %v", err)
		}
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = "Europe/Warsaw"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "bot.db"
	}
	storageDir := os.Getenv("STORAGE_DIR")
	if storageDir == "" {
		storageDir = "storage"
	}
	lockPath := os.Getenv("LOCK_PATH")
	if lockPath == "" {
		lockPath = "bot.lock"
	}

	timeout := 600 * time.Second
	if t := os.Getenv("SESSION_TIMEOUT"); t != "" {
		secs, err := strconv.Atoi(t)
		if err != nil || secs <= 0 {
			log.Fatalf("SESSION_TIMEOUT must be a positive number of seconds")
		}
		timeout = time.Duration(secs) * time.Second
	}

	return Config{
		BotToken:        bt,
		AdminID:         adminID,
		GroupID:         groupID,
		Timezone:        tz,
		ApprovedSticker: os.Getenv("APPROVED_STICKER_ID"),
		GroupSticker:    os.Getenv("GROUP_STICKER_ID"),
		DBPath:          dbPath,
		StorageDir:      storageDir,
		LockPath:        lockPath,
		SessionTimeout:  timeout,
	}
}
