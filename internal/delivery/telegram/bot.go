package telegram

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/constants"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
	"github.com/Samandarmister/Firmauz-bot/internal/usecase"
)

// botAPI Telegram klientining bot ishlatadigan qismi (*tgbotapi.BotAPI)
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// Deps bot handler bog'liqliklari
type Deps struct {
	Users   repository.UserRepository
	Firms   usecase.FirmUseCase
	Reports usecase.ReportUseCase
	Uploads usecase.UploadUseCase
	Docs    usecase.DocumentUseCase
	Access  usecase.AccessUseCase
	Layout  usecase.Layout
	Admins  []int64

	JanitorInterval time.Duration
	TempMaxAge      time.Duration
	// Workers parallel worker'lar soni (0 bo'lsa standart)
	Workers int
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot      botAPI
	token    string
	username string

	users   repository.UserRepository
	firms   usecase.FirmUseCase
	reports usecase.ReportUseCase
	uploads usecase.UploadUseCase
	docs    usecase.DocumentUseCase
	access  usecase.AccessUseCase
	layout  usecase.Layout

	admins   map[int64]bool
	sessions *sessionStore

	langMu    sync.RWMutex
	langCache map[int64]entity.Language

	janitorInterval time.Duration
	tempMaxAge      time.Duration
	workers         int

	httpClient *http.Client
	// download fayl ID bo'yicha faylni dst ga yozadi
	download func(ctx context.Context, fileID, dst string) error
	now      func() time.Time
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(token string, deps Deps) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	h := newBotHandler(bot, deps)
	h.token = token
	h.username = bot.Self.UserName
	return h, nil
}

func newBotHandler(api botAPI, deps Deps) *BotHandler {
	admins := make(map[int64]bool, len(deps.Admins))
	for _, id := range deps.Admins {
		admins[id] = true
	}
	if deps.JanitorInterval <= 0 {
		deps.JanitorInterval = constants.DefaultJanitorInterval
	}
	if deps.TempMaxAge <= 0 {
		deps.TempMaxAge = constants.DefaultTempMaxAge
	}
	h := &BotHandler{
		bot:             api,
		users:           deps.Users,
		firms:           deps.Firms,
		reports:         deps.Reports,
		uploads:         deps.Uploads,
		docs:            deps.Docs,
		access:          deps.Access,
		layout:          deps.Layout,
		admins:          admins,
		sessions:        newSessionStore(),
		langCache:       make(map[int64]entity.Language),
		janitorInterval: deps.JanitorInterval,
		tempMaxAge:      deps.TempMaxAge,
		workers:         deps.Workers,
		httpClient:      &http.Client{Timeout: 2 * time.Minute},
		now:             time.Now,
	}
	h.download = h.downloadFile
	return h
}

// GetBotUsername returns the bot's username from Telegram API state.
func (h *BotHandler) GetBotUsername() string {
	return h.username
}

// ActiveSessions tugallanmagan suhbatlar soni
func (h *BotHandler) ActiveSessions() int {
	return h.sessions.count()
}

func (h *BotHandler) isAdmin(userID int64) bool {
	return h.admins[userID]
}
