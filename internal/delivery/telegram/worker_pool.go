package telegram

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// workerPool yangilanishlarni cheklangan sondagi worker'larda bajaradi.
// Har bir worker o'z navbatiga ega, foydalanuvchi doim bitta navbatga tushadi,
// shuning uchun uning yangilanishlari kelgan tartibda bajariladi.
type workerPool struct {
	queues      []chan tgbotapi.Update
	workerCount int
	handler     *BotHandler
	dispatch    func(context.Context, tgbotapi.Update)
	wg          sync.WaitGroup

	// foydalanuvchi bo'yicha cheklov
	rateLimiter   map[int64]*userRateLimit
	rateLimiterMu sync.Mutex
	now           func() time.Time
}

type userRateLimit struct {
	lastRequest  time.Time
	requestCount int
}

const (
	maxRequestsPerSecond   = 3
	requestQueueSize       = 100 // har bir worker navbati
	defaultWorkerCount     = 16
	rateLimiterCleanupTime = 5 * time.Minute
	rateLimiterMaxIdleTime = 10 * time.Minute
	maxRateLimitersInCache = 10000
)

func newWorkerPool(handler *BotHandler, workerCount int) *workerPool {
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	wp := &workerPool{
		queues:      make([]chan tgbotapi.Update, workerCount),
		workerCount: workerCount,
		handler:     handler,
		rateLimiter: make(map[int64]*userRateLimit),
		now:         time.Now,
	}
	for i := range wp.queues {
		wp.queues[i] = make(chan tgbotapi.Update, requestQueueSize)
	}
	if handler != nil {
		wp.dispatch = handler.dispatch
	}
	return wp
}

func (wp *workerPool) start(ctx context.Context) {
	log.Printf("🚀 %d ta worker ishga tushdi", wp.workerCount)
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
	go wp.cleanupRateLimits(ctx)
}

func (wp *workerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-wp.queues[id]:
			if !ok {
				return
			}
			userID, _ := updateOwner(upd)
			if userID != 0 && !wp.throttle(ctx, userID) {
				return
			}
			wp.dispatch(ctx, upd)
		}
	}
}

// shard foydalanuvchi navbatining indeksi
func (wp *workerPool) shard(userID int64) int {
	return int(uint64(userID) % uint64(wp.workerCount))
}

// updateOwner yangilanish yuboruvchisi va chat
func updateOwner(upd tgbotapi.Update) (userID, chatID int64) {
	switch {
	case upd.Message != nil:
		if upd.Message.From != nil {
			userID = upd.Message.From.ID
		}
		if upd.Message.Chat != nil {
			chatID = upd.Message.Chat.ID
		}
	case upd.CallbackQuery != nil:
		if upd.CallbackQuery.From != nil {
			userID = upd.CallbackQuery.From.ID
		}
		if upd.CallbackQuery.Message != nil && upd.CallbackQuery.Message.Chat != nil {
			chatID = upd.CallbackQuery.Message.Chat.ID
		}
	}
	return userID, chatID
}

func (wp *workerPool) reject(ctx context.Context, userID, chatID int64, text string) {
	if chatID == 0 || wp.handler == nil {
		return
	}
	wp.handler.say(chatID, wp.handler.lang(ctx, userID), text, nil)
}

// throttle limitdan oshgan yangilanishni tashlamaydi, oyna yangilanguncha kutadi.
// ctx bekor qilinsa false.
func (wp *workerPool) throttle(ctx context.Context, userID int64) bool {
	for {
		wait := wp.reserve(userID)
		if wait <= 0 {
			return true
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}

// reserve sekundiga maxRequestsPerSecond tagacha ruxsat beradi,
// aks holda joriy oyna tugashigacha qolgan vaqtni qaytaradi
func (wp *workerPool) reserve(userID int64) time.Duration {
	wp.rateLimiterMu.Lock()
	defer wp.rateLimiterMu.Unlock()

	now := wp.now()
	limiter, ok := wp.rateLimiter[userID]
	if !ok {
		wp.rateLimiter[userID] = &userRateLimit{lastRequest: now, requestCount: 1}
		return 0
	}
	elapsed := now.Sub(limiter.lastRequest)
	if elapsed >= time.Second {
		limiter.lastRequest = now
		limiter.requestCount = 1
		return 0
	}
	if limiter.requestCount >= maxRequestsPerSecond {
		log.Printf("⚠️ So'rovlar cheklovi: user=%d, %v kutiladi", userID, time.Second-elapsed)
		return time.Second - elapsed
	}
	limiter.requestCount++
	return 0
}

func (wp *workerPool) cleanupRateLimits(ctx context.Context) {
	ticker := time.NewTicker(rateLimiterCleanupTime)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			wp.pruneRateLimits()
		}
	}
}

// pruneRateLimits harakatsizlarni, keyin kerak bo'lsa eng eskilarini o'chiradi
func (wp *workerPool) pruneRateLimits() int {
	wp.rateLimiterMu.Lock()
	defer wp.rateLimiterMu.Unlock()

	now := wp.now()
	removed := 0
	for userID, l := range wp.rateLimiter {
		if now.Sub(l.lastRequest) > rateLimiterMaxIdleTime {
			delete(wp.rateLimiter, userID)
			removed++
		}
	}
	if extra := len(wp.rateLimiter) - maxRateLimitersInCache; extra > 0 {
		type userTime struct {
			userID int64
			last   time.Time
		}
		users := make([]userTime, 0, len(wp.rateLimiter))
		for id, l := range wp.rateLimiter {
			users = append(users, userTime{id, l.lastRequest})
		}
		sort.Slice(users, func(i, j int) bool { return users[i].last.Before(users[j].last) })
		for _, u := range users[:extra] {
			delete(wp.rateLimiter, u.userID)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("🧹 Rate limiter tozalandi: %d ta", removed)
	}
	return removed
}

// submit yangilanishni yuboruvchining navbatiga qo'yadi, navbat to'lgan bo'lsa rad etadi
func (wp *workerPool) submit(ctx context.Context, upd tgbotapi.Update) bool {
	userID, chatID := updateOwner(upd)
	queue := wp.queues[wp.shard(userID)]
	select {
	case queue <- upd:
		return true
	default:
		log.Printf("⚠️ Navbat to'ldi (%d/%d), user=%d", len(queue), requestQueueSize, userID)
		wp.reject(ctx, userID, chatID, "⚠️ Bot juda band. Iltimos, bir oz kutib turing.")
		return false
	}
}

func (wp *workerPool) shutdown() {
	pending := 0
	for _, q := range wp.queues {
		pending += len(q)
		close(q)
	}
	log.Printf("Worker pool to'xtatilmoqda, navbatda %d ta yangilanish", pending)
	wp.wg.Wait()
}
