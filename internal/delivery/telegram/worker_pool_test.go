package telegram

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
)

func TestRateLimiterReserve(t *testing.T) {
	wp := newWorkerPool(nil, 1)
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	wp.now = func() time.Time { return now }

	for i := 0; i < maxRequestsPerSecond; i++ {
		if wait := wp.reserve(42); wait != 0 {
			t.Fatalf("%d-so'rov darhol o'tishi kerak, kutish=%v", i+1, wait)
		}
	}
	now = now.Add(300 * time.Millisecond)
	if wait := wp.reserve(42); wait != 700*time.Millisecond {
		t.Errorf("limitdan oshgan so'rov oyna oxirigacha kutishi kerak, natija=%v", wait)
	}
	if wait := wp.reserve(43); wait != 0 {
		t.Error("boshqa foydalanuvchi cheklanmasligi kerak")
	}

	now = now.Add(700 * time.Millisecond)
	if wait := wp.reserve(42); wait != 0 {
		t.Errorf("bir sekunddan keyin hisob yangilanishi kerak, kutish=%v", wait)
	}
}

func TestThrottleStopsOnCancel(t *testing.T) {
	wp := newWorkerPool(nil, 1)
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	wp.now = func() time.Time { return now }
	for i := 0; i < maxRequestsPerSecond; i++ {
		wp.reserve(42)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if wp.throttle(ctx, 42) {
		t.Error("bekor qilingan kontekstda throttle false qaytarishi kerak")
	}
}

func TestPruneRateLimits(t *testing.T) {
	wp := newWorkerPool(nil, 1)
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	wp.now = func() time.Time { return now }
	wp.reserve(1)
	wp.reserve(2)

	now = now.Add(rateLimiterMaxIdleTime + time.Minute)
	wp.reserve(3)
	if got := wp.pruneRateLimits(); got != 2 {
		t.Errorf("2 ta harakatsiz limiter o'chirilishi kerak, natija=%d", got)
	}
	if _, ok := wp.rateLimiter[3]; !ok {
		t.Error("faol limiter saqlanishi kerak")
	}
}

func TestWorkerPoolDispatches(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wp := newWorkerPool(env.h, 2)
	wp.start(ctx)
	ok := wp.submit(ctx, tgbotapi.Update{Message: &tgbotapi.Message{
		From:     &tgbotapi.User{ID: testOwner},
		Chat:     &tgbotapi.Chat{ID: testOwner},
		Text:     "/start",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
	}})
	if !ok {
		t.Fatal("navbat bo'sh, yangilanish qabul qilinishi kerak")
	}
	wp.shutdown()
	if env.bot.last() == "" {
		t.Error("/start ga javob yuborilmadi")
	}
}

func TestWorkerPoolKeepsUserOrder(t *testing.T) {
	wp := newWorkerPool(nil, 4)
	var clockMu sync.Mutex
	clock := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	wp.now = func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}

	var mu sync.Mutex
	seen := make(map[int64][]int)
	wp.dispatch = func(_ context.Context, upd tgbotapi.Update) {
		n, _ := strconv.Atoi(upd.Message.Text)
		// kechikish boshqa worker'ga o'zib ketish imkonini beradi
		time.Sleep(time.Duration(n%3) * time.Millisecond)
		mu.Lock()
		seen[upd.Message.From.ID] = append(seen[upd.Message.From.ID], n)
		mu.Unlock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.start(ctx)

	users := []int64{101, 202, 303}
	const perUser = 30
	for i := 0; i < perUser; i++ {
		for _, uid := range users {
			upd := tgbotapi.Update{Message: &tgbotapi.Message{
				From: &tgbotapi.User{ID: uid},
				Chat: &tgbotapi.Chat{ID: uid},
				Text: strconv.Itoa(i),
			}}
			if !wp.submit(ctx, upd) {
				t.Fatalf("user=%d #%d navbatga qo'yilmadi", uid, i)
			}
		}
	}
	wp.shutdown()

	for _, uid := range users {
		got := seen[uid]
		if len(got) != perUser {
			t.Fatalf("user=%d: %d ta yangilanish kutilgan, natija=%d", uid, perUser, len(got))
		}
		for i, n := range got {
			if n != i {
				t.Fatalf("user=%d tartib buzildi: %v", uid, got)
			}
		}
	}
}

func TestWorkerPoolThrottlesInsteadOfDropping(t *testing.T) {
	wp := newWorkerPool(nil, 1)
	var mu sync.Mutex
	var got []string
	wp.dispatch = func(_ context.Context, upd tgbotapi.Update) {
		mu.Lock()
		got = append(got, upd.Message.Text)
		mu.Unlock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.start(ctx)
	// ketma-ket yuborilgan xodim qatorlari limitdan oshadi
	lines := []string{"1. A, 100, 200", "2. B, 100, 200", "3. C, 100, 200", "4. D, 100, 200", "5. E, 100, 200"}
	for _, line := range lines {
		wp.submit(ctx, tgbotapi.Update{Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 7},
			Chat: &tgbotapi.Chat{ID: 7},
			Text: line,
		}})
	}
	wp.shutdown()

	if strings.Join(got, "|") != strings.Join(lines, "|") {
		t.Fatalf("qatorlar tashlab yuborilmasligi va tartibda bajarilishi kerak: %v", got)
	}
}

func TestJanitorSweepsTemp(t *testing.T) {
	env := newTestEnv(t)
	dir := env.layout.TempDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	oldFile := filepath.Join(dir, "excel1_1_1_aaaaaaaa.xlsx")
	newFile := filepath.Join(dir, "excel1_1_2_bbbbbbbb.xlsx")
	for _, p := range []string{oldFile, newFile} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldFile, old, old); err != nil {
		t.Fatal(err)
	}

	env.h.janitorTick(context.Background())

	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("eski vaqtinchalik fayl o'chirilmadi")
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Errorf("yangi fayl saqlanishi kerak: %v", err)
	}
}

func TestJanitorKeepsIdleSessions(t *testing.T) {
	env := newTestEnv(t)
	base := time.Now()
	env.h.now = func() time.Time { return base }
	env.h.sessions.set(testAdmin, stageAddRegime, sessionData{Stir: "123456789"})

	env.h.now = func() time.Time { return base.Add(3 * time.Hour) }
	env.h.janitorTick(context.Background())

	sess := env.h.sessions.get(testAdmin)
	if sess.Stage != stageAddRegime || sess.Data.Stir != "123456789" {
		t.Fatalf("janitor sessiyaga tegmasligi kerak: %+v", sess)
	}
}

func TestJanitorLogsPurgeOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)
	for i := 0; i < 3; i++ {
		a := entity.AccessAttempt{Stir: "123456789", Phone: "+998901234567", UserID: testOwner, Timestamp: old}
		if err := env.store.RecordAccess(ctx, a); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	env.h.janitorTick(ctx)

	if got := strings.Count(buf.String(), "Access log tozalandi"); got != 1 {
		t.Fatalf("tozalash bir marta yozilishi kerak, natija=%d\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "3 ta yozuv") {
		t.Errorf("o'chirilgan yozuvlar soni yo'q: %s", buf.String())
	}
}
