package telegram

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"
)

// runJanitor eski urinishlar va vaqtinchalik fayllarni tozalaydi.
// Sessiyalarga tegmaydi: tashlab ketilgan oqim keyingi buyruqqacha saqlanadi.
func (h *BotHandler) runJanitor(ctx context.Context) {
	ticker := time.NewTicker(h.janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.janitorTick(ctx)
		}
	}
}

func (h *BotHandler) janitorTick(ctx context.Context) {
	if h.access != nil {
		n, err := h.access.Purge(ctx)
		if err != nil {
			log.Printf("❌ Access log tozalashda xato: %v", err)
		} else if n > 0 {
			log.Printf("🧹 Access log tozalandi: %d ta yozuv", n)
		}
	}

	removed := h.sweepTemp(h.now().Add(-h.tempMaxAge))
	if removed > 0 {
		log.Printf("♻️ Vaqtinchalik fayllar tozalandi: %d ta", removed)
	}
}

// sweepTemp cutoff dan eski vaqtinchalik fayllarni o'chiradi
func (h *BotHandler) sweepTemp(cutoff time.Time) int {
	dir := h.layout.TempDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("❌ Temp papka o'qilmadi: %s err=%v", dir, err)
		}
		return 0
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			log.Printf("⚠️ Temp fayl o'chirilmadi: %s err=%v", e.Name(), err)
			continue
		}
		removed++
	}
	return removed
}
