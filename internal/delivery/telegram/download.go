package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/constants"
)

const maxUploadSize = constants.MaxFileUploadSize

// downloadFile Telegram faylini dst ga yozadi. Xato bo'lsa chala fayl qolmaydi.
func (h *BotHandler) downloadFile(ctx context.Context, fileID, dst string) error {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(h.token), nil)
	if err != nil {
		return err
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram file status: %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	n, err := io.Copy(out, io.LimitReader(resp.Body, maxUploadSize+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > maxUploadSize {
		err = fmt.Errorf("fayl hajmi %d baytdan oshdi", maxUploadSize)
	}
	if err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}
