package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/constants"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
)

// Layout ma'lumotlar papkasi tuzilishi:
//
//	<root>/<stir>/<soliq_turi>/<Oy><bosqich>.<ext>
//	<root>/<stir>/firm_docs/
//	<root>/temp/
type Layout struct {
	Root string
}

func NewLayout(root string) Layout {
	if strings.TrimSpace(root) == "" {
		root = constants.DefaultDataPath
	}
	return Layout{Root: filepath.Clean(root)}
}

func (l Layout) FirmDir(stir string) string {
	return filepath.Join(l.Root, stir)
}

func (l Layout) TaxDir(stir string, tax entity.TaxType) string {
	return filepath.Join(l.Root, stir, string(tax))
}

// StagePath bosqich fayli, oy nomi berilgan yozuvda
func (l Layout) StagePath(stir string, tax entity.TaxType, month entity.Month, stage entity.UploadStage, lang entity.Language) string {
	name := fmt.Sprintf("%s%d%s", month.Name(lang), int(stage), stage.Ext())
	return filepath.Join(l.TaxDir(stir, tax), name)
}

// StagePaths lotin va kirill nusxalari
func (l Layout) StagePaths(stir string, tax entity.TaxType, month entity.Month, stage entity.UploadStage) (latin, cyrillic string) {
	return l.StagePath(stir, tax, month, stage, entity.LangLatin),
		l.StagePath(stir, tax, month, stage, entity.LangCyrillic)
}

func (l Layout) DocsDir(stir string) string {
	return filepath.Join(l.Root, stir, constants.FirmDocsDirName)
}

func (l Layout) TempDir() string {
	return filepath.Join(l.Root, constants.TempDirName)
}

// TempPath foydalanuvchi, vaqt va tasodifiy qo'shimcha bilan nomlangan vaqtinchalik fayl
func (l Layout) TempPath(kind string, userID int64, ext string, now time.Time) string {
	salt := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := fmt.Sprintf("%s_%d_%d_%s%s", kind, userID, now.Unix(), salt, ext)
	return filepath.Join(l.TempDir(), name)
}

// EnsureFirmDirs rejimga mos papkalarni yaratadi
func (l Layout) EnsureFirmDirs(stir string, regime entity.Regime) error {
	for _, tax := range regime.TaxTypes() {
		if err := os.MkdirAll(l.TaxDir(stir, tax), 0o755); err != nil {
			return fmt.Errorf("papka yaratishda xato (%s): %w", tax, err)
		}
	}
	return nil
}

// FormatAmount 5000000 -> "5,000,000"
func FormatAmount(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// copyFile dst papkasini ham yaratadi
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// moveFile rename qila olmasa nusxalab asl faylni o'chiradi
func moveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
