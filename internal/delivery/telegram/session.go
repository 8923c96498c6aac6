package telegram

import (
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/spreadsheet"
	"github.com/Samandarmister/Firmauz-bot/internal/usecase"
)

// stage suhbatning joriy holati
type stage int

const (
	stageIdle stage = iota
	stageTranslate

	// egasi: hujjatlar uchun telefon
	stageVerifyPhone

	// firma qo'shish
	stageAddStir
	stageAddRegime
	stageAddName
	stageAddDirector
	stageAddPhone

	stageImportFile

	// firma tanlash ro'yxati va qidiruv
	stagePickFirm
	stageSearch

	stageEditName
	stageEditPhoneStir
	stageEditPhoneValue

	// fayl yuklash
	stageUploadTax
	stageUploadMonth
	stageUploadFile

	// qo'lda kiritish
	stageManualTax
	stageManualSource
	stageManualSeedFile
	stageManualSeedPick
	stageManualMonth
	stageManualFirmName
	stageManualEmployeeCount
	stageManualEmployee
	stageManualTurnover
	stageManualConfirm

	// hisobotni o'chirish
	stageDeleteMonth
	stageDeleteConfirm

	// firma hujjatlari
	stageDocsStir
	stageDocsPDF1
	stageDocsPDF2
	stageDocsPFX
)

var stageNames = map[stage]string{
	stageIdle:                "idle",
	stageTranslate:           "translate",
	stageVerifyPhone:         "verify_phone",
	stageAddStir:             "add_stir",
	stageAddRegime:           "add_regime",
	stageAddName:             "add_name",
	stageAddDirector:         "add_director",
	stageAddPhone:            "add_phone",
	stageImportFile:          "import_file",
	stagePickFirm:            "pick_firm",
	stageSearch:              "search",
	stageEditName:            "edit_name",
	stageEditPhoneStir:       "edit_phone_stir",
	stageEditPhoneValue:      "edit_phone_value",
	stageUploadTax:           "upload_tax",
	stageUploadMonth:         "upload_month",
	stageUploadFile:          "upload_file",
	stageManualTax:           "manual_tax",
	stageManualSource:        "manual_source",
	stageManualSeedFile:      "manual_seed_file",
	stageManualSeedPick:      "manual_seed_pick",
	stageManualMonth:         "manual_month",
	stageManualFirmName:      "manual_firm_name",
	stageManualEmployeeCount: "manual_employee_count",
	stageManualEmployee:      "manual_employee",
	stageManualTurnover:      "manual_turnover",
	stageManualConfirm:       "manual_confirm",
	stageDeleteMonth:         "delete_month",
	stageDeleteConfirm:       "delete_confirm",
	stageDocsStir:            "docs_stir",
	stageDocsPDF1:            "docs_pdf1",
	stageDocsPDF2:            "docs_pdf2",
	stageDocsPFX:             "docs_pfx",
}

func (s stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// pickPurpose firma ro'yxati qaysi oqim uchun ochilgan
type pickPurpose int

const (
	pickList pickPurpose = iota
	pickEdit
	pickUpload
	pickManual
	pickDelete
)

// sessionData oqim davomida yig'ilgan qiymatlar
type sessionData struct {
	Stir     string
	Regime   entity.Regime
	Name     string
	Director string

	Tax    entity.TaxType
	Month  entity.Month
	Upload entity.UploadStage

	// TempPath bekor qilinganda o'chiriladigan vaqtinchalik fayl
	TempPath string

	Purpose pickPurpose
	Page    int
	Query   string

	Seed          *usecase.Seed
	EmployeeCount int
	Employees     []entity.Employee
	Payroll       spreadsheet.PayrollRecord
	Turnover      spreadsheet.TurnoverRecord

	// Staged hujjatlar PFX kelguncha temp papkada turadi
	Staged []usecase.StagedDoc

	// Target tarjima yo'nalishi
	Target entity.Language
}

type session struct {
	ID    string
	Stage stage
	Data  sessionData
}

// sessionStore foydalanuvchi bo'yicha suhbat holati.
// lock bitta foydalanuvchining hodisalarini ketma-ket bajaradi.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
	locks    map[int64]*sync.Mutex
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[int64]*session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// lock foydalanuvchi qulfini oladi va ochish funksiyasini qaytaradi
func (s *sessionStore) lock(userID int64) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// get sessiya nusxasi; yo'q bo'lsa idle
func (s *sessionStore) get(userID int64) session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		return *sess
	}
	return session{Stage: stageIdle}
}

// set holat va ma'lumotlarni yozadi. Yangi oqimga yangi ID beriladi.
func (s *sessionStore) set(userID int64, st stage, data sessionData) session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{ID: uuid.NewString()[:8]}
		s.sessions[userID] = sess
	}
	sess.Stage = st
	sess.Data = data
	return *sess
}

// clear sessiyani o'chiradi va vaqtinchalik fayllarni olib tashlaydi
func (s *sessionStore) clear(userID int64) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()
	if !ok {
		return
	}
	if sess.Data.TempPath != "" {
		_ = os.Remove(sess.Data.TempPath)
	}
	for _, d := range sess.Data.Staged {
		_ = os.Remove(d.TempPath)
	}
}

func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
