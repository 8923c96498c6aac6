package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
)

type fileKey struct {
	stir  string
	tax   entity.TaxType
	month entity.Month
	kind  entity.FileKind
}

type memoryStore struct {
	mu   sync.RWMutex
	mode repository.ReportWriteMode

	languages map[int64]entity.Language
	firms     map[string]entity.Firm
	owners    map[string][]string
	payrolls  []entity.PayrollReport
	turnovers []entity.TurnoverReport
	files     map[fileKey]entity.FilePointer
	docs      map[string]entity.FirmDocs
	access    []entity.AccessAttempt
	downloads []entity.DownloadLog
	nextID    int64
}

// NewMemoryStore xotirada ishlaydigan store (testlar va STORAGE_DRIVER=memory uchun)
func NewMemoryStore(mode repository.ReportWriteMode) repository.Store {
	return &memoryStore{
		mode:      mode,
		languages: make(map[int64]entity.Language),
		firms:     make(map[string]entity.Firm),
		owners:    make(map[string][]string),
		files:     make(map[fileKey]entity.FilePointer),
		docs:      make(map[string]entity.FirmDocs),
	}
}

func (m *memoryStore) SetLanguage(_ context.Context, userID int64, lang entity.Language) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.languages[userID] = lang
	return nil
}

func (m *memoryStore) GetLanguage(_ context.Context, userID int64) (entity.Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if lang, ok := m.languages[userID]; ok {
		return lang, nil
	}
	return entity.LangLatin, nil
}

func (m *memoryStore) CreateFirm(_ context.Context, firm entity.Firm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.firms[firm.Stir]; ok {
		return entity.ErrAlreadyExists
	}
	if firm.CreatedAt.IsZero() {
		firm.CreatedAt = time.Now()
	}
	m.firms[firm.Stir] = firm
	return nil
}

func (m *memoryStore) GetFirm(_ context.Context, stir string) (*entity.Firm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	firm, ok := m.firms[stir]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &firm, nil
}

func (m *memoryStore) FirmExists(_ context.Context, stir string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.firms[stir]
	return ok, nil
}

func (m *memoryStore) UpdateFirmName(_ context.Context, stir, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	firm, ok := m.firms[stir]
	if !ok {
		return entity.ErrNotFound
	}
	firm.Name = name
	m.firms[stir] = firm
	return nil
}

func (m *memoryStore) ListFirms(_ context.Context) ([]entity.Firm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]entity.Firm, 0, len(m.firms))
	for _, f := range m.firms {
		res = append(res, f)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (m *memoryStore) CountFirms(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.firms), nil
}

func (m *memoryStore) AddOwner(_ context.Context, stir, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.owners[stir] {
		if p == phone {
			return nil
		}
	}
	m.owners[stir] = append(m.owners[stir], phone)
	return nil
}

func (m *memoryStore) ReplaceOwnerPhone(_ context.Context, stir, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[stir] = []string{phone}
	return nil
}

func (m *memoryStore) OwnerPhones(_ context.Context, stir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.owners[stir]...), nil
}

func (m *memoryStore) SavePayroll(_ context.Context, r entity.PayrollReport) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode == repository.WriteUpsert {
		kept := m.payrolls[:0]
		for _, p := range m.payrolls {
			if p.Stir != r.Stir || p.Month != r.Month {
				kept = append(kept, p)
			}
		}
		m.payrolls = kept
	}
	m.nextID++
	r.ID = m.nextID
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.Employees = append([]entity.Employee(nil), r.Employees...)
	m.payrolls = append(m.payrolls, r)
	return r.ID, nil
}

func (m *memoryStore) SaveTurnover(_ context.Context, r entity.TurnoverReport) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode == repository.WriteUpsert {
		kept := m.turnovers[:0]
		for _, t := range m.turnovers {
			if t.Kind != r.Kind || t.Stir != r.Stir || t.Month != r.Month {
				kept = append(kept, t)
			}
		}
		m.turnovers = kept
	}
	m.nextID++
	r.ID = m.nextID
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	m.turnovers = append(m.turnovers, r)
	return r.ID, nil
}

func (m *memoryStore) LatestPayroll(_ context.Context, stir string, month entity.Month) (*entity.PayrollReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *entity.PayrollReport
	for i := range m.payrolls {
		p := m.payrolls[i]
		if p.Stir == stir && p.Month == month && (best == nil || p.ID > best.ID) {
			cp := p
			cp.Employees = append([]entity.Employee(nil), p.Employees...)
			best = &cp
		}
	}
	if best == nil {
		return nil, entity.ErrNotFound
	}
	return best, nil
}

func (m *memoryStore) LatestTurnover(_ context.Context, kind entity.TaxType, stir string, month entity.Month) (*entity.TurnoverReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *entity.TurnoverReport
	for i := range m.turnovers {
		t := m.turnovers[i]
		if t.Kind == kind && t.Stir == stir && t.Month == month && (best == nil || t.ID > best.ID) {
			cp := t
			best = &cp
		}
	}
	if best == nil {
		return nil, entity.ErrNotFound
	}
	return best, nil
}

func (m *memoryStore) CountReports(_ context.Context, stir string, month entity.Month) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, p := range m.payrolls {
		if p.Stir == stir && p.Month == month {
			n++
		}
	}
	for _, t := range m.turnovers {
		if t.Stir == stir && t.Month == month {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) DeleteReports(_ context.Context, stir string, month entity.Month) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	keptP := m.payrolls[:0]
	for _, p := range m.payrolls {
		if p.Stir == stir && p.Month == month {
			deleted++
			continue
		}
		keptP = append(keptP, p)
	}
	m.payrolls = keptP
	keptT := m.turnovers[:0]
	for _, t := range m.turnovers {
		if t.Stir == stir && t.Month == month {
			deleted++
			continue
		}
		keptT = append(keptT, t)
	}
	m.turnovers = keptT
	return deleted, nil
}

func (m *memoryStore) UpsertFile(_ context.Context, fp entity.FilePointer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fp.UpdatedAt.IsZero() {
		fp.UpdatedAt = time.Now()
	}
	m.files[fileKey{fp.Stir, fp.TaxType, fp.Month, fp.Kind}] = fp
	return nil
}

func (m *memoryStore) GetFile(_ context.Context, stir string, tax entity.TaxType, month entity.Month, kind entity.FileKind) (*entity.FilePointer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fp, ok := m.files[fileKey{stir, tax, month, kind}]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &fp, nil
}

func (m *memoryStore) ListFiles(_ context.Context, stir string, month entity.Month) ([]entity.FilePointer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var res []entity.FilePointer
	for k, fp := range m.files {
		if k.stir == stir && k.month == month {
			res = append(res, fp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Path < res[j].Path })
	return res, nil
}

func (m *memoryStore) DeleteFiles(_ context.Context, stir string, month entity.Month) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for k := range m.files {
		if k.stir == stir && k.month == month {
			delete(m.files, k)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memoryStore) UpsertFirmDocs(_ context.Context, docs entity.FirmDocs) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[docs.Stir] = docs
	return nil
}

func (m *memoryStore) GetFirmDocs(_ context.Context, stir string) (*entity.FirmDocs, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs, ok := m.docs[stir]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &docs, nil
}

func (m *memoryStore) RecordAccess(_ context.Context, a entity.AccessAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	m.access = append(m.access, a)
	return nil
}

func (m *memoryStore) CountAccessSince(_ context.Context, stir string, userID int64, since time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, a := range m.access {
		if a.Stir == stir && a.UserID == userID && a.Timestamp.Unix() > since.Unix() {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) PurgeAccessBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	kept := m.access[:0]
	for _, a := range m.access {
		if a.Timestamp.Unix() <= cutoff.Unix() {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	m.access = kept
	return deleted, nil
}

func (m *memoryStore) LogDownload(_ context.Context, d entity.DownloadLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	m.downloads = append(m.downloads, d)
	return nil
}

func (m *memoryStore) Close() error { return nil }
