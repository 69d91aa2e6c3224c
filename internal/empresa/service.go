// Package empresa implements the empresa domain: the record drafts,
// validation, error taxonomy, and the data-access facade shared by the
// gateway and the CLI.
package empresa

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
	"github.com/felipegalvaoz/zemdocs-admin/pkg/backend"
	"github.com/felipegalvaoz/zemdocs-admin/pkg/cnpja"
)

// Operation identifies a logical facade operation. Loading state is
// keyed per operation so concurrent calls do not clobber each other's
// indicator.
type Operation string

// Facade operations.
const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpLookup Operation = "lookup"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Notifier receives user-facing outcome notifications. The gateway and
// CLI plug their own implementations; tests plug a recorder.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// nopNotifier discards all notifications.
type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Service is the single point through which callers read and mutate
// empresas. It owns the in-memory collection; callers must treat the
// returned snapshots as read-only.
type Service struct {
	backend  backend.Client
	registry cnpja.Client
	notifier Notifier

	mu       sync.RWMutex
	empresas []model.Empresa
	inflight map[Operation]int

	// listGen discards stale list responses: only the most recently
	// issued List may replace the collection.
	listGen atomic.Uint64
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithNotifier sets the outcome notifier.
func WithNotifier(n Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

// NewService creates the facade over the backend and registry clients.
func NewService(bc backend.Client, rc cnpja.Client, opts ...ServiceOption) *Service {
	s := &Service{
		backend:  bc,
		registry: rc,
		notifier: nopNotifier{},
		inflight: map[Operation]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loading reports whether an operation of the given kind is in flight.
func (s *Service) Loading(op Operation) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight[op] > 0
}

// Empresas returns a snapshot of the collection loaded by the last List.
func (s *Service) Empresas() []model.Empresa {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Empresa, len(s.empresas))
	copy(out, s.empresas)
	return out
}

func (s *Service) track(op Operation) func() {
	s.mu.Lock()
	s.inflight[op]++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.inflight[op]--
		s.mu.Unlock()
	}
}

// List fetches a page of empresas and, when still current, replaces the
// in-memory collection with it.
func (s *Service) List(ctx context.Context, filter model.ListFilter) (*model.EmpresaPage, error) {
	defer s.track(OpList)()
	gen := s.listGen.Add(1)

	page, err := s.backend.List(ctx, filter)
	if err != nil {
		s.notifier.Error("Erro ao carregar empresas")
		return nil, eris.Wrap(err, "empresa: list")
	}

	if s.listGen.Load() == gen {
		s.mu.Lock()
		s.empresas = page.Empresas
		s.mu.Unlock()
	} else {
		zap.L().Debug("empresa: stale list response discarded",
			zap.Uint64("generation", gen))
	}
	return page, nil
}

// Get fetches one empresa by id. A missing record surfaces as
// ErrNotFound, distinct from generic failures.
func (s *Service) Get(ctx context.Context, id int) (*model.Empresa, error) {
	defer s.track(OpGet)()

	e, err := s.backend.Get(ctx, id)
	if err != nil {
		if err = mapAPIError(err); errors.Is(err, ErrNotFound) {
			s.notifier.Error("Empresa não encontrada")
			return nil, err
		}
		s.notifier.Error("Erro ao buscar empresa")
		return nil, eris.Wrapf(err, "empresa: get %d", id)
	}
	return e, nil
}

// GetByCNPJ fetches one empresa by CNPJ, normalizing formatting first.
func (s *Service) GetByCNPJ(ctx context.Context, cnpj string) (*model.Empresa, error) {
	defer s.track(OpGet)()

	normalized := model.NormalizeCNPJ(cnpj)
	if !model.ValidCNPJ(normalized) {
		return nil, &ValidationError{Fields: map[string]string{"cnpj": "CNPJ deve ter 14 dígitos"}}
	}

	e, err := s.backend.GetByCNPJ(ctx, normalized)
	if err != nil {
		if err = mapAPIError(err); errors.Is(err, ErrNotFound) {
			s.notifier.Error("Empresa não encontrada")
			return nil, err
		}
		s.notifier.Error("Erro ao buscar empresa")
		return nil, eris.Wrapf(err, "empresa: get by cnpj %s", normalized)
	}
	return e, nil
}

// Lookup consults the public registry and maps the result into a
// creation draft. It never mutates local state. Registry not-found and
// rate-limit conditions pass through untouched so the caller can keep
// manual form entry available.
func (s *Service) Lookup(ctx context.Context, cnpj string) (*model.EmpresaCreate, error) {
	defer s.track(OpLookup)()

	normalized := model.NormalizeCNPJ(cnpj)
	if !model.ValidCNPJ(normalized) {
		return nil, &ValidationError{Fields: map[string]string{"cnpj": "CNPJ deve ter 14 dígitos"}}
	}

	office, err := s.registry.GetOffice(ctx, normalized)
	if err != nil {
		switch {
		case errors.Is(err, cnpja.ErrNotFound):
			s.notifier.Error("CNPJ não encontrado na Receita")
		case errors.Is(err, cnpja.ErrRateLimited):
			s.notifier.Error("Limite de consultas excedido. Tente novamente em alguns minutos")
		default:
			s.notifier.Error("Erro ao consultar CNPJ")
		}
		return nil, err
	}
	return DraftFromLookup(office, normalized), nil
}

// Create posts a creation draft. Duplicate-CNPJ failures come back as
// *DuplicateCNPJError with no generic notification: the caller owns the
// dedicated recovery dialog for that case.
func (s *Service) Create(ctx context.Context, req *model.EmpresaCreate) (*model.Empresa, error) {
	if err := ValidateCreate(req); err != nil {
		return nil, err
	}
	defer s.track(OpCreate)()

	req.CNPJ = model.NormalizeCNPJ(req.CNPJ)
	e, err := s.backend.Create(ctx, req)
	if err != nil {
		classified := ClassifyCreateError(req.CNPJ, err)
		var dup *DuplicateCNPJError
		if errors.As(classified, &dup) {
			return nil, dup
		}
		s.notifier.Error("Erro ao criar empresa")
		return nil, eris.Wrap(classified, "empresa: create")
	}
	return e, nil
}

// CreateFromCNPJ asks the backend to consult the registry and create
// the record in one shot. Same duplicate contract as Create.
func (s *Service) CreateFromCNPJ(ctx context.Context, cnpj string) (*model.Empresa, error) {
	normalized := model.NormalizeCNPJ(cnpj)
	if !model.ValidCNPJ(normalized) {
		return nil, &ValidationError{Fields: map[string]string{"cnpj": "CNPJ deve ter 14 dígitos"}}
	}
	defer s.track(OpCreate)()

	e, err := s.backend.CreateFromCNPJ(ctx, normalized)
	if err != nil {
		classified := ClassifyCreateError(normalized, err)
		var dup *DuplicateCNPJError
		if errors.As(classified, &dup) {
			return nil, dup
		}
		s.notifier.Error("Erro ao criar empresa")
		return nil, eris.Wrapf(classified, "empresa: create from cnpj %s", normalized)
	}
	return e, nil
}

// Update applies the five mutable fields to one empresa.
func (s *Service) Update(ctx context.Context, id int, req *model.EmpresaUpdate) (*model.Empresa, error) {
	if err := ValidateUpdate(req); err != nil {
		return nil, err
	}
	defer s.track(OpUpdate)()

	e, err := s.backend.Update(ctx, id, req)
	if err != nil {
		s.notifier.Error(backendMessage(err, "Erro ao atualizar empresa"))
		return nil, eris.Wrapf(err, "empresa: update %d", id)
	}
	s.notifier.Success("Empresa atualizada com sucesso!")
	return e, nil
}

// Delete removes one empresa and prunes it from the local collection so
// the displayed set matches backend state without a refetch.
func (s *Service) Delete(ctx context.Context, id int) error {
	defer s.track(OpDelete)()

	if err := s.backend.Delete(ctx, id); err != nil {
		s.notifier.Error(backendMessage(err, "Erro ao excluir empresa"))
		return eris.Wrapf(err, "empresa: delete %d", id)
	}

	s.mu.Lock()
	for i, e := range s.empresas {
		if e.ID == id {
			s.empresas = append(s.empresas[:i], s.empresas[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Empresa excluída com sucesso!")
	return nil
}

// DeleteMany deletes the given ids one at a time, in order. The batch
// is strictly sequential: each call completes before the next starts.
// It stops at the first failure and reports how many were deleted.
func (s *Service) DeleteMany(ctx context.Context, ids []int) (int, error) {
	deleted := 0
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// backendMessage extracts the backend's own error text when available.
func backendMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
