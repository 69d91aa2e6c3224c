package empresa

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
	"github.com/felipegalvaoz/zemdocs-admin/pkg/backend"
	"github.com/felipegalvaoz/zemdocs-admin/pkg/cnpja"
)

type fakeBackend struct {
	mu      sync.Mutex
	page    *model.EmpresaPage
	empresa *model.Empresa
	err     error

	listCalls   int
	deleteOrder []int
	deleteErrOn int

	// listHook runs inside List before returning, letting tests
	// interleave a competing call.
	listHook func()
}

func (f *fakeBackend) List(ctx context.Context, filter model.ListFilter) (*model.EmpresaPage, error) {
	f.mu.Lock()
	f.listCalls++
	hook := f.listHook
	f.listHook = nil
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeBackend) Get(ctx context.Context, id int) (*model.Empresa, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.empresa, nil
}

func (f *fakeBackend) GetByCNPJ(ctx context.Context, cnpj string) (*model.Empresa, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.empresa, nil
}

func (f *fakeBackend) Create(ctx context.Context, req *model.EmpresaCreate) (*model.Empresa, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.empresa, nil
}

func (f *fakeBackend) CreateFromCNPJ(ctx context.Context, cnpj string) (*model.Empresa, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.empresa, nil
}

func (f *fakeBackend) Update(ctx context.Context, id int, req *model.EmpresaUpdate) (*model.Empresa, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.empresa, nil
}

func (f *fakeBackend) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErrOn != 0 && id == f.deleteErrOn {
		return &backend.APIError{StatusCode: http.StatusInternalServerError, Message: "falha ao excluir"}
	}
	f.deleteOrder = append(f.deleteOrder, id)
	return nil
}

type fakeRegistry struct {
	office *cnpja.Office
	err    error
}

func (f *fakeRegistry) GetOffice(ctx context.Context, cnpj string) (*cnpja.Office, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.office, nil
}

type recordNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func samplePage(n int) *model.EmpresaPage {
	page := &model.EmpresaPage{Total: n, Page: 1, Pages: 1}
	for i := 1; i <= n; i++ {
		page.Empresas = append(page.Empresas, model.Empresa{ID: i, CNPJ: "12345678000190", RazaoSocial: "EMPRESA"})
	}
	return page
}

func TestListLoadsCollection(t *testing.T) {
	fb := &fakeBackend{page: samplePage(5)}
	svc := NewService(fb, &fakeRegistry{})

	page, err := svc.List(context.Background(), model.ListFilter{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Len(t, svc.Empresas(), 5)
	assert.False(t, svc.Loading(OpList))
}

func TestListStaleResponseDiscarded(t *testing.T) {
	fb := &fakeBackend{page: samplePage(2)}
	svc := NewService(fb, &fakeRegistry{})

	// The first List is still in flight when a second one starts and
	// finishes; the first result must not replace the newer one.
	fb.listHook = func() {
		fb.mu.Lock()
		fb.page = samplePage(7)
		fb.mu.Unlock()
		_, err := svc.List(context.Background(), model.ListFilter{})
		require.NoError(t, err)
		fb.mu.Lock()
		fb.page = samplePage(2)
		fb.mu.Unlock()
	}

	_, err := svc.List(context.Background(), model.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, svc.Empresas(), 7)
}

func TestListErrorNotifies(t *testing.T) {
	n := &recordNotifier{}
	fb := &fakeBackend{err: &backend.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}}
	svc := NewService(fb, &fakeRegistry{}, WithNotifier(n))

	_, err := svc.List(context.Background(), model.ListFilter{})
	require.Error(t, err)
	assert.Equal(t, []string{"Erro ao carregar empresas"}, n.errors)
	assert.Empty(t, svc.Empresas())
}

func TestGetNotFound(t *testing.T) {
	fb := &fakeBackend{err: &backend.APIError{StatusCode: http.StatusNotFound}}
	svc := NewService(fb, &fakeRegistry{})

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByCNPJRejectsMalformed(t *testing.T) {
	fb := &fakeBackend{}
	svc := NewService(fb, &fakeRegistry{})

	_, err := svc.GetByCNPJ(context.Background(), "123")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestLookupMapsOfficeToDraft(t *testing.T) {
	reg := &fakeRegistry{office: &cnpja.Office{
		TaxID:   "12345678000190",
		Company: cnpja.Company{Name: "ACME COMERCIO LTDA"},
		Status:  cnpja.Status{ID: 2, Text: "Ativa"},
	}}
	svc := NewService(&fakeBackend{}, reg)

	draft, err := svc.Lookup(context.Background(), "12.345.678/0001-90")
	require.NoError(t, err)
	assert.Equal(t, "12345678000190", draft.CNPJ)
	assert.Equal(t, "ACME COMERCIO LTDA", draft.RazaoSocial)
	assert.True(t, draft.Ativa)
}

func TestLookupNotFoundPassesThrough(t *testing.T) {
	n := &recordNotifier{}
	reg := &fakeRegistry{err: cnpja.ErrNotFound}
	svc := NewService(&fakeBackend{}, reg, WithNotifier(n))

	_, err := svc.Lookup(context.Background(), "12345678000190")
	assert.ErrorIs(t, err, cnpja.ErrNotFound)
	assert.Equal(t, []string{"CNPJ não encontrado na Receita"}, n.errors)
}

func TestLookupRateLimited(t *testing.T) {
	n := &recordNotifier{}
	reg := &fakeRegistry{err: cnpja.ErrRateLimited}
	svc := NewService(&fakeBackend{}, reg, WithNotifier(n))

	_, err := svc.Lookup(context.Background(), "12345678000190")
	assert.ErrorIs(t, err, cnpja.ErrRateLimited)
	require.Len(t, n.errors, 1)
	assert.Contains(t, n.errors[0], "Limite de consultas excedido")
}

func TestCreateDuplicateSuppressesGenericNotification(t *testing.T) {
	n := &recordNotifier{}
	fb := &fakeBackend{err: &backend.APIError{
		StatusCode: http.StatusConflict,
		Message:    "CNPJ já cadastrado",
		Kind:       "duplicate_key",
	}}
	svc := NewService(fb, &fakeRegistry{}, WithNotifier(n))

	_, err := svc.Create(context.Background(), &model.EmpresaCreate{CNPJ: "12.345.678/0001-90", RazaoSocial: "ACME"})

	var dup *DuplicateCNPJError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "12345678000190", dup.CNPJ)
	// The duplicate dialog owns this case; no toast fires.
	assert.Empty(t, n.errors)
	assert.Empty(t, n.successes)
}

func TestCreateGenericErrorNotifies(t *testing.T) {
	n := &recordNotifier{}
	fb := &fakeBackend{err: &backend.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}}
	svc := NewService(fb, &fakeRegistry{}, WithNotifier(n))

	_, err := svc.Create(context.Background(), &model.EmpresaCreate{CNPJ: "12345678000190", RazaoSocial: "ACME"})
	require.Error(t, err)
	var dup *DuplicateCNPJError
	assert.False(t, errors.As(err, &dup))
	assert.Equal(t, []string{"Erro ao criar empresa"}, n.errors)
}

func TestCreateValidatesBeforeNetwork(t *testing.T) {
	fb := &fakeBackend{err: &backend.APIError{StatusCode: http.StatusInternalServerError}}
	svc := NewService(fb, &fakeRegistry{})

	_, err := svc.Create(context.Background(), &model.EmpresaCreate{CNPJ: "123"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateFromCNPJDuplicate(t *testing.T) {
	n := &recordNotifier{}
	fb := &fakeBackend{err: &backend.APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "empresa já cadastrada",
	}}
	svc := NewService(fb, &fakeRegistry{}, WithNotifier(n))

	_, err := svc.CreateFromCNPJ(context.Background(), "12345678000190")
	var dup *DuplicateCNPJError
	require.ErrorAs(t, err, &dup)
	assert.Empty(t, n.errors)
}

func TestUpdateNotifiesSuccess(t *testing.T) {
	n := &recordNotifier{}
	fb := &fakeBackend{empresa: &model.Empresa{ID: 5, RazaoSocial: "ACME NOVA"}}
	svc := NewService(fb, &fakeRegistry{}, WithNotifier(n))

	e, err := svc.Update(context.Background(), 5, &model.EmpresaUpdate{RazaoSocial: "ACME NOVA"})
	require.NoError(t, err)
	assert.Equal(t, "ACME NOVA", e.RazaoSocial)
	assert.Equal(t, []string{"Empresa atualizada com sucesso!"}, n.successes)
}

func TestDeletePrunesCollection(t *testing.T) {
	n := &recordNotifier{}
	fb := &fakeBackend{page: samplePage(3)}
	svc := NewService(fb, &fakeRegistry{}, WithNotifier(n))

	_, err := svc.List(context.Background(), model.ListFilter{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 2))

	remaining := svc.Empresas()
	require.Len(t, remaining, 2)
	assert.Equal(t, 1, remaining[0].ID)
	assert.Equal(t, 3, remaining[1].ID)
	assert.Equal(t, []string{"Empresa excluída com sucesso!"}, n.successes)
}

func TestDeleteManySequential(t *testing.T) {
	fb := &fakeBackend{}
	svc := NewService(fb, &fakeRegistry{})

	deleted, err := svc.DeleteMany(context.Background(), []int{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.Equal(t, []int{3, 1, 2}, fb.deleteOrder)
}

func TestDeleteManyStopsAtFirstFailure(t *testing.T) {
	fb := &fakeBackend{deleteErrOn: 2}
	svc := NewService(fb, &fakeRegistry{})

	deleted, err := svc.DeleteMany(context.Background(), []int{1, 2, 3})
	require.Error(t, err)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, []int{1}, fb.deleteOrder)
}
