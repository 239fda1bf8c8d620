package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecotrace/ewaste-tracker/internal/api/middleware"
	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

type stubItemService struct {
	createFn func(ctx context.Context, in ports.CreateItemInput) (*ports.CreateItemResult, error)
	getFn    func(ctx context.Context, id string) (*domain.EwasteItem, error)
	listFn   func(ctx context.Context, in ports.ListItemsInput) (*ports.ListItemsResult, error)
}

func (s *stubItemService) CreateItem(ctx context.Context, in ports.CreateItemInput) (*ports.CreateItemResult, error) {
	return s.createFn(ctx, in)
}

func (s *stubItemService) GetItem(ctx context.Context, id string) (*domain.EwasteItem, error) {
	return s.getFn(ctx, id)
}

func (s *stubItemService) ListItems(ctx context.Context, in ports.ListItemsInput) (*ports.ListItemsResult, error) {
	return s.listFn(ctx, in)
}

type stubLookupService struct {
	findFn func(ctx context.Context, code string) (*ports.ItemDetail, error)
}

func (s *stubLookupService) FindByCode(ctx context.Context, code string) (*ports.ItemDetail, error) {
	return s.findFn(ctx, code)
}

type stubLifecycleService struct {
	updateFn  func(ctx context.Context, in ports.UpdateStatusInput) (*domain.EwasteItem, error)
	historyFn func(ctx context.Context, id string) ([]domain.StatusHistoryEntry, error)
}

func (s *stubLifecycleService) UpdateStatus(ctx context.Context, in ports.UpdateStatusInput) (*domain.EwasteItem, error) {
	return s.updateFn(ctx, in)
}

func (s *stubLifecycleService) History(ctx context.Context, id string) ([]domain.StatusHistoryEntry, error) {
	return s.historyFn(ctx, id)
}

var testPrincipal = domain.Principal{UserID: "65f0000000000000000000aa", Role: domain.RoleVendor}

// newContext builds an echo context with the validator installed and, when
// p is non-nil, an authenticated principal.
func newContext(method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		middleware.WithPrincipal(c, *p)
	}
	return c, rec
}
