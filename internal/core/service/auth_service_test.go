package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User // keyed by id
	createErr error
	findErr   error
	nextID    int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailInUse
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "user-" + string(rune('0'+r.nextID))
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubThrottle struct {
	allow    bool
	err      error
	calls    int
	resetFor []string
}

func (t *stubThrottle) Allow(_ context.Context, _ string) (bool, error) {
	t.calls++
	return t.allow, t.err
}

func (t *stubThrottle) Reset(_ context.Context, key string) error {
	t.resetFor = append(t.resetFor, key)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var testAuthConfig = AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, BcryptCost: bcrypt.MinCost}

func newTestAuthService(repo ports.UserRepository, throttle ports.LoginThrottle) *AuthService {
	return NewAuthService(repo, NewTokenIssuer(testAuthConfig), throttle, testAuthConfig, discardLogger)
}

func floatPtr(v float64) *float64 { return &v }

func adminInput() ports.RegisterInput {
	return ports.RegisterInput{
		Role:       "admin",
		Email:      "Admin@Campus.edu ",
		Password:   "s3cret",
		Name:       "Asha",
		Department: "CSE",
	}
}

func vendorInput() ports.RegisterInput {
	return ports.RegisterInput{
		Role:             "vendor",
		Email:            "v@x.com",
		Password:         "p",
		Address:          "12 Green St",
		Location:         &ports.LocationInput{Coordinates: []float64{77.5, 12.9}},
		ServiceRadiusKm:  floatPtr(10),
		CapacityKgPerDay: floatPtr(50),
		WorkingHours:     &ports.WorkingHoursInput{Start: "09:00", End: "18:00"},
	}
}

func assertField(t *testing.T, err error, field string) {
	t.Helper()
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError on %q, got %v", field, err)
	}
	if verr.Field != field {
		t.Fatalf("expected field %q, got %q (%s)", field, verr.Field, verr.Message)
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Admin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	res, err := svc.Register(context.Background(), adminInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected a token")
	}
	u := res.User
	if u.Email != "admin@campus.edu" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Role != domain.RoleAdmin || u.Admin == nil || u.Vendor != nil {
		t.Fatalf("expected admin profile only, got %+v", u)
	}
	if u.Admin.Department != domain.Department("CSE") {
		t.Fatalf("unexpected department %q", u.Admin.Department)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Vendor(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	res, err := svc.Register(context.Background(), vendorInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	v := res.User.Vendor
	if v == nil || res.User.Admin != nil {
		t.Fatalf("expected vendor profile only, got %+v", res.User)
	}
	if v.Location.Type != "Point" || len(v.Location.Coordinates) != 2 || v.Location.Coordinates[0] != 77.5 {
		t.Fatalf("location not normalized: %+v", v.Location)
	}
	if v.WorkingHours.Start != "09:00" || v.WorkingHours.End != "18:00" {
		t.Fatalf("unexpected working hours %+v", v.WorkingHours)
	}

	claims, err := NewTokenIssuer(testAuthConfig).Parse(res.Token)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != res.User.ID || claims.Role != domain.RoleVendor {
		t.Fatalf("unexpected principal %+v", claims)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ports.RegisterInput)
		field  string
	}{
		{"missing role", func(in *ports.RegisterInput) { in.Role = "" }, "role"},
		{"unknown role", func(in *ports.RegisterInput) { in.Role = "superuser" }, "role"},
		{"missing email", func(in *ports.RegisterInput) { in.Email = "  " }, "email"},
		{"missing password", func(in *ports.RegisterInput) { in.Password = "" }, "password"},
		{"bad email", func(in *ports.RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"missing address", func(in *ports.RegisterInput) { in.Address = "" }, "address"},
		{"missing location", func(in *ports.RegisterInput) { in.Location = nil }, "location"},
		{"short coordinates", func(in *ports.RegisterInput) { in.Location.Coordinates = []float64{1} }, "location"},
		{"longitude out of range", func(in *ports.RegisterInput) { in.Location.Coordinates = []float64{500, 12.9} }, "location"},
		{"latitude out of range", func(in *ports.RegisterInput) { in.Location.Coordinates = []float64{77.5, -200} }, "location"},
		{"both out of range", func(in *ports.RegisterInput) { in.Location.Coordinates = []float64{500, -200} }, "location"},
		{"missing radius", func(in *ports.RegisterInput) { in.ServiceRadiusKm = nil }, "serviceRadiusKm"},
		{"negative capacity", func(in *ports.RegisterInput) { in.CapacityKgPerDay = floatPtr(-1) }, "capacityKgPerDay"},
		{"missing hours", func(in *ports.RegisterInput) { in.WorkingHours = nil }, "workingHours"},
		{"bad start", func(in *ports.RegisterInput) { in.WorkingHours.Start = "9am" }, "workingHours.start"},
		{"out of range end", func(in *ports.RegisterInput) { in.WorkingHours.End = "25:00" }, "workingHours.end"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubUserRepo()
			svc := newTestAuthService(repo, nil)
			in := vendorInput()
			tc.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			assertField(t, err, tc.field)
			if len(repo.users) != 0 {
				t.Fatal("nothing should be persisted on validation failure")
			}
		})
	}
}

func TestAuthService_Register_AdminValidation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	in := adminInput()
	in.Name = ""
	_, err := svc.Register(context.Background(), in)
	assertField(t, err, "name")

	in = adminInput()
	in.Department = "History"
	_, err = svc.Register(context.Background(), in)
	assertField(t, err, "department")
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), adminInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Same address in different case collides with the normalized one.
	in := vendorInput()
	in.Email = "ADMIN@campus.edu"
	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected one stored user, got %d", len(repo.users))
	}
}

func TestAuthService_Register_StoreRace(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = domain.ErrEmailInUse
	svc := newTestAuthService(repo, nil)

	_, err := svc.Register(context.Background(), adminInput())
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict from unique index, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{allow: true}
	svc := newTestAuthService(repo, throttle)

	reg, err := svc.Register(context.Background(), adminInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.Login(context.Background(), " ADMIN@campus.edu", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.User.ID != reg.User.ID || res.Token == "" {
		t.Fatalf("unexpected login result %+v", res)
	}
	if len(throttle.resetFor) != 1 || throttle.resetFor[0] != "admin@campus.edu" {
		t.Fatalf("expected throttle reset for normalized email, got %v", throttle.resetFor)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	if _, err := svc.Register(context.Background(), adminInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, errWrong := svc.Login(context.Background(), "admin@campus.edu", "nope")
	_, errUnknown := svc.Login(context.Background(), "ghost@campus.edu", "s3cret")

	if !errors.Is(errWrong, domain.ErrInvalidCredentials) || !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", errWrong, errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Fatal("wrong password and unknown email must be indistinguishable")
	}
}

func TestAuthService_Login_UnknownEmailPaysHashCost(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	if _, err := svc.Register(context.Background(), adminInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	var costs []int
	svc.compare = func(hash, password []byte) error {
		cost, err := bcrypt.Cost(hash)
		if err != nil {
			t.Fatalf("compare called with a non-bcrypt hash: %v", err)
		}
		costs = append(costs, cost)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	_, errUnknown := svc.Login(context.Background(), "ghost@campus.edu", "s3cret")
	_, errWrong := svc.Login(context.Background(), "admin@campus.edu", "nope")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) || !errors.Is(errWrong, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", errUnknown, errWrong)
	}
	if len(costs) != 2 {
		t.Fatalf("expected one bcrypt comparison per attempt, got %d", len(costs))
	}
	if costs[0] != costs[1] {
		t.Fatalf("unknown email compared at cost %d, real account at %d", costs[0], costs[1])
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	_, err := svc.Login(context.Background(), "", "x")
	assertField(t, err, "email")

	_, err = svc.Login(context.Background(), "a@b.com", "")
	assertField(t, err, "password")
}

func TestAuthService_Login_Throttled(t *testing.T) {
	throttle := &stubThrottle{allow: false}
	svc := newTestAuthService(newStubUserRepo(), throttle)

	_, err := svc.Login(context.Background(), "a@b.com", "x")
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ThrottleFailsOpen(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{err: errors.New("redis down")}
	svc := newTestAuthService(repo, throttle)
	if _, err := svc.Register(context.Background(), adminInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), "admin@campus.edu", "s3cret"); err != nil {
		t.Fatalf("expected login to proceed when throttle errors, got %v", err)
	}
	if throttle.calls != 1 {
		t.Fatalf("expected one throttle check, got %d", throttle.calls)
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection refused")
	svc := newTestAuthService(repo, nil)

	_, err := svc.Login(context.Background(), "a@b.com", "x")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Tokens
// ---------------------------------------------------------------------------

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testAuthConfig)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.Issue(&domain.User{ID: "u1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewTokenIssuer(testAuthConfig).Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	token, err := NewTokenIssuer(testAuthConfig).Issue(&domain.User{ID: "u1", Role: domain.RoleVendor})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewTokenIssuer(AuthConfig{JWTSecret: "other"})
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}
