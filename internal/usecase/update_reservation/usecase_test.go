package update_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WatReservationService/internal/domain"
	"github.com/m04kA/WatReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/WatReservationService/internal/service/notifier"
	"github.com/m04kA/WatReservationService/pkg/errs"
	"github.com/m04kA/WatReservationService/pkg/keylock"
	"github.com/m04kA/WatReservationService/pkg/logger"
	"github.com/m04kA/WatReservationService/pkg/metrics"
	"github.com/m04kA/WatReservationService/pkg/ptr"
	"github.com/m04kA/WatReservationService/pkg/txmanager"
)

type stubIdentity struct {
	err error
}

func (s *stubIdentity) GetTemple(ctx context.Context, templeID string) (*domain.Temple, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Temple{ID: templeID, Name: "Wat Pho", Phone: "022222222", MaxWorkload: 2}, nil
}

func (s *stubIdentity) GetUser(ctx context.Context, userID string) (*domain.Person, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Person{ID: userID, Firstname: "Malee", Lastname: "Suk", Phone: "0899999999"}, nil
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Send(ctx context.Context, title, description, recipientID string) error {
	args := m.Called(ctx, title, description, recipientID)
	return args.Error(0)
}

type fixture struct {
	uc       *UseCase
	repo     *reservation.MemoryRepository
	gateway  *mockGateway
	identity *stubIdentity
	stored   *domain.Reservation
}

func newFixture(t *testing.T, status domain.ReservationStatus, opts Options) *fixture {
	t.Helper()

	repo := reservation.NewMemoryRepository()
	stored, err := repo.Create(context.Background(), &domain.Reservation{
		TempleID:        "wat-1",
		RequesterID:     "user-1",
		ReservationDate: time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC),
		Duration:        3,
		CremationDate:   time.Date(2024, 10, 13, 0, 0, 0, 0, time.UTC),
		Status:          status,
		Sender:          domain.SenderRequester,
		Addons:          []string{"flowers"},
		Price:           1000,
	})
	require.NoError(t, err)

	gw := new(mockGateway)
	gw.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	identity := &stubIdentity{}
	log := logger.NewNop()
	uc := NewUseCase(repo, identity, notifier.NewService(gw, metrics.Noop{}, log),
		keylock.NewLocal(), txmanager.NewNoop(), opts, log)

	return &fixture{uc: uc, repo: repo, gateway: gw, identity: identity, stored: stored}
}

func TestExecute_AcceptedByUser(t *testing.T) {
	f := newFixture(t, domain.StatusPending, Options{})

	resp, err := f.uc.Execute(context.Background(), &Request{
		ID:     f.stored.ID.String(),
		Status: ptr.Ptr("accepted"),
		Sender: ptr.Ptr("user"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	assert.Equal(t, string(domain.SenderRequester), resp.Sender)
	assert.Equal(t, 2, resp.NotificationsSent)

	f.gateway.AssertNumberOfCalls(t, "Send", 2)
	f.gateway.AssertCalled(t, "Send", mock.Anything, "Reservation confirmed",
		mock.MatchedBy(func(d string) bool { return d != "" }), "user-1")
	f.gateway.AssertCalled(t, "Send", mock.Anything, "Reservation confirmed", mock.Anything, "wat-1")
}

func TestExecute_RepeatedUpdateRefiresNotifications(t *testing.T) {
	f := newFixture(t, domain.StatusPending, Options{})
	req := &Request{ID: f.stored.ID.String(), Status: ptr.Ptr("accepted")}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	f.gateway.AssertNumberOfCalls(t, "Send", 4)
}

func TestExecute_Transitions(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		sender        *string
		wantRequester string
		wantTemple    string
	}{
		{
			name:          "отмена заказчиком",
			status:        "rejected",
			sender:        ptr.Ptr("requester"),
			wantRequester: "Reservation cancelled",
			wantTemple:    "Reservation cancelled by the requester",
		},
		{
			name:          "отмена храмом",
			status:        "rejected",
			sender:        ptr.Ptr("wat"),
			wantRequester: "Reservation cancelled by the temple",
			wantTemple:    "Cancellation recorded",
		},
		{
			name:          "отмена без sender, используется сохранённый",
			status:        "rejected",
			wantRequester: "Reservation cancelled",
			wantTemple:    "Reservation cancelled by the requester",
		},
		{
			name:          "услуга оказана",
			status:        "passed",
			sender:        ptr.Ptr("temple"),
			wantRequester: "Service completed",
			wantTemple:    "Service completed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, domain.StatusAccepted, Options{})

			resp, err := f.uc.Execute(context.Background(), &Request{
				ID:     f.stored.ID.String(),
				Status: ptr.Ptr(tt.status),
				Sender: tt.sender,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.Status)

			f.gateway.AssertNumberOfCalls(t, "Send", 2)
			f.gateway.AssertCalled(t, "Send", mock.Anything, tt.wantRequester, mock.Anything, "user-1")
			f.gateway.AssertCalled(t, "Send", mock.Anything, tt.wantTemple, mock.Anything, "wat-1")
		})
	}
}

func TestExecute_NoNotifications(t *testing.T) {
	tests := []struct {
		name string
		req  func(id string) *Request
	}{
		{
			name: "pending",
			req:  func(id string) *Request { return &Request{ID: id, Status: ptr.Ptr("pending")} },
		},
		{
			name: "без статуса",
			req:  func(id string) *Request { return &Request{ID: id, Price: ptr.Ptr(2500.0)} },
		},
		{
			name: "только sender",
			req:  func(id string) *Request { return &Request{ID: id, Sender: ptr.Ptr("temple")} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, domain.StatusAccepted, Options{})

			resp, err := f.uc.Execute(context.Background(), tt.req(f.stored.ID.String()))
			require.NoError(t, err)
			assert.Zero(t, resp.NotificationsSent)
			f.gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_PatchWithoutRevalidation(t *testing.T) {
	f := newFixture(t, domain.StatusPending, Options{})
	// дата в прошлом и кремация внутри окна сохраняются как есть
	past := time.Date(2020, 1, 1, 15, 30, 0, 0, time.UTC)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ID:              f.stored.ID.String(),
		ReservationDate: &past,
		Duration:        ptr.Ptr(10),
		Addons:          &[]string{"monk", "monk", " candles "},
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), resp.ReservationDate)
	assert.Equal(t, 10, resp.Duration)
	assert.Equal(t, []string{"monk", "candles"}, resp.Addons)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_StrictTerminal(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusPassed, domain.StatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t, status, Options{StrictTerminal: true})

			_, err := f.uc.Execute(context.Background(), &Request{ID: f.stored.ID.String(), Status: ptr.Ptr("accepted")})
			require.ErrorIs(t, err, ErrTerminalStatus)
			assert.True(t, errs.Is(err, errs.ErrConflict))

			stored, err := f.repo.GetByID(context.Background(), f.stored.ID)
			require.NoError(t, err)
			assert.Equal(t, status, stored.Status)
		})
	}

	t.Run("выключено", func(t *testing.T) {
		f := newFixture(t, domain.StatusRejected, Options{})

		resp, err := f.uc.Execute(context.Background(), &Request{ID: f.stored.ID.String(), Status: ptr.Ptr("accepted")})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	})
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(t, domain.StatusPending, Options{})
	id := f.stored.ID.String()

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "неизвестный статус", req: &Request{ID: id, Status: ptr.Ptr("cancelled")}, wantErr: ErrInvalidInput},
		{name: "статус-шаблон", req: &Request{ID: id, Status: ptr.Ptr("*")}, wantErr: ErrInvalidInput},
		{name: "неизвестный sender", req: &Request{ID: id, Sender: ptr.Ptr("admin")}, wantErr: ErrInvalidInput},
		{name: "пустой patch", req: &Request{ID: id}, wantErr: ErrInvalidInput},
		{name: "нулевая длительность", req: &Request{ID: id, Duration: ptr.Ptr(0)}, wantErr: ErrInvalidInput},
		{name: "отрицательная цена", req: &Request{ID: id, Price: ptr.Ptr(-5.0)}, wantErr: ErrInvalidInput},
		{name: "некорректный id", req: &Request{ID: "not-a-uuid", Status: ptr.Ptr("accepted")}, wantErr: ErrInvalidInput},
		{name: "не найдено", req: &Request{ID: uuid.NewString(), Status: ptr.Ptr("accepted")}, wantErr: ErrReservationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := f.uc.Execute(context.Background(), &Request{ID: uuid.NewString(), Status: ptr.Ptr("accepted")})
	assert.True(t, errs.Is(err, errs.ErrNotFound))
	f.gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_IdentityFailureSkipsNotifications(t *testing.T) {
	f := newFixture(t, domain.StatusPending, Options{})
	f.identity.err = errors.New("identity: connection refused")

	resp, err := f.uc.Execute(context.Background(), &Request{ID: f.stored.ID.String(), Status: ptr.Ptr("accepted")})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	assert.Zero(t, resp.NotificationsSent)
	f.gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
