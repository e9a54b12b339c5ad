package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WatReservationService/internal/domain"
	"github.com/m04kA/WatReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/WatReservationService/internal/integrations/identityservice"
	"github.com/m04kA/WatReservationService/internal/service/notifier"
	"github.com/m04kA/WatReservationService/internal/service/reservations"
	"github.com/m04kA/WatReservationService/pkg/errs"
	"github.com/m04kA/WatReservationService/pkg/keylock"
	"github.com/m04kA/WatReservationService/pkg/logger"
	"github.com/m04kA/WatReservationService/pkg/metrics"
	"github.com/m04kA/WatReservationService/pkg/txmanager"
)

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type fakeIdentity struct {
	temples map[string]*domain.Temple
	users   map[string]*domain.Person
	err     error
}

func (f *fakeIdentity) GetTemple(ctx context.Context, templeID string) (*domain.Temple, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.temples[templeID]
	if !ok {
		return nil, identityservice.ErrTempleNotFound
	}
	return t, nil
}

func (f *fakeIdentity) GetUser(ctx context.Context, userID string) (*domain.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, identityservice.ErrUserNotFound
	}
	return u, nil
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Send(ctx context.Context, title, description, recipientID string) error {
	args := m.Called(ctx, title, description, recipientID)
	return args.Error(0)
}

type failingTx struct {
	err error
}

func (f failingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type env struct {
	uc      *UseCase
	repo    *reservation.MemoryRepository
	gateway *mockGateway
}

func newEnv(t *testing.T, maxWorkload int, policy domain.AdmissionPolicy) *env {
	t.Helper()

	repo := reservation.NewMemoryRepository()
	gw := new(mockGateway)
	gw.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	identity := &fakeIdentity{
		temples: map[string]*domain.Temple{
			"wat-1": {ID: "wat-1", Name: "Wat Arun", Phone: "021234567", MaxWorkload: maxWorkload},
		},
		users: map[string]*domain.Person{
			"user-1": {ID: "user-1", Firstname: "Somchai", Lastname: "Jaidee", Phone: "0812345678"},
		},
	}

	log := logger.NewNop()
	uc := NewUseCase(
		repo,
		identity,
		notifier.NewService(gw, metrics.Noop{}, log),
		keylock.NewLocal(),
		txmanager.NewNoop(),
		metrics.Noop{},
		Options{Policy: policy},
		log,
	)
	uc.timeProvider = fixedTime{now: time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)}

	return &env{uc: uc, repo: repo, gateway: gw}
}

func mustDate(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func request(start string, duration int, cremation string) *Request {
	return &Request{
		TempleID:        "wat-1",
		RequesterID:     "user-1",
		ReservationDate: mustDate(start),
		Duration:        duration,
		CremationDate:   mustDate(cremation),
		Addons:          []string{"flowers", " flowers ", "monk", ""},
		Price:           1500,
	}
}

func TestExecute_Success(t *testing.T) {
	e := newEnv(t, 2, domain.AdmissionPolicy{})

	resp, err := e.uc.Execute(context.Background(), request("2024-10-10", 3, "2024-10-13"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.SenderRequester), resp.Sender)
	assert.Equal(t, []string{"flowers", "monk"}, resp.Addons)

	stored, err := e.repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, mustDate("2024-10-10"), stored.ReservationDate)

	// уведомления: храму о новой брони, заказчику о приёме заявки
	e.gateway.AssertCalled(t, "Send", mock.Anything, "New reservation", mock.Anything, "wat-1")
	e.gateway.AssertCalled(t, "Send", mock.Anything, "Reservation submitted", mock.Anything, "user-1")
	e.gateway.AssertNumberOfCalls(t, "Send", 2)
}

func TestExecute_AdmissionRules(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		policy  domain.AdmissionPolicy
		wantErr error
	}{
		{name: "дата в прошлом", req: request("2024-09-30", 1, "2024-10-02"), wantErr: ErrPastDate},
		{name: "кремация до брони", req: request("2024-10-10", 2, "2024-10-09"), wantErr: ErrInvalidCremationWindow},
		{name: "кремация внутри окна", req: request("2024-10-10", 3, "2024-10-11"), wantErr: ErrInvalidCremationWindow},
		{name: "кремация в день брони", req: request("2024-10-10", 1, "2024-10-10"), wantErr: ErrInvalidCremationWindow},
		{name: "кремация в день брони по политике", req: request("2024-10-10", 1, "2024-10-10"), policy: domain.AdmissionPolicy{AllowSameDayCremation: true}},
		{name: "сегодняшняя дата", req: request("2024-10-01", 1, "2024-10-02")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, 1, tt.policy)

			_, err := e.uc.Execute(context.Background(), tt.req)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, errs.Is(err, errs.ErrConflict))

			all, _ := e.repo.GetByTemple(context.Background(), "wat-1")
			assert.Empty(t, all, "rejected reservation must not be persisted")
			e.gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_OccupancyCapacity(t *testing.T) {
	for _, n := range []int{1, 3} {
		t.Run(fmt.Sprintf("max_workload=%d", n), func(t *testing.T) {
			e := newEnv(t, n, domain.AdmissionPolicy{})
			ctx := context.Background()

			// N-1 пересекающихся броней с разными датами кремации
			for i := 0; i < n-1; i++ {
				_, err := e.uc.Execute(ctx, request("2024-10-09", 3, fmt.Sprintf("2024-10-%d", 20+i)))
				require.NoError(t, err)
			}

			_, err := e.uc.Execute(ctx, request("2024-10-10", 2, "2024-10-15"))
			require.NoError(t, err, "N-th overlapping reservation must be admitted")

			_, err = e.uc.Execute(ctx, request("2024-10-11", 1, "2024-10-16"))
			assert.ErrorIs(t, err, ErrCapacityExceededOccupancy)
		})
	}
}

func TestExecute_CremationCapacity(t *testing.T) {
	for _, n := range []int{1, 2} {
		t.Run(fmt.Sprintf("max_workload=%d", n), func(t *testing.T) {
			e := newEnv(t, n, domain.AdmissionPolicy{})
			ctx := context.Background()

			// окна не пересекаются, кремация в один день
			for i := 0; i < n; i++ {
				start := fmt.Sprintf("2024-10-%02d", 2+i)
				_, err := e.uc.Execute(ctx, request(start, 1, "2024-10-25"))
				require.NoError(t, err)
			}

			_, err := e.uc.Execute(ctx, request("2024-10-20", 1, "2024-10-25"))
			assert.ErrorIs(t, err, ErrCapacityExceededCremation)
		})
	}
}

func TestExecute_ThirdIdenticalReservationRejected(t *testing.T) {
	e := newEnv(t, 2, domain.AdmissionPolicy{})
	ctx := context.Background()

	_, err := e.uc.Execute(ctx, request("2024-10-10", 3, "2024-10-13"))
	require.NoError(t, err, "A")

	_, err = e.uc.Execute(ctx, request("2024-10-10", 3, "2024-10-13"))
	require.NoError(t, err, "B")

	_, err = e.uc.Execute(ctx, request("2024-10-10", 3, "2024-10-13"))
	assert.ErrorIs(t, err, ErrCapacityExceededOccupancy, "C")
}

func TestExecute_RejectedReservationKeepsCapacity(t *testing.T) {
	e := newEnv(t, 1, domain.AdmissionPolicy{})
	ctx := context.Background()

	first, err := e.uc.Execute(ctx, request("2024-10-10", 3, "2024-10-13"))
	require.NoError(t, err)

	rejected := domain.StatusRejected
	_, err = e.repo.Update(ctx, first.ID, domain.ReservationPatch{Status: &rejected})
	require.NoError(t, err)

	// статус можно вернуть в accepted без повторной проверки, поэтому место не освобождается
	_, err = e.uc.Execute(ctx, request("2024-10-11", 1, "2024-10-20"))
	assert.ErrorIs(t, err, ErrCapacityExceededOccupancy)

	accepted := domain.StatusAccepted
	_, err = e.repo.Update(ctx, first.ID, domain.ReservationPatch{Status: &accepted})
	require.NoError(t, err)

	all, err := e.repo.GetByTemple(ctx, "wat-1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDelete_SendsNoNotifications(t *testing.T) {
	e := newEnv(t, 1, domain.AdmissionPolicy{})
	ctx := context.Background()

	created, err := e.uc.Execute(ctx, request("2024-10-10", 3, "2024-10-13"))
	require.NoError(t, err)
	e.gateway.AssertNumberOfCalls(t, "Send", 2)

	gw := new(mockGateway)
	gw.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	e.uc.notifier = notifier.NewService(gw, metrics.Noop{}, logger.NewNop())

	require.NoError(t, reservations.NewService(e.repo, logger.NewNop()).Delete(ctx, created.ID.String()))
	gw.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	e.gateway.AssertNumberOfCalls(t, "Send", 2)

	// удаление освобождает место
	_, err = e.uc.Execute(ctx, request("2024-10-10", 3, "2024-10-13"))
	require.NoError(t, err)
	gw.AssertNumberOfCalls(t, "Send", 2)
}

func TestExecute_ConcurrentAdmission(t *testing.T) {
	for attempt := 0; attempt < 20; attempt++ {
		e := newEnv(t, 1, domain.AdmissionPolicy{})

		var (
			wg      sync.WaitGroup
			start   = make(chan struct{})
			results = make([]error, 2)
		)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				_, results[i] = e.uc.Execute(context.Background(), request("2024-10-10", 3, "2024-10-13"))
			}(i)
		}
		close(start)
		wg.Wait()

		succeeded, rejected := 0, 0
		for _, err := range results {
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrCapacityExceededOccupancy):
				rejected++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		require.Equal(t, 1, succeeded, "attempt %d", attempt)
		require.Equal(t, 1, rejected, "attempt %d", attempt)

		all, _ := e.repo.GetByTemple(context.Background(), "wat-1")
		require.Len(t, all, 1)
	}
}

func TestExecute_IdentityErrors(t *testing.T) {
	e := newEnv(t, 1, domain.AdmissionPolicy{})
	ctx := context.Background()

	req := request("2024-10-10", 1, "2024-10-11")
	req.TempleID = "wat-404"
	_, err := e.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrTempleNotFound)
	assert.True(t, errs.Is(err, errs.ErrNotFound))

	req = request("2024-10-10", 1, "2024-10-11")
	req.RequesterID = "user-404"
	_, err = e.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrRequesterNotFound)

	e.uc.identityClient = &fakeIdentity{err: fmt.Errorf("%w: timeout", identityservice.ErrUnavailable)}
	_, err = e.uc.Execute(ctx, request("2024-10-10", 1, "2024-10-11"))
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
	assert.True(t, errs.Is(err, errs.ErrUpstreamUnavailable))
}

func TestExecute_InvalidInput(t *testing.T) {
	e := newEnv(t, 1, domain.AdmissionPolicy{})

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "без храма", mutate: func(r *Request) { r.TempleID = "  " }},
		{name: "без заказчика", mutate: func(r *Request) { r.RequesterID = "" }},
		{name: "нулевая длительность", mutate: func(r *Request) { r.Duration = 0 }},
		{name: "отрицательная цена", mutate: func(r *Request) { r.Price = -1 }},
		{name: "без даты", mutate: func(r *Request) { r.ReservationDate = time.Time{} }},
		{name: "без даты кремации", mutate: func(r *Request) { r.CremationDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request("2024-10-10", 1, "2024-10-11")
			tt.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.True(t, errs.Is(err, errs.ErrInvalidInput))
		})
	}
}

func TestExecute_NotificationFailureKeepsReservation(t *testing.T) {
	e := newEnv(t, 1, domain.AdmissionPolicy{})

	gw := new(mockGateway)
	gw.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	e.uc.notifier = notifier.NewService(gw, metrics.Noop{}, logger.NewNop())

	resp, err := e.uc.Execute(context.Background(), request("2024-10-10", 3, "2024-10-13"))
	require.NoError(t, err)

	_, err = e.repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	gw.AssertNumberOfCalls(t, "Send", 2)
}

func TestExecute_SerializationFailure(t *testing.T) {
	e := newEnv(t, 1, domain.AdmissionPolicy{})
	e.uc.txManager = failingTx{err: fmt.Errorf("%w: 40001", txmanager.ErrSerializationFailure)}

	_, err := e.uc.Execute(context.Background(), request("2024-10-10", 3, "2024-10-13"))
	assert.ErrorIs(t, err, ErrConcurrentModification)
	assert.True(t, errs.Is(err, errs.ErrConflict))
	e.gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_TodayUsesConfiguredTimezone(t *testing.T) {
	e := newEnv(t, 1, domain.AdmissionPolicy{})
	bangkok := time.FixedZone("ICT", 7*60*60)
	e.uc.location = bangkok
	// 2024-10-01 20:00 UTC = 2024-10-02 03:00 в Бангкоке
	e.uc.timeProvider = fixedTime{now: time.Date(2024, 10, 1, 20, 0, 0, 0, time.UTC)}

	_, err := e.uc.Execute(context.Background(), request("2024-10-01", 1, "2024-10-03"))
	assert.ErrorIs(t, err, ErrPastDate)

	_, err = e.uc.Execute(context.Background(), request("2024-10-02", 1, "2024-10-03"))
	assert.NoError(t, err)
}
