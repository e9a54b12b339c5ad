package update_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	updateReservation "github.com/m04kA/WatReservationService/internal/usecase/update_reservation"
	"github.com/m04kA/WatReservationService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *updateReservation.Request) (*updateReservation.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*updateReservation.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(uc *mockUseCase, id, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/reservations/{reservationId}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "ok", body: `{"status":"accepted","sender":"user"}`, wantStatus: http.StatusOK},
		{name: "неверная дата", body: `{"cremationDate":"tomorrow"}`, wantStatus: http.StatusBadRequest},
		{name: "неверный статус", body: `{"status":"done"}`, err: updateReservation.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "не найдено", body: `{"status":"accepted"}`, err: updateReservation.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "терминальный статус", body: `{"status":"accepted"}`, err: updateReservation.ErrTerminalStatus, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			matcher := mock.MatchedBy(func(r *updateReservation.Request) bool { return r.ID == id.String() })
			if tt.err != nil {
				uc.On("Execute", mock.Anything, matcher).Return(nil, tt.err)
			} else {
				uc.On("Execute", mock.Anything, matcher).Return(&updateReservation.Response{
					ID: id, Status: "accepted", Sender: "requester", NotificationsSent: 2,
				}, nil).Maybe()
			}

			rec := serve(uc, id.String(), tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
