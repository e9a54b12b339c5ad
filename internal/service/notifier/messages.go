package notifier

import (
	"fmt"
	"strings"

	"github.com/m04kA/WatReservationService/internal/domain"
)

// Subject данные, из которых собирается текст уведомления
type Subject struct {
	Reservation *domain.Reservation
	Temple      *domain.Temple
	Requester   *domain.Person
}

func (s Subject) templeName() string {
	if s.Temple != nil && s.Temple.Name != "" {
		return s.Temple.Name
	}
	return "the temple"
}

func (s Subject) templePhone() string {
	if s.Temple != nil && s.Temple.Phone != "" {
		return s.Temple.Phone
	}
	return "not provided"
}

func (s Subject) requesterName() string {
	if s.Requester != nil {
		if name := s.Requester.FullName(); name != "" {
			return name
		}
	}
	return "the requester"
}

func (s Subject) requesterPhone() string {
	if s.Requester != nil && s.Requester.Phone != "" {
		return s.Requester.Phone
	}
	return "not provided"
}

// schedule краткое описание расписания, услуг и цены
func (s Subject) schedule() string {
	r := s.Reservation
	addons := "none"
	if len(r.Addons) > 0 {
		addons = strings.Join(r.Addons, ", ")
	}
	return fmt.Sprintf("Reservation %s: from %s for %d day(s), cremation on %s. Add-ons: %s. Price: %.2f.",
		r.ID,
		r.ReservationDate.Format(domain.DateFormat),
		r.Duration,
		r.CremationDate.Format(domain.DateFormat),
		addons,
		r.Price,
	)
}

// render возвращает заголовок и текст уведомления вида kind
func render(kind domain.NotificationKind, s Subject) (title, description string, ok bool) {
	switch kind {
	// заказчику
	case domain.NotifyBookingSubmitted:
		return "Reservation submitted",
			fmt.Sprintf("Your reservation at %s has been submitted and is waiting for confirmation. %s", s.templeName(), s.schedule()),
			true
	case domain.NotifyBookingConfirmed:
		return "Reservation confirmed",
			fmt.Sprintf("Your reservation has been confirmed by %s. %s", s.templeName(), s.schedule()),
			true
	case domain.NotifyServiceCompleted:
		return "Service completed",
			fmt.Sprintf("The cremation service at %s has been completed. Thank you for choosing us and please accept our condolences.", s.templeName()),
			true
	case domain.NotifyCancellationAcknowledged:
		return "Reservation cancelled",
			fmt.Sprintf("Your cancellation of the reservation at %s has been received. %s", s.templeName(), s.schedule()),
			true
	case domain.NotifyRefundInProgress:
		return "Reservation cancelled by the temple",
			fmt.Sprintf("%s has cancelled your reservation. A refund is in progress. Contact the temple at %s. %s",
				s.templeName(), s.templePhone(), s.schedule()),
			true

	// храму
	case domain.NotifyNewBooking:
		return "New reservation",
			fmt.Sprintf("%s has requested a reservation. %s", s.requesterName(), s.schedule()),
			true
	case domain.NotifyConfirmationRecorded:
		return "Reservation confirmed",
			fmt.Sprintf("You confirmed the reservation of %s. %s", s.requesterName(), s.schedule()),
			true
	case domain.NotifyPayoutCompleted:
		return "Service completed",
			fmt.Sprintf("The service for %s is completed. The payout of %.2f is being processed.", s.requesterName(), s.Reservation.Price),
			true
	case domain.NotifyCancelledByRequester:
		return "Reservation cancelled by the requester",
			fmt.Sprintf("%s has cancelled the reservation. Contact the requester at %s. %s",
				s.requesterName(), s.requesterPhone(), s.schedule()),
			true
	case domain.NotifyCancellationConfirmed:
		return "Cancellation recorded",
			fmt.Sprintf("You cancelled the reservation of %s. %s", s.requesterName(), s.schedule()),
			true
	}
	return "", "", false
}
