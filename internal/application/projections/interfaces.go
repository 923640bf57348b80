package projections

import (
	"context"

	"frontdesk/internal/adapters/storage/attendance"
	"frontdesk/internal/adapters/storage/member"
	"frontdesk/internal/adapters/storage/reservation"
	"frontdesk/internal/adapters/storage/sale"
	domainAttendance "frontdesk/internal/domain/attendance"
	domainEmployee "frontdesk/internal/domain/employee"
	domainMember "frontdesk/internal/domain/member"
	domainReservation "frontdesk/internal/domain/reservation"
	domainSale "frontdesk/internal/domain/sale"
)

// MemberStore interface for member queries.
type MemberStore interface {
	List(ctx context.Context, filter member.ListFilter) ([]domainMember.Member, error)
}

// AttendanceStore interface for attendance queries.
type AttendanceStore interface {
	List(ctx context.Context, filter attendance.ListFilter) ([]domainAttendance.Record, error)
	ListClosed(ctx context.Context) ([]domainAttendance.Record, error)
}

// ReservationStore interface for reservation queries.
type ReservationStore interface {
	List(ctx context.Context, filter reservation.ListFilter) ([]domainReservation.Reservation, error)
}

// SaleStore interface for sale queries.
type SaleStore interface {
	List(ctx context.Context, filter sale.ListFilter) ([]domainSale.Sale, error)
	Total(ctx context.Context) (float64, error)
}

// EmployeeStore interface for employee queries.
type EmployeeStore interface {
	List(ctx context.Context) ([]domainEmployee.Employee, error)
}
