package projections

import (
	"context"

	"frontdesk/internal/adapters/storage/attendance"
	"frontdesk/internal/adapters/storage/member"
	"frontdesk/internal/adapters/storage/reservation"
	"frontdesk/internal/adapters/storage/sale"
	"frontdesk/internal/application/listutil"
	domainAttendance "frontdesk/internal/domain/attendance"
	domainEmployee "frontdesk/internal/domain/employee"
	domainMember "frontdesk/internal/domain/member"
	domainReservation "frontdesk/internal/domain/reservation"
	domainSale "frontdesk/internal/domain/sale"
)

// QueryListMembers returns one window of members in registration order.
// PRE: window came from listutil.ParseWindow
// POST: at most window.Limit members, skipping window.Skip
func QueryListMembers(ctx context.Context, window listutil.Window, store MemberStore) ([]domainMember.Member, error) {
	return store.List(ctx, member.ListFilter{Limit: window.Limit, Offset: window.Skip})
}

// QueryListAttendance returns one window of shifts, open or closed, in check-in order.
func QueryListAttendance(ctx context.Context, window listutil.Window, store AttendanceStore) ([]domainAttendance.Record, error) {
	return store.List(ctx, attendance.ListFilter{Limit: window.Limit, Offset: window.Skip})
}

// QueryListReservations returns one window of reservations in booking order.
func QueryListReservations(ctx context.Context, window listutil.Window, store ReservationStore) ([]domainReservation.Reservation, error) {
	return store.List(ctx, reservation.ListFilter{Limit: window.Limit, Offset: window.Skip})
}

// QueryListSales returns one window of sales in entry order.
func QueryListSales(ctx context.Context, window listutil.Window, store SaleStore) ([]domainSale.Sale, error) {
	return store.List(ctx, sale.ListFilter{Limit: window.Limit, Offset: window.Skip})
}

// QueryListEmployees returns every employee. The admin panel lists staff unwindowed.
func QueryListEmployees(ctx context.Context, store EmployeeStore) ([]domainEmployee.Employee, error) {
	employees, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []domainEmployee.Employee{}
	}
	return employees, nil
}
