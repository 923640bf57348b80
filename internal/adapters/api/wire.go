package api

import (
	"time"

	"frontdesk/internal/domain/attendance"
	"frontdesk/internal/domain/employee"
	"frontdesk/internal/domain/member"
	"frontdesk/internal/domain/reservation"
	"frontdesk/internal/domain/sale"
)

// Request bodies.

type credentialsIn struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type employeeIn struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Password string `json:"password"`
}

type memberIn struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	MembershipType string `json:"membership_type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
}

type employeeNameIn struct {
	EmployeeName string `json:"employee_name"`
}

type reservationIn struct {
	CustomerName    string `json:"customer_name"`
	ReservationDate string `json:"reservation_date"`
}

type saleIn struct {
	SaleDate string   `json:"sale_date"`
	Amount   *float64 `json:"amount"`
}

// Response bodies.

type detailOut struct {
	Detail string `json:"detail"`
}

type loginOut struct {
	Message string `json:"message"`
	Role    string `json:"role"`
	Name    string `json:"name"`
}

type adminOut struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type employeeOut struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

func toEmployeeOut(e employee.Employee) employeeOut {
	return employeeOut{ID: e.ID, Name: e.Name, Email: e.Email, Position: e.Position}
}

type memberOut struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	MembershipType string `json:"membership_type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
}

func toMemberOut(m member.Member) memberOut {
	return memberOut{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		MembershipType: m.MembershipType,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
	}
}

type attendanceOut struct {
	ID           string  `json:"id"`
	EmployeeName string  `json:"employee_name"`
	CheckIn      string  `json:"check_in"`
	CheckOut     *string `json:"check_out"`
}

func toAttendanceOut(r attendance.Record) attendanceOut {
	out := attendanceOut{
		ID:           r.ID,
		EmployeeName: r.EmployeeName,
		CheckIn:      r.CheckIn.UTC().Format(time.RFC3339),
	}
	if r.IsCheckedOut() {
		s := r.CheckOut.UTC().Format(time.RFC3339)
		out.CheckOut = &s
	}
	return out
}

// reservationDateLayout is the naive form reservation_date is sent in.
const reservationDateLayout = "2006-01-02T15:04:05"

type reservationOut struct {
	ID              string `json:"id"`
	CustomerName    string `json:"customer_name"`
	ReservationDate string `json:"reservation_date"`
	Status          string `json:"status"`
}

func toReservationOut(r reservation.Reservation) reservationOut {
	return reservationOut{
		ID:              r.ID,
		CustomerName:    r.CustomerName,
		ReservationDate: r.Date.Format(reservationDateLayout),
		Status:          r.Status,
	}
}

type saleOut struct {
	ID       string  `json:"id"`
	SaleDate string  `json:"sale_date"`
	Amount   float64 `json:"amount"`
}

func toSaleOut(s sale.Sale) saleOut {
	return saleOut{ID: s.ID, SaleDate: s.Date.Format("2006-01-02"), Amount: s.Amount}
}

type salesTotalOut struct {
	TotalSales float64 `json:"total_sales"`
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
