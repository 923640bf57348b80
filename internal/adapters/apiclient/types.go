package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"

	"frontdesk/internal/application/listutil"
	"frontdesk/internal/domain/attendance"
)

// ID is a record identifier. Backends may send it as a JSON number or string.
type ID string

// UnmarshalJSON accepts a number, a string, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a number or string: %w", err)
		}
		*id = ID(n.String())
		return nil
	}
}

// ListOptions windows a list call. Zero values use the backend defaults.
type ListOptions = listutil.Window

// Credentials is the login and admin registration payload.
type Credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginResponse is the session descriptor returned by a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
	Name    string `json:"name"`
}

// Admin is a registered admin.
type Admin struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Employee is a staff member as listed by the backend.
type Employee struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

// NewEmployee is the create-employee payload.
type NewEmployee struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Password string `json:"password"`
}

// NewMember is the create-member payload. Dates are YYYY-MM-DD.
type NewMember struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	MembershipType string `json:"membership_type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
}

// Member is a stored member.
type Member struct {
	ID ID `json:"id"`
	NewMember
}

// AttendanceRecord is one shift as sent on the wire.
type AttendanceRecord struct {
	ID           ID      `json:"id"`
	EmployeeName string  `json:"employee_name"`
	CheckIn      string  `json:"check_in"`
	CheckOut     *string `json:"check_out"`
}

// Record converts the wire form to the domain record.
func (a AttendanceRecord) Record() (attendance.Record, error) {
	in, err := attendance.ParseTimestamp(a.CheckIn)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("check_in: %w", err)
	}
	r := attendance.Record{ID: string(a.ID), EmployeeName: a.EmployeeName, CheckIn: in}
	if a.CheckOut != nil && *a.CheckOut != "" {
		out, err := attendance.ParseTimestamp(*a.CheckOut)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("check_out: %w", err)
		}
		r.CheckOut = out
	}
	return r, nil
}

// NewReservation is the create-reservation payload.
type NewReservation struct {
	CustomerName    string `json:"customer_name"`
	ReservationDate string `json:"reservation_date"`
}

// Reservation is a stored reservation.
type Reservation struct {
	ID              ID     `json:"id"`
	CustomerName    string `json:"customer_name"`
	ReservationDate string `json:"reservation_date"`
	Status          string `json:"status"`
}

// NewSale is the create-sale payload.
type NewSale struct {
	SaleDate string  `json:"sale_date"`
	Amount   float64 `json:"amount"`
}

// Sale is a stored sale.
type Sale struct {
	ID       ID      `json:"id"`
	SaleDate string  `json:"sale_date"`
	Amount   float64 `json:"amount"`
}

// SyncResult is the reservation sync status message.
type SyncResult struct {
	Detail string `json:"detail"`
}

type salesTotal struct {
	TotalSales float64 `json:"total_sales"`
}

type employeeName struct {
	EmployeeName string `json:"employee_name"`
}
