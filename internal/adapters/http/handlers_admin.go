package web

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"frontdesk/internal/adapters/apiclient"
	"frontdesk/internal/domain/view"
)

var errAmount = errors.New("amount must be a number")

func (s *server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	in := apiclient.NewReservation{
		CustomerName:    strings.TrimSpace(r.FormValue("customer_name")),
		ReservationDate: r.FormValue("reservation_date"),
	}
	s.perform(w, r, actCreateReservation, func(ctx context.Context) (result, error) {
		res, err := s.backend.CreateReservation(ctx, in)
		if err != nil {
			return nil, err
		}
		return func(_ *view.Controller, b *view.Board) {
			b.SetMessage(view.SlotReservation, "Reservation created, ID: "+string(res.ID))
		}, nil
	})
}

func (s *server) handleLoadReservations(w http.ResponseWriter, r *http.Request) {
	opts := listOptionsFrom(r)
	s.perform(w, r, actLoadReservations, func(ctx context.Context) (result, error) {
		list, err := s.backend.ListReservations(ctx, opts)
		if err != nil {
			return nil, err
		}
		items := make([]string, 0, len(list))
		for _, res := range list {
			items = append(items, fmt.Sprintf("ID: %s, Customer: %s, Date: %s, Status: %s",
				res.ID, res.CustomerName, dateOnly(res.ReservationDate), res.Status))
		}
		return func(_ *view.Controller, b *view.Board) {
			b.SetItems(view.SlotReservationList, items)
		}, nil
	})
}

// dateOnly trims a timestamp to its calendar date; other values pass through.
func dateOnly(value string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

func (s *server) handleSyncReservations(w http.ResponseWriter, r *http.Request) {
	s.perform(w, r, actSyncReservations, func(ctx context.Context) (result, error) {
		res, err := s.backend.SyncReservations(ctx)
		if err != nil {
			return nil, err
		}
		return func(_ *view.Controller, b *view.Board) {
			b.Set(view.SlotSync, view.Slot{Message: res.Detail, Markdown: true})
		}, nil
	})
}

func (s *server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	amount, parseErr := strconv.ParseFloat(strings.TrimSpace(r.FormValue("amount")), 64)
	if parseErr != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		parseErr = errAmount
	}
	in := apiclient.NewSale{SaleDate: r.FormValue("sale_date"), Amount: amount}
	s.perform(w, r, actCreateSale, func(ctx context.Context) (result, error) {
		if parseErr != nil {
			return nil, parseErr
		}
		sale, err := s.backend.CreateSale(ctx, in)
		if err != nil {
			return nil, err
		}
		return func(_ *view.Controller, b *view.Board) {
			b.SetMessage(view.SlotSale, "Sale recorded, ID: "+string(sale.ID))
		}, nil
	})
}

func (s *server) handleLoadSales(w http.ResponseWriter, r *http.Request) {
	opts := listOptionsFrom(r)
	s.perform(w, r, actLoadSales, func(ctx context.Context) (result, error) {
		sales, err := s.backend.ListSales(ctx, opts)
		if err != nil {
			return nil, err
		}
		items := make([]string, 0, len(sales))
		for _, sale := range sales {
			items = append(items, fmt.Sprintf("ID: %s, Date: %s, Amount: %s", sale.ID, dateOnly(sale.SaleDate), formatAmount(sale.Amount)))
		}
		return func(_ *view.Controller, b *view.Board) {
			b.SetItems(view.SlotSaleList, items)
		}, nil
	})
}

func (s *server) handleSalesTotal(w http.ResponseWriter, r *http.Request) {
	s.perform(w, r, actSalesTotal, func(ctx context.Context) (result, error) {
		total, err := s.backend.SalesTotal(ctx)
		if err != nil {
			return nil, err
		}
		return func(_ *view.Controller, b *view.Board) {
			b.SetMessage(view.SlotTotalSales, "Total sales: "+formatAmount(total))
		}, nil
	})
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	in := apiclient.NewEmployee{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Position: strings.TrimSpace(r.FormValue("position")),
		Password: r.FormValue("password"),
	}
	s.perform(w, r, actCreateEmployee, func(ctx context.Context) (result, error) {
		emp, err := s.backend.CreateEmployee(ctx, in)
		if err != nil {
			return nil, err
		}
		return func(_ *view.Controller, b *view.Board) {
			b.SetMessage(view.SlotEmployee, "Employee registered, ID: "+string(emp.ID))
		}, nil
	})
}

func (s *server) handleLoadEmployees(w http.ResponseWriter, r *http.Request) {
	s.perform(w, r, actLoadEmployees, func(ctx context.Context) (result, error) {
		employees, err := s.backend.ListEmployees(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]string, 0, len(employees))
		for _, e := range employees {
			items = append(items, fmt.Sprintf("ID: %s, Name: %s, Email: %s, Position: %s", e.ID, e.Name, e.Email, e.Position))
		}
		return func(_ *view.Controller, b *view.Board) {
			b.SetItems(view.SlotEmployeeList, items)
		}, nil
	})
}
