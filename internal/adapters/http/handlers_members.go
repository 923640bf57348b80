package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"frontdesk/internal/adapters/apiclient"
	"frontdesk/internal/application/orchestrators"
	"frontdesk/internal/domain/view"
)

// maxUploadBytes bounds a member import request body.
const maxUploadBytes = 10 << 20

// defaultListLimit is the window requested by the load buttons.
const defaultListLimit = 100

var (
	errNoUpload       = errors.New("choose a .xlsx or .xls file")
	errUploadTooLarge = errors.New("file too large")
)

func (s *server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	in := apiclient.NewMember{
		Name:           strings.TrimSpace(r.FormValue("name")),
		Email:          strings.TrimSpace(r.FormValue("email")),
		MembershipType: strings.TrimSpace(r.FormValue("membership_type")),
		StartDate:      r.FormValue("start_date"),
		EndDate:        r.FormValue("end_date"),
	}
	s.perform(w, r, actCreateMember, func(ctx context.Context) (result, error) {
		m, err := s.backend.CreateMember(ctx, in)
		if err != nil {
			return nil, err
		}
		return func(_ *view.Controller, b *view.Board) {
			b.SetMessage(view.SlotMember, "Registered member ID: "+string(m.ID))
		}, nil
	})
}

func (s *server) handleLoadMembers(w http.ResponseWriter, r *http.Request) {
	opts := listOptionsFrom(r)
	s.perform(w, r, actLoadMembers, func(ctx context.Context) (result, error) {
		members, err := s.backend.ListMembers(ctx, opts)
		if err != nil {
			return nil, err
		}
		items := make([]string, 0, len(members))
		for _, m := range members {
			items = append(items, fmt.Sprintf("ID: %s, Name: %s, Email: %s", m.ID, m.Name, m.Email))
		}
		return func(_ *view.Controller, b *view.Board) {
			b.SetItems(view.SlotMemberList, items)
		}, nil
	})
}

// handleImportMembers registers every member row of an uploaded workbook.
func (s *server) handleImportMembers(w http.ResponseWriter, r *http.Request) {
	s.perform(w, r, actImportMembers, func(ctx context.Context) (result, error) {
		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, errUploadTooLarge
			}
			return nil, errNoUpload
		}
		defer file.Close()

		res, err := orchestrators.ExecuteImportMembers(ctx, orchestrators.ImportMembersInput{
			Filename: header.Filename,
			Reader:   file,
			DryRun:   r.FormValue("dry_run") != "",
		}, orchestrators.ImportMembersDeps{Members: s.backend, Now: s.now})
		if err != nil && res.Total == 0 {
			return nil, err
		}
		return func(_ *view.Controller, b *view.Board) {
			verb := "Imported"
			if res.DryRun {
				verb = "Validated"
			}
			msg := fmt.Sprintf("%s %d of %d rows", verb, res.Created, res.Total)
			if err != nil {
				b.SetFailure(view.SlotMemberImport, channels[actImportMembers].label+" failed: "+failureCause(err)+" ("+msg+")")
			} else {
				b.SetMessage(view.SlotMemberImport, msg)
			}
			rows := make([][]string, 0, len(res.Errors))
			for _, e := range res.Errors {
				rows = append(rows, []string{strconv.Itoa(e.Row), e.Message})
			}
			b.SetTable(view.SlotMemberImportRows, view.Table{Columns: []string{"Row", "Error"}, Rows: rows})
		}, nil
	})
}

func listOptionsFrom(r *http.Request) apiclient.ListOptions {
	opts := apiclient.ListOptions{Limit: defaultListLimit}
	if n, err := strconv.Atoi(r.FormValue("skip")); err == nil && n > 0 {
		opts.Skip = n
	}
	if n, err := strconv.Atoi(r.FormValue("limit")); err == nil && n > 0 {
		opts.Limit = n
	}
	return opts
}
