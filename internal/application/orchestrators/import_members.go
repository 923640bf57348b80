package orchestrators

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"time"

	"frontdesk/internal/adapters/apiclient"
	"frontdesk/internal/adapters/spreadsheet"
)

// MemberCreator registers one member with the backend.
type MemberCreator interface {
	CreateMember(ctx context.Context, in apiclient.NewMember) (apiclient.Member, error)
}

// ImportMembersInput carries an uploaded workbook and import options.
// PRE: Filename ends in .xlsx or .xls; Reader holds the upload.
// POST: Returns aggregate counts and per-row errors; nothing is sent when DryRun=true.
type ImportMembersInput struct {
	Filename string
	Reader   io.Reader
	DryRun   bool
}

// ImportMembersResult holds aggregate counts and per-row errors from an import run.
type ImportMembersResult struct {
	Total   int
	Created int
	Errors  []ImportMembersRowError
	DryRun  bool
}

// ImportMembersRowError describes why a single sheet row was not imported.
type ImportMembersRowError struct {
	Row     int
	Message string
}

// ImportMembersDeps holds external dependencies for the import orchestrator.
type ImportMembersDeps struct {
	Members MemberCreator
	Now     func() time.Time
}

// ImportMembersValidationError is returned when the workbook itself cannot be used
// (unreadable file, wrong type, missing required columns).
type ImportMembersValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ImportMembersValidationError) Error() string {
	return e.Message
}

// ExecuteImportMembers reads members from a workbook and registers each with the backend.
// PRE: the workbook has NAME and EMAIL columns
// POST: every data row is counted as created or reported in Errors;
// a backend transport failure stops the run and is returned with the partial result
// INVARIANT: rows are sent in sheet order, one request per row
func ExecuteImportMembers(ctx context.Context, input ImportMembersInput, deps ImportMembersDeps) (ImportMembersResult, error) {
	rows, err := spreadsheet.ReadRows(input.Reader, input.Filename)
	if err != nil {
		return ImportMembersResult{}, &ImportMembersValidationError{Message: err.Error()}
	}
	members, rowErrs, err := spreadsheet.ParseMemberRows(rows, deps.Now())
	if err != nil {
		return ImportMembersResult{}, &ImportMembersValidationError{Message: err.Error()}
	}

	result := ImportMembersResult{DryRun: input.DryRun, Total: len(members) + len(rowErrs)}
	for _, re := range rowErrs {
		result.Errors = append(result.Errors, ImportMembersRowError{Row: re.Row, Message: re.Message})
	}

	for _, mr := range members {
		if input.DryRun {
			result.Created++
			continue
		}
		_, err := deps.Members.CreateMember(ctx, apiclient.NewMember{
			Name:           mr.Member.Name,
			Email:          mr.Member.Email,
			MembershipType: mr.Member.MembershipType,
			StartDate:      mr.Member.StartDate,
			EndDate:        mr.Member.EndDate,
		})
		var te *apiclient.TransportError
		switch {
		case err == nil:
			result.Created++
		case errors.As(err, &te):
			slog.Error("members_import_aborted", "row", mr.Row, "error", err)
			return result, err
		default:
			result.Errors = append(result.Errors, ImportMembersRowError{Row: mr.Row, Message: rowMessage(err)})
		}
	}
	sort.SliceStable(result.Errors, func(i, j int) bool { return result.Errors[i].Row < result.Errors[j].Row })

	slog.Info("members_import",
		"file", input.Filename,
		"dry_run", input.DryRun,
		"total", result.Total,
		"created", result.Created,
		"errors", len(result.Errors),
	)
	return result, nil
}

func rowMessage(err error) string {
	var se *apiclient.StatusError
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	return err.Error()
}
