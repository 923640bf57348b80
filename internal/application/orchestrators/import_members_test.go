package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"frontdesk/internal/adapters/apiclient"
)

// mockMemberCreator records creates and fails by email.
type mockMemberCreator struct {
	created []apiclient.NewMember
	failFor map[string]error
}

func (m *mockMemberCreator) CreateMember(_ context.Context, in apiclient.NewMember) (apiclient.Member, error) {
	if err := m.failFor[in.Email]; err != nil {
		return apiclient.Member{}, err
	}
	m.created = append(m.created, in)
	return apiclient.Member{ID: apiclient.ID(in.Email), NewMember: in}, nil
}

func memberWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func importDeps(m MemberCreator) ImportMembersDeps {
	return ImportMembersDeps{Members: m, Now: func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }}
}

var importRows = [][]string{
	{"NAME", "EMAIL", "MEMBERSHIP_TYPE"},
	{"Kim", "kim@example.com", "gold"},
	{"", "missing@example.com"},
	{"Lee", "lee@example.com"},
	{"Park", "park@example.com"},
}

func TestExecuteImportMembers_CreatesRowsInOrder(t *testing.T) {
	creator := &mockMemberCreator{failFor: map[string]error{
		"park@example.com": &apiclient.StatusError{Op: "POST /members/", StatusCode: 400, Detail: "Email already registered"},
	}}
	data := memberWorkbook(t, importRows)

	res, err := ExecuteImportMembers(context.Background(),
		ImportMembersInput{Filename: "members.xlsx", Reader: bytes.NewReader(data)}, importDeps(creator))
	if err != nil {
		t.Fatalf("ExecuteImportMembers: %v", err)
	}
	if res.Total != 4 || res.Created != 2 {
		t.Errorf("total=%d created=%d, want 4/2", res.Total, res.Created)
	}
	if len(creator.created) != 2 || creator.created[0].Email != "kim@example.com" || creator.created[1].Email != "lee@example.com" {
		t.Errorf("created = %+v", creator.created)
	}
	if creator.created[1].StartDate != "2024-03-01" {
		t.Errorf("default start = %q", creator.created[1].StartDate)
	}

	if len(res.Errors) != 2 {
		t.Fatalf("errors = %+v", res.Errors)
	}
	if res.Errors[0].Row != 3 || res.Errors[1].Row != 5 {
		t.Errorf("error rows = %d,%d want 3,5", res.Errors[0].Row, res.Errors[1].Row)
	}
	if res.Errors[1].Message != "Email already registered" {
		t.Errorf("backend detail not surfaced: %q", res.Errors[1].Message)
	}
}

func TestExecuteImportMembers_DryRunSendsNothing(t *testing.T) {
	creator := &mockMemberCreator{}
	data := memberWorkbook(t, importRows)

	res, err := ExecuteImportMembers(context.Background(),
		ImportMembersInput{Filename: "members.xlsx", Reader: bytes.NewReader(data), DryRun: true}, importDeps(creator))
	if err != nil {
		t.Fatalf("ExecuteImportMembers: %v", err)
	}
	if !res.DryRun || res.Created != 3 || len(creator.created) != 0 {
		t.Errorf("res = %+v, sent = %d", res, len(creator.created))
	}
}

func TestExecuteImportMembers_TransportErrorAborts(t *testing.T) {
	down := &apiclient.TransportError{Op: "POST /members/", Err: errors.New("connection refused")}
	creator := &mockMemberCreator{failFor: map[string]error{"lee@example.com": down}}
	data := memberWorkbook(t, importRows)

	res, err := ExecuteImportMembers(context.Background(),
		ImportMembersInput{Filename: "members.xlsx", Reader: bytes.NewReader(data)}, importDeps(creator))
	var te *apiclient.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if res.Created != 1 || len(creator.created) != 1 {
		t.Errorf("partial result = %+v", res)
	}
}

func TestExecuteImportMembers_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		contains string
	}{
		{"unsupported type", "members.csv", []byte("NAME,EMAIL"), "unsupported"},
		{"missing column", "members.xlsx", memberWorkbook(t, [][]string{{"NAME", "PHONE"}}), "EMAIL"},
		{"corrupt workbook", "members.xlsx", []byte("garbage"), "open xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &mockMemberCreator{}
			_, err := ExecuteImportMembers(context.Background(),
				ImportMembersInput{Filename: tt.filename, Reader: bytes.NewReader(tt.data)}, importDeps(creator))
			var ve *ImportMembersValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if !strings.Contains(ve.Message, tt.contains) {
				t.Errorf("message = %q, want it to contain %q", ve.Message, tt.contains)
			}
			if len(creator.created) != 0 {
				t.Error("nothing should be created")
			}
		})
	}
}
