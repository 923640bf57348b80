package orchestrators

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"frontdesk/internal/adapters/storage"
	"frontdesk/internal/domain/member"
)

// MemberStore defines the member persistence needed by registration.
type MemberStore interface {
	Save(ctx context.Context, m member.Member) error
	GetByEmail(ctx context.Context, email string) (member.Member, error)
}

// RegisterMemberInput carries input for the orchestrator.
type RegisterMemberInput struct {
	Name           string
	Email          string
	MembershipType string
	StartDate      string
	EndDate        string
}

// RegisterMemberDeps holds dependencies for RegisterMember.
type RegisterMemberDeps struct {
	MemberStore MemberStore
}

// ExecuteRegisterMember coordinates member registration.
// PRE: none
// POST: member saved with a new ID
// INVARIANT: email is unique, compared case-insensitively
func ExecuteRegisterMember(ctx context.Context, input RegisterMemberInput, deps RegisterMemberDeps) (member.Member, error) {
	m := member.Member{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		MembershipType: strings.TrimSpace(input.MembershipType),
		StartDate:      strings.TrimSpace(input.StartDate),
		EndDate:        strings.TrimSpace(input.EndDate),
	}
	if err := m.Validate(); err != nil {
		return member.Member{}, invalid(err)
	}

	_, err := deps.MemberStore.GetByEmail(ctx, m.Email)
	switch {
	case err == nil:
		return member.Member{}, ErrMemberEmailTaken
	case !errors.Is(err, storage.ErrNotFound):
		return member.Member{}, err
	}

	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}
	return m, nil
}
