package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/domain/entity"
	"github.com/kiplagat/billify-api/pkg/apperror"
	"github.com/kiplagat/billify-api/pkg/pagination"
	"github.com/stretchr/testify/require"
)

type membershipKey struct {
	companyID uuid.UUID
	userID    uuid.UUID
}

type fakeCompanyRepo struct {
	companies   map[uuid.UUID]entity.Company
	memberships map[membershipKey]entity.CompanyMembership
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{
		companies:   make(map[uuid.UUID]entity.Company),
		memberships: make(map[membershipKey]entity.CompanyMembership),
	}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	return &company, nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) GetUserCompanies(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Company, int64, error) {
	var out []entity.Company
	for key, membership := range r.memberships {
		if membership.UserID == userID {
			if company, ok := r.companies[key.companyID]; ok {
				out = append(out, company)
			}
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCompanyRepo) AddMember(ctx context.Context, membership *entity.CompanyMembership) error {
	r.memberships[membershipKey{membership.CompanyID, membership.UserID}] = *membership
	return nil
}

func (r *fakeCompanyRepo) RemoveMember(ctx context.Context, companyID, userID uuid.UUID) error {
	delete(r.memberships, membershipKey{companyID, userID})
	return nil
}

func (r *fakeCompanyRepo) GetMembers(ctx context.Context, companyID uuid.UUID) ([]entity.CompanyMembership, error) {
	var out []entity.CompanyMembership
	for key, membership := range r.memberships {
		if key.companyID == companyID {
			out = append(out, membership)
		}
	}
	return out, nil
}

func (r *fakeCompanyRepo) IsMember(ctx context.Context, companyID, userID uuid.UUID) (bool, error) {
	_, ok := r.memberships[membershipKey{companyID, userID}]
	return ok, nil
}

func (r *fakeCompanyRepo) GetMembership(ctx context.Context, companyID, userID uuid.UUID) (*entity.CompanyMembership, error) {
	membership, ok := r.memberships[membershipKey{companyID, userID}]
	if !ok {
		return nil, nil
	}
	return &membership, nil
}

func (r *fakeCompanyRepo) UpdateMemberRole(ctx context.Context, companyID, userID uuid.UUID, role string) error {
	key := membershipKey{companyID, userID}
	membership, ok := r.memberships[key]
	if !ok {
		return nil
	}
	membership.Role = role
	r.memberships[key] = membership
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type companyFixture struct {
	svc         *CompanyService
	companyRepo *fakeCompanyRepo
	userRepo    *fakeUserRepo
	company     *entity.Company
	owner       *entity.User
	admin       *entity.User
	member      *entity.User
	ctx         context.Context
}

func newCompanyFixture(t *testing.T) *companyFixture {
	t.Helper()

	companyRepo := newFakeCompanyRepo()
	userRepo := newFakeUserRepo()
	ctx := context.Background()

	owner := &entity.User{FirstName: "Olivia", LastName: "Owner", Email: "owner@billify.test"}
	admin := &entity.User{FirstName: "Andy", LastName: "Admin", Email: "admin@billify.test"}
	member := &entity.User{FirstName: "Mary", LastName: "Member", Email: "member@billify.test"}
	for _, u := range []*entity.User{owner, admin, member} {
		require.NoError(t, userRepo.Create(ctx, u))
	}

	company := &entity.Company{Name: "Billify Test Co", OwnerID: owner.ID}
	require.NoError(t, companyRepo.Create(ctx, company))

	for userID, role := range map[uuid.UUID]string{
		owner.ID:  entity.RoleOwner,
		admin.ID:  entity.RoleAdmin,
		member.ID: entity.RoleMember,
	} {
		require.NoError(t, companyRepo.AddMember(ctx, &entity.CompanyMembership{
			CompanyID: company.ID,
			UserID:    userID,
			Role:      role,
		}))
	}

	return &companyFixture{
		svc:         NewCompanyService(companyRepo, userRepo),
		companyRepo: companyRepo,
		userRepo:    userRepo,
		company:     company,
		owner:       owner,
		admin:       admin,
		member:      member,
		ctx:         ctx,
	}
}

func TestGetCompanyNonMemberNotFound(t *testing.T) {
	f := newCompanyFixture(t)

	// Non-members get a 404, never a 403, so company IDs don't leak
	_, err := f.svc.GetCompany(f.ctx, f.company.ID, uuid.New())
	require.True(t, apperror.IsKind(err, apperror.KindNotFound))

	company, err := f.svc.GetCompany(f.ctx, f.company.ID, f.member.ID)
	require.NoError(t, err)
	require.Equal(t, f.company.ID, company.ID)
}

func TestUpdateCompanyRequiresAdminOrOwner(t *testing.T) {
	f := newCompanyFixture(t)
	name := "Renamed Co"

	_, err := f.svc.UpdateCompany(f.ctx, f.company.ID, f.member.ID, &UpdateCompanyInput{Name: &name})
	require.True(t, apperror.IsKind(err, apperror.KindForbidden))

	updated, err := f.svc.UpdateCompany(f.ctx, f.company.ID, f.admin.ID, &UpdateCompanyInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Renamed Co", updated.Name)
}

func TestAddMember(t *testing.T) {
	f := newCompanyFixture(t)

	newcomer := &entity.User{FirstName: "Nina", LastName: "New", Email: "nina@billify.test"}
	require.NoError(t, f.userRepo.Create(f.ctx, newcomer))

	membership, err := f.svc.AddMember(f.ctx, f.company.ID, f.owner.ID, "nina@billify.test", entity.RoleMember)
	require.NoError(t, err)
	require.Equal(t, newcomer.ID, membership.UserID)
	require.NotNil(t, membership.MemberUser)
	require.Equal(t, "nina@billify.test", membership.MemberUser.Email)
}

func TestAddMemberValidations(t *testing.T) {
	f := newCompanyFixture(t)

	// Unknown user
	_, err := f.svc.AddMember(f.ctx, f.company.ID, f.owner.ID, "ghost@billify.test", entity.RoleMember)
	require.True(t, apperror.IsKind(err, apperror.KindNotFound))

	// Already a member
	_, err = f.svc.AddMember(f.ctx, f.company.ID, f.owner.ID, f.member.Email, entity.RoleMember)
	require.True(t, apperror.IsKind(err, apperror.KindConflict))

	// Owner role cannot be granted through AddMember
	newcomer := &entity.User{Email: "nina@billify.test"}
	require.NoError(t, f.userRepo.Create(f.ctx, newcomer))
	_, err = f.svc.AddMember(f.ctx, f.company.ID, f.owner.ID, "nina@billify.test", entity.RoleOwner)
	require.True(t, apperror.IsKind(err, apperror.KindBadRequest))

	// Plain members cannot add anyone
	_, err = f.svc.AddMember(f.ctx, f.company.ID, f.member.ID, "nina@billify.test", entity.RoleMember)
	require.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestRemoveMemberProtectsOwner(t *testing.T) {
	f := newCompanyFixture(t)

	err := f.svc.RemoveMember(f.ctx, f.company.ID, f.admin.ID, f.owner.ID)
	require.True(t, apperror.IsKind(err, apperror.KindBadRequest))

	require.NoError(t, f.svc.RemoveMember(f.ctx, f.company.ID, f.admin.ID, f.member.ID))

	isMember, err := f.companyRepo.IsMember(f.ctx, f.company.ID, f.member.ID)
	require.NoError(t, err)
	require.False(t, isMember)
}

func TestUpdateMemberRoleOwnerOnly(t *testing.T) {
	f := newCompanyFixture(t)

	err := f.svc.UpdateMemberRole(f.ctx, f.company.ID, f.admin.ID, f.member.ID, entity.RoleAdmin)
	require.True(t, apperror.IsKind(err, apperror.KindForbidden))

	require.NoError(t, f.svc.UpdateMemberRole(f.ctx, f.company.ID, f.owner.ID, f.member.ID, entity.RoleAdmin))

	membership, err := f.companyRepo.GetMembership(f.ctx, f.company.ID, f.member.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RoleAdmin, membership.Role)

	// The owner role itself is immutable here
	err = f.svc.UpdateMemberRole(f.ctx, f.company.ID, f.owner.ID, f.owner.ID, entity.RoleMember)
	require.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestListUserCompanies(t *testing.T) {
	f := newCompanyFixture(t)

	result, err := f.svc.ListUserCompanies(f.ctx, f.owner.ID, &pagination.PaginationParams{Page: 1, PerPage: 15})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, f.company.ID, result.Items[0].ID)
}
