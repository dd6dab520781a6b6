package service

import (
	"context"
	"testing"

	"taglayer/internal/apperror"
	"taglayer/internal/auth"
	"taglayer/internal/model"
	"taglayer/internal/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeOrgRepo is an in-memory IOrganizationRepository.
type fakeOrgRepo struct {
	orgs    map[string]*model.Organization
	updates int
	deletes int
}

func newFakeOrgRepo(orgs ...*model.Organization) *fakeOrgRepo {
	r := &fakeOrgRepo{orgs: make(map[string]*model.Organization)}
	for _, org := range orgs {
		r.orgs[org.ID.Hex()] = org
	}
	return r
}

func (r *fakeOrgRepo) Create(_ context.Context, org *model.Organization) (*model.Organization, error) {
	org.ID = primitive.NewObjectID()
	r.orgs[org.ID.Hex()] = org
	return org, nil
}

func (r *fakeOrgRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Organization, error) {
	return r.orgs[id.Hex()], nil
}

func (r *fakeOrgRepo) FindByMember(_ context.Context, userID primitive.ObjectID) (*model.Organization, error) {
	for _, org := range r.orgs {
		if org.HasMember(userID) {
			return org, nil
		}
	}
	return nil, nil
}

func (r *fakeOrgRepo) FindBySubscription(_ context.Context, subID string) (*model.Organization, error) {
	for _, org := range r.orgs {
		if org.Plan.SubscriptionID == subID {
			return org, nil
		}
	}
	return nil, nil
}

func (r *fakeOrgRepo) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	r.updates++
	if org, ok := r.orgs[id.Hex()]; ok {
		if name, ok := fields["name"].(string); ok {
			org.Name = name
		}
	}
	return nil
}

func (r *fakeOrgRepo) AddMember(_ context.Context, id, userID primitive.ObjectID, admin bool) error {
	r.updates++
	org := r.orgs[id.Hex()]
	if !org.HasMember(userID) {
		org.MembersIDs = append(org.MembersIDs, userID)
	}
	if admin && !org.HasAdmin(userID) {
		org.AdminsIDs = append(org.AdminsIDs, userID)
	}
	return nil
}

func (r *fakeOrgRepo) RemoveMember(_ context.Context, id, userID primitive.ObjectID) error {
	r.updates++
	org := r.orgs[id.Hex()]
	var members []primitive.ObjectID
	for _, m := range org.MembersIDs {
		if m != userID {
			members = append(members, m)
		}
	}
	org.MembersIDs = members
	return nil
}

func (r *fakeOrgRepo) MergePlan(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	r.updates++
	org := r.orgs[id.Hex()]
	if v, ok := fields["type"].(string); ok {
		org.Plan.Type = v
	}
	if v, ok := fields["status"].(string); ok {
		org.Plan.Status = v
	}
	if v, ok := fields["period"].(string); ok {
		org.Plan.Period = v
	}
	if v, ok := fields["customerId"].(string); ok {
		org.Plan.CustomerID = v
	}
	if v, ok := fields["subscriptionId"].(string); ok {
		org.Plan.SubscriptionID = v
	}
	return nil
}

func (r *fakeOrgRepo) DeleteAndReturn(_ context.Context, id primitive.ObjectID) (*model.Organization, error) {
	org, ok := r.orgs[id.Hex()]
	if !ok {
		return nil, nil
	}
	delete(r.orgs, id.Hex())
	r.deletes++
	return org, nil
}

// fakeUserRepo is an in-memory IUserRepository.
type fakeUserRepo struct {
	users   map[string]*model.User
	updates int
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		r.users[u.ID.Hex()] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	u.ID = primitive.NewObjectID()
	r.users[u.ID.Hex()] = u
	return u, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.users[id.Hex()], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByOrg(_ context.Context, orgID primitive.ObjectID, _ options.FindOptions) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.users {
		if u.OrganizationID == orgID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CountByOrg(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	users, _ := r.FindByOrg(ctx, orgID, options.FindOptions{})
	return int64(len(users)), nil
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	r.updates++
	if u, ok := r.users[id.Hex()]; ok {
		if orgID, ok := fields["organizationId"].(primitive.ObjectID); ok {
			u.OrganizationID = orgID
		}
		if name, ok := fields["name"].(string); ok {
			u.Name = name
		}
		if locale, ok := fields["locale"].(string); ok {
			u.Locale = locale
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.users, id.Hex())
	return nil
}

// fakeMailer records outbound email without sending anything.
type fakeMailer struct {
	sent []string
}

func (m *fakeMailer) SendAsync(to, subject, template, locale string, data map[string]any) {
	m.sent = append(m.sent, template+":"+to)
}

func ownerSession(org *model.Organization) auth.Session {
	return auth.Session{
		UserID:         org.CreatorID,
		OrganizationID: org.ID,
		Roles:          []permission.Role{permission.RoleOwner, permission.RoleAdmin, permission.RoleMember},
	}
}

func TestCreateForUserProvisionsDefaults(t *testing.T) {
	orgs := newFakeOrgRepo()
	creator := &model.User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@example.com"}
	users := newFakeUserRepo(creator)
	svc := NewOrganizationService(orgs, users, &fakeMailer{})

	org, err := svc.CreateForUser(context.Background(), creator, "")
	require.NoError(t, err)

	assert.Equal(t, "Ada Org", org.Name)
	assert.Equal(t, creator.ID, org.CreatorID)
	assert.True(t, org.HasMember(creator.ID))
	assert.True(t, org.HasAdmin(creator.ID))
	assert.Equal(t, model.PlanFree, org.Plan.Type)
	assert.Equal(t, org.ID, creator.OrganizationID)
}

func TestOrganizationUpdateDeniedWithoutMutation(t *testing.T) {
	org := &model.Organization{ID: primitive.NewObjectID(), Name: "Acme"}
	orgs := newFakeOrgRepo(org)
	svc := NewOrganizationService(orgs, newFakeUserRepo(), &fakeMailer{})

	name := "Evil Rename"
	session := auth.Session{OrganizationID: org.ID, Roles: []permission.Role{permission.RoleMember}}
	_, err := svc.Update(context.Background(), session, &model.UpdateOrganizationBody{Name: &name})

	assert.Equal(t, apperror.CodePermissionDenied, apperror.CodeOf(err))
	assert.Zero(t, orgs.updates, "denied request must not write")
	assert.Equal(t, "Acme", org.Name)
}

func TestOrganizationDeleteOwnerOnly(t *testing.T) {
	creator := primitive.NewObjectID()
	org := &model.Organization{ID: primitive.NewObjectID(), Name: "Acme", CreatorID: creator,
		MembersIDs: []primitive.ObjectID{creator}, AdminsIDs: []primitive.ObjectID{creator}}
	orgs := newFakeOrgRepo(org)
	svc := NewOrganizationService(orgs, newFakeUserRepo(), &fakeMailer{})

	adminOnly := auth.Session{OrganizationID: org.ID, Roles: []permission.Role{permission.RoleAdmin}}
	_, err := svc.Delete(context.Background(), adminOnly)
	assert.Equal(t, apperror.CodePermissionDenied, apperror.CodeOf(err))
	assert.Zero(t, orgs.deletes)

	deleted, err := svc.Delete(context.Background(), ownerSession(org))
	require.NoError(t, err)
	assert.Equal(t, "Acme", deleted.Name)
	assert.Equal(t, 1, orgs.deletes)
}

func TestAddMemberSendsInvite(t *testing.T) {
	creator := primitive.NewObjectID()
	org := &model.Organization{ID: primitive.NewObjectID(), Name: "Acme", CreatorID: creator,
		MembersIDs: []primitive.ObjectID{creator}, AdminsIDs: []primitive.ObjectID{creator}}
	invitee := &model.User{ID: primitive.NewObjectID(), Name: "Grace", Email: "grace@example.com"}
	orgs := newFakeOrgRepo(org)
	users := newFakeUserRepo(invitee)
	mailer := &fakeMailer{}
	svc := NewOrganizationService(orgs, users, mailer)

	updated, err := svc.AddMember(context.Background(), ownerSession(org), &model.AddMemberBody{
		Email: "grace@example.com",
	})
	require.NoError(t, err)

	assert.True(t, updated.HasMember(invitee.ID))
	assert.False(t, updated.HasAdmin(invitee.ID))
	assert.Equal(t, org.ID, invitee.OrganizationID)
	assert.Equal(t, []string{"invite:grace@example.com"}, mailer.sent)
}

func TestAddMemberUnknownEmail(t *testing.T) {
	creator := primitive.NewObjectID()
	org := &model.Organization{ID: primitive.NewObjectID(), CreatorID: creator,
		MembersIDs: []primitive.ObjectID{creator}}
	svc := NewOrganizationService(newFakeOrgRepo(org), newFakeUserRepo(), &fakeMailer{})

	_, err := svc.AddMember(context.Background(), ownerSession(org), &model.AddMemberBody{
		Email: "nobody@example.com",
	})
	assert.Equal(t, apperror.CodeUserNotFound, apperror.CodeOf(err))
}

func TestRemoveMemberProtectsCreator(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	org := &model.Organization{ID: primitive.NewObjectID(), CreatorID: creator,
		MembersIDs: []primitive.ObjectID{creator, member}}
	orgs := newFakeOrgRepo(org)
	memberUser := &model.User{ID: member, OrganizationID: org.ID}
	svc := NewOrganizationService(orgs, newFakeUserRepo(memberUser), &fakeMailer{})

	_, err := svc.RemoveMember(context.Background(), ownerSession(org), creator.Hex())
	assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))

	updated, err := svc.RemoveMember(context.Background(), ownerSession(org), member.Hex())
	require.NoError(t, err)
	assert.False(t, updated.HasMember(member))
	assert.True(t, memberUser.OrganizationID.IsZero())
}
