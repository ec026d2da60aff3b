package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/repository"
)

// In-memory repository fakes. They mirror the MongoDB repositories closely
// enough for the use cases under test, including mongo.ErrNoDocuments and
// duplicate key behaviour.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, duplicateKeyError()
		}
	}

	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	copied := *user
	r.users[user.ID.Hex()] = &copied

	return user, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.Country != nil {
		user.Country = *params.Country
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	if params.IsEmailVerified != nil {
		user.IsEmailVerified = *params.IsEmailVerified
	}
	if params.AdditionalInfo != nil {
		user.AdditionalInfo = *params.AdditionalInfo
	}
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) ListUsers(_ context.Context, params repository.FilterUsersParams) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []*model.User
	for _, user := range r.users {
		if params.UserType != nil && user.UserType != *params.UserType {
			continue
		}
		if params.Country != nil && user.Country != *params.Country {
			continue
		}
		if params.Verified != nil && user.IsEmailVerified != *params.Verified {
			continue
		}

		copied := *user
		users = append(users, &copied)
	}

	return users, nil
}

type fakeCodeRepo struct {
	mu    sync.Mutex
	codes []*model.VerificationCode
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{}
}

func (r *fakeCodeRepo) CreateCode(
	_ context.Context,
	code *model.VerificationCode,
) (*model.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code.ID = bson.NewObjectID()
	code.CreatedAt = time.Now()

	copied := *code
	r.codes = append(r.codes, &copied)

	return code, nil
}

func (r *fakeCodeRepo) GetLatestCode(_ context.Context, userID, purpose string) (*model.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *model.VerificationCode
	for _, code := range r.codes {
		if code.UserID.Hex() != userID || code.Purpose != purpose {
			continue
		}
		if latest == nil || code.CreatedAt.After(latest.CreatedAt) {
			latest = code
		}
	}

	if latest == nil {
		return nil, mongo.ErrNoDocuments
	}

	copied := *latest
	return &copied, nil
}

func (r *fakeCodeRepo) MarkCodeAsUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, code := range r.codes {
		if code.ID.Hex() == id {
			code.Used = true
			return nil
		}
	}

	return mongo.ErrNoDocuments
}

func (r *fakeCodeRepo) IncrementAttempts(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, code := range r.codes {
		if code.ID.Hex() == id {
			code.Attempts++
			return nil
		}
	}

	return mongo.ErrNoDocuments
}

func (r *fakeCodeRepo) InvalidateUserCodes(_ context.Context, userID, purpose string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, code := range r.codes {
		if code.UserID.Hex() == userID && code.Purpose == purpose && !code.Used {
			code.Used = true
		}
	}

	return nil
}

type fakeFlowRepo struct {
	mu    sync.Mutex
	flows map[string]*model.AuthFlow
}

func newFakeFlowRepo() *fakeFlowRepo {
	return &fakeFlowRepo{flows: make(map[string]*model.AuthFlow)}
}

func (r *fakeFlowRepo) CreateFlow(_ context.Context, flow *model.AuthFlow) (*model.AuthFlow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.flows[flow.Nonce]; exists {
		return nil, duplicateKeyError()
	}

	flow.ID = bson.NewObjectID()
	flow.CreatedAt = time.Now()
	flow.UpdatedAt = flow.CreatedAt

	copied := *flow
	r.flows[flow.Nonce] = &copied

	return flow, nil
}

func (r *fakeFlowRepo) GetFlowByNonce(_ context.Context, nonce string) (*model.AuthFlow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flow, ok := r.flows[nonce]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *flow
	return &copied, nil
}

func (r *fakeFlowRepo) UpdateFlow(
	_ context.Context,
	nonce string,
	params repository.UpdateFlowParams,
) (*model.AuthFlow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flow, ok := r.flows[nonce]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.State != nil {
		flow.State = *params.State
	}
	if params.Provider != nil {
		flow.Provider = *params.Provider
	}
	if params.UserID != nil {
		flow.UserID = *params.UserID
	}
	flow.UpdatedAt = time.Now()

	copied := *flow
	return &copied, nil
}

func (r *fakeFlowRepo) AppendQueuedAction(_ context.Context, nonce string, action model.QueuedAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	flow, ok := r.flows[nonce]
	if !ok {
		return mongo.ErrNoDocuments
	}

	flow.QueuedActions = append(flow.QueuedActions, action)
	return nil
}

type fakeIdentityRepo struct {
	mu         sync.Mutex
	identities []*model.Identity
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{}
}

func (r *fakeIdentityRepo) CreateIdentity(_ context.Context, identity *model.Identity) (*model.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	identity.ID = bson.NewObjectID()

	copied := *identity
	r.identities = append(r.identities, &copied)

	return identity, nil
}

func (r *fakeIdentityRepo) GetIdentitiesByUserID(_ context.Context, userID string) ([]model.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []model.Identity
	for _, identity := range r.identities {
		if identity.UserID == userID {
			result = append(result, *identity)
		}
	}

	return result, nil
}

func (r *fakeIdentityRepo) GetIdentityByProvider(
	_ context.Context,
	providerID string,
	providerName string,
) (*model.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, identity := range r.identities {
		if identity.ProviderID == providerID && identity.Provider == providerName {
			copied := *identity
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeIdentityRepo) UpdateLastLogin(_ context.Context, userID string) error {
	return nil
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*model.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*model.Admin)}
}

func (r *fakeAdminRepo) CreateAdmin(_ context.Context, admin *model.Admin) (*model.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.admins {
		if strings.EqualFold(existing.Email, admin.Email) {
			return nil, duplicateKeyError()
		}
	}

	admin.ID = bson.NewObjectID()
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt

	copied := *admin
	r.admins[admin.ID.Hex()] = &copied

	return admin, nil
}

func (r *fakeAdminRepo) GetAdmin(_ context.Context, id string) (*model.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.admins[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *admin
	return &copied, nil
}

func (r *fakeAdminRepo) GetAdminByEmail(_ context.Context, email string) (*model.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, admin := range r.admins {
		if strings.EqualFold(admin.Email, email) {
			copied := *admin
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeAdminRepo) UpdateAdmin(
	_ context.Context,
	id string,
	params repository.UpdateAdminParams,
) (*model.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.admins[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		admin.Name = *params.Name
	}
	if params.Email != nil {
		admin.Email = *params.Email
	}
	if params.PasswordHash != nil {
		admin.PasswordHash = *params.PasswordHash
	}
	admin.UpdatedAt = time.Now()

	copied := *admin
	return &copied, nil
}

type fakeInviteRepo struct {
	mu      sync.Mutex
	invites map[string]*model.Invite
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{invites: make(map[string]*model.Invite)}
}

func (r *fakeInviteRepo) CreateInvite(_ context.Context, invite *model.Invite) (*model.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invite.ID = bson.NewObjectID()
	invite.Status = model.InviteStatusPending
	invite.CreatedAt = time.Now()
	invite.UpdatedAt = invite.CreatedAt

	copied := *invite
	r.invites[invite.ID.Hex()] = &copied

	return invite, nil
}

func (r *fakeInviteRepo) GetInvite(_ context.Context, id string) (*model.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invite, ok := r.invites[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *invite
	return &copied, nil
}

func (r *fakeInviteRepo) ListBySender(_ context.Context, senderID string) ([]*model.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var invites []*model.Invite
	for _, invite := range r.invites {
		if invite.SenderID.Hex() == senderID {
			copied := *invite
			invites = append(invites, &copied)
		}
	}

	return invites, nil
}

func (r *fakeInviteRepo) ListByRecipient(_ context.Context, recipientID string) ([]*model.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var invites []*model.Invite
	for _, invite := range r.invites {
		if invite.RecipientID.Hex() == recipientID {
			copied := *invite
			invites = append(invites, &copied)
		}
	}

	return invites, nil
}

func (r *fakeInviteRepo) HasPendingInvite(_ context.Context, senderID, recipientID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, invite := range r.invites {
		if invite.Status != model.InviteStatusPending {
			continue
		}
		if (invite.SenderID.Hex() == senderID && invite.RecipientID.Hex() == recipientID) ||
			(invite.SenderID.Hex() == recipientID && invite.RecipientID.Hex() == senderID) {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeInviteRepo) ResolveInvite(
	_ context.Context,
	id string,
	status model.InviteStatus,
	conversationID string,
) (*model.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invite, ok := r.invites[id]
	if !ok || invite.Status != model.InviteStatusPending {
		return nil, mongo.ErrNoDocuments
	}

	invite.Status = status
	invite.ConversationID = conversationID
	invite.UpdatedAt = time.Now()

	copied := *invite
	return &copied, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*model.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*model.Job)}
}

func (r *fakeJobRepo) CreateJob(_ context.Context, job *model.Job) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job.ID = bson.NewObjectID()
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt

	copied := *job
	r.jobs[job.ID.Hex()] = &copied

	return job, nil
}

func (r *fakeJobRepo) GetJob(_ context.Context, id string) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) ListJobs(_ context.Context, params repository.FilterJobsParams) ([]*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var jobs []*model.Job
	for _, job := range r.jobs {
		if params.JobType != nil && job.JobType != *params.JobType {
			continue
		}
		if params.Company != nil && job.Company != *params.Company {
			continue
		}
		if params.PostedBy != nil && job.PostedBy.Hex() != *params.PostedBy {
			continue
		}

		copied := *job
		jobs = append(jobs, &copied)
	}

	// Mirror the Mongo repository's default page cap.
	limit := params.Limit
	if limit == 0 {
		limit = 50
	}
	if uint64(len(jobs)) > limit {
		jobs = jobs[:limit]
	}

	return jobs, nil
}

func (r *fakeJobRepo) ListJobsWithCoordinates(_ context.Context) ([]*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var jobs []*model.Job
	for _, job := range r.jobs {
		if job.Location.Latitude == 0 && job.Location.Longitude == 0 {
			continue
		}

		copied := *job
		jobs = append(jobs, &copied)
	}

	return jobs, nil
}

type fakeSettingRepo struct {
	mu      sync.Mutex
	setting *model.Setting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{}
}

func (r *fakeSettingRepo) GetSetting(_ context.Context) (*model.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.setting == nil {
		return nil, mongo.ErrNoDocuments
	}

	copied := *r.setting
	return &copied, nil
}

func (r *fakeSettingRepo) UpsertSetting(_ context.Context, setting *model.Setting) (*model.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	setting.ID = model.SettingID
	setting.UpdatedAt = time.Now()

	copied := *setting
	r.setting = &copied

	return setting, nil
}

// fakeMailer records outgoing mail instead of sending it.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

func (m *fakeMailer) SendHTML(to []string, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func (m *fakeMailer) lastMail() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		return sentMail{}, false
	}

	return m.sent[len(m.sent)-1], true
}
